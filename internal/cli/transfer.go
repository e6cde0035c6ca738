package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Spok95/pocket-hornet/internal/dialog"
)

type exportOptions struct {
	Out      string
	Transfer bool
}

func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the current configuration snapshot",
		Long: `Write the catalog, teams, payment methods and cost settings as a config
document. The ledger is not part of the snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *runtime) error {
				out, err := rt.app.ExportSnapshot()
				if err != nil {
					return err
				}
				if opts.Transfer {
					if err := rt.transfer.Put(ctx, "config/"+out.Name, out.Data); err != nil {
						return fmt.Errorf("transfer upload: %w", err)
					}
				}
				return writeOutput(cmd, opts.Out, out.Name, out.Data)
			})
		},
	}
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "", "output file or directory, - for stdout (default: conventional name in the working directory)")
	cmd.Flags().BoolVar(&opts.Transfer, "transfer", false, "also upload to the configured transfer store")
	return cmd
}

type importOptions struct {
	Yes          bool
	FromTransfer bool
}

func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Apply a configuration snapshot after confirmation",
		Long: `Validate a config document and, after confirmation, replace the catalog,
teams, payment methods and cost settings with the fields it carries. Fields
missing from the document keep their current values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(cmd, rootOpts, func(ctx context.Context, rt *runtime) error {
				data, err := readInput(ctx, cmd, rt, args[0], opts.FromTransfer)
				if err != nil {
					return err
				}
				meta, err := rt.app.RequestImport(data)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Snapshot %s, version %s, exported by %s\n", meta.Date, meta.Version, meta.ExportedBy)
				return resolvePending(ctx, cmd, rt, opts.Yes)
			})
		},
	}
	cmd.Flags().BoolVarP(&opts.Yes, "yes", "y", false, "apply without asking")
	cmd.Flags().BoolVar(&opts.FromTransfer, "from-transfer", false, "read the file name from the transfer store")
	return cmd
}

func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Write the ledger journal as an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, rootOpts, func(_ context.Context, rt *runtime) error {
				name, data, err := rt.app.Journal()
				if err != nil {
					return err
				}
				return writeOutput(cmd, out, name, data)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file or directory, - for stdout")
	return cmd
}

// withRuntime loads config and state around fn. Logs go to stderr.
func withRuntime(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, rt *runtime) error) error {
	cfg, log, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	rt, err := openRuntime(ctx, cfg, log, nil)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(ctx, rt)
}

// resolvePending accepts the pending gate request when yes is set or the
// operator answers y on stdin, and cancels it otherwise.
func resolvePending(ctx context.Context, cmd *cobra.Command, rt *runtime, yes bool) error {
	req, ok := rt.app.Pending()
	if !ok {
		return nil
	}
	if req.Mode != dialog.ModeConfirm {
		_ = rt.app.Cancel(req.Seq)
		return fmt.Errorf("unexpected %s request", req.Mode)
	}
	if !yes {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s [y/N] ", req.Title, req.Message)
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		if answer != "y" && answer != "yes" && answer != "j" && answer != "ja" {
			if err := rt.app.Cancel(req.Seq); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "canceled")
			return nil
		}
	}
	if err := rt.app.Accept(ctx, req.Seq, ""); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "done")
	return nil
}

func readInput(ctx context.Context, cmd *cobra.Command, rt *runtime, src string, fromTransfer bool) ([]byte, error) {
	switch {
	case fromTransfer:
		return rt.transfer.Get(ctx, "config/"+filepath.Base(src))
	case src == "-":
		return io.ReadAll(cmd.InOrStdin())
	default:
		return os.ReadFile(src)
	}
}

func writeOutput(cmd *cobra.Command, out, name string, data []byte) error {
	if out == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	path := name
	if out != "" {
		path = out
		if fi, err := os.Stat(out); err == nil && fi.IsDir() {
			path = filepath.Join(out, name)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
