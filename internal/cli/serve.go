package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/Spok95/pocket-hornet/internal/bot"
	"github.com/Spok95/pocket-hornet/internal/feedback"
	httpx "github.com/Spok95/pocket-hornet/internal/infra/http"
)

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP endpoints and the Telegram operator bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), rootOpts, cmd)
		},
	}
}

func runServe(parent context.Context, opts *RootOptions, cmd *cobra.Command) error {
	cfg, log, err := loadConfig(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var api *tgbotapi.BotAPI
	cues := feedback.Fanout{feedback.NewLog(log)}
	if cfg.Telegram.Token != "" {
		api, err = tgbotapi.NewBotAPI(cfg.Telegram.Token)
		if err != nil {
			return err
		}
		log.Info("telegram authorized", "bot", api.Self.UserName)
		if cfg.Telegram.AdminChatID != 0 {
			cues = append(cues, feedback.NewTelegram(api, cfg.Telegram.AdminChatID, log))
		}
	} else {
		log.Warn("telegram token empty, operator bot disabled")
	}

	rt, err := openRuntime(ctx, cfg, log, cues)
	if err != nil {
		return err
	}
	defer rt.Close()

	var registry = rt.metrics.Registry
	if !cfg.Metrics.Enabled {
		registry = nil
	}
	var src httpx.Source
	if cfg.HTTP.Exports {
		src = rt.app
	}
	srv := httpx.New(cfg.HTTP.Addr, log, src, registry)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("http server error", "err", err)
			stop()
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr, "exports", cfg.HTTP.Exports)

	if api != nil {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = cfg.Telegram.TimeoutSec
		updates := api.GetUpdatesChan(u)
		b := bot.New(api, log, rt.app, cfg.Telegram.AdminChatID, rt.transfer)
		go func() {
			if err := b.Run(ctx, updates); err != nil && ctx.Err() == nil {
				log.Error("bot stopped", "err", err)
			}
		}()
		log.Info("telegram bot started")
	}

	<-ctx.Done()
	if api != nil {
		api.StopReceivingUpdates()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
	return nil
}
