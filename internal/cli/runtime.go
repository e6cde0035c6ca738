package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Spok95/pocket-hornet/internal/app"
	"github.com/Spok95/pocket-hornet/internal/config"
	"github.com/Spok95/pocket-hornet/internal/feedback"
	"github.com/Spok95/pocket-hornet/internal/infra/blob"
	"github.com/Spok95/pocket-hornet/internal/infra/db"
	"github.com/Spok95/pocket-hornet/internal/infra/kv"
	"github.com/Spok95/pocket-hornet/internal/infra/logger"
	"github.com/Spok95/pocket-hornet/internal/infra/metrics"
)

// runtime is the loaded application with the resources it holds open.
type runtime struct {
	cfg      config.Config
	log      *slog.Logger
	app      *app.App
	metrics  *metrics.Metrics
	store    kv.Store
	transfer blob.Store
	pool     *pgxpool.Pool
}

func loadConfig(opts *RootOptions, logOut io.Writer) (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger.NewTo(logOut, cfg.App.Env), nil
}

// openRuntime connects the durable store, loads the state and opens the transfer store.
func openRuntime(ctx context.Context, cfg config.Config, log *slog.Logger, cues feedback.Sink) (*runtime, error) {
	rt := &runtime{cfg: cfg, log: log, metrics: metrics.New()}

	switch kv.Driver(cfg.Storage.Driver) {
	case kv.DriverMemory:
		rt.store = kv.NewMemory()
	case kv.DriverSQLite:
		s, err := kv.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		rt.store = s
	case kv.DriverPostgres:
		if err := db.Migrate(cfg.Storage.PostgresDSN); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		log.Info("migrations applied")
		pool, err := db.Connect(ctx, cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		rt.pool = pool
		rt.store = kv.NewPostgres(pool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	log.Info("state store opened", "driver", rt.store.Driver())

	switch blob.Driver(cfg.Transfer.Driver) {
	case blob.DriverS3:
		s, err := blob.NewS3(ctx, blob.S3Config{
			Bucket:    cfg.Transfer.S3.Bucket,
			Region:    cfg.Transfer.S3.Region,
			Endpoint:  cfg.Transfer.S3.Endpoint,
			PathStyle: cfg.Transfer.S3.PathStyle,
		})
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("transfer store: %w", err)
		}
		rt.transfer = s
	default:
		s, err := blob.NewFS(cfg.Transfer.Dir)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("transfer store: %w", err)
		}
		rt.transfer = s
	}

	if cues == nil {
		cues = feedback.NewLog(log)
	}
	rt.app = app.New(app.Deps{
		Store:    rt.store,
		Log:      log,
		Cues:     cues,
		Metrics:  rt.metrics,
		Location: cfg.Location(),
	})
	if err := rt.app.Load(ctx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("load state: %w", err)
	}
	return rt, nil
}

func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.log.Warn("close state store", "err", err)
		}
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
}
