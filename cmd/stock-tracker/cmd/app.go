package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/donaldgifford/stock-tracker/internal/config"
	"github.com/donaldgifford/stock-tracker/internal/engine"
	"github.com/donaldgifford/stock-tracker/internal/notify"
	"github.com/donaldgifford/stock-tracker/internal/store"
	"github.com/donaldgifford/stock-tracker/pkg/logger"
)

const connectTimeout = 30 * time.Second

// app is what a command needs to talk to the inventory.
type app struct {
	cfg    *config.Config
	log    *slog.Logger
	store  store.Store
	engine *engine.Engine
}

func (a *app) Close() {
	a.store.Close()
}

// openApp loads the config, connects the store and builds the engine.
func openApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	s, err := openStore(ctx, &cfg.Database, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:    cfg,
		log:    log,
		store:  s,
		engine: newEngine(cfg, s, buildNotifier(&cfg.Notifications, log), log),
	}, nil
}

// openStore connects the configured backend and applies migrations unless
// database.auto_migrate is false.
func openStore(ctx context.Context, db *config.DatabaseConfig, log *slog.Logger) (store.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var (
		s   store.Store
		err error
	)
	switch db.Driver {
	case config.DriverMySQL:
		s, err = store.NewMySQLStore(ctx, db.DSN(), db.PoolSize)
	case config.DriverMemory:
		log.Warn("using the in-memory store, nothing is persisted")
		s = store.NewMemoryStore()
	default:
		s, err = store.NewPostgresStore(ctx, db.DSN(), db.PoolSize)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", db.Driver, err)
	}

	if db.MigrateOnStart() {
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
		log.Debug("migrations applied", "driver", db.Driver)
	}

	return s, nil
}

// buildNotifier returns the enabled backends, fanned out when there are
// several, or a logging no-op when none is enabled.
func buildNotifier(cfg *config.NotificationsConfig, log *slog.Logger) notify.Notifier {
	var backends notify.Multi

	if cfg.Discord.Enabled {
		backends = append(backends, notify.NewDiscordNotifier(cfg.Discord.WebhookURL))
	}
	if cfg.Email.Enabled {
		var opts []notify.EmailOption
		if cfg.Email.Host != "" {
			opts = append(opts, notify.WithSendGridHost(cfg.Email.Host))
		}
		backends = append(backends, notify.NewEmailNotifier(cfg.Email.APIKey, cfg.Email.From, cfg.Email.To, opts...))
	}

	switch len(backends) {
	case 0:
		return notify.NewNoOpNotifier(log)
	case 1:
		return backends[0]
	default:
		return backends
	}
}

func newEngine(cfg *config.Config, s store.Store, n notify.Notifier, log *slog.Logger) *engine.Engine {
	return engine.NewEngine(s, n,
		engine.WithLogger(log),
		engine.WithLowStockThreshold(cfg.Alerts.LowStockThreshold),
		engine.WithBrokenDisplayLimit(cfg.Alerts.BrokenDisplayLimit),
	)
}
