package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/devstefancho/claude-hook-logger/internal/adapters/turso"
	"github.com/devstefancho/claude-hook-logger/internal/clock"
	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
	"github.com/devstefancho/claude-hook-logger/internal/infrastructure/config"
	"github.com/devstefancho/claude-hook-logger/internal/infrastructure/database"
	"github.com/devstefancho/claude-hook-logger/internal/logger"
	"github.com/devstefancho/claude-hook-logger/internal/query"
)

// app is set by the root command before any subcommand runs.
var app *AppContext

// appClock is replaced in tests.
var appClock = clock.Real()

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config  *config.Config
	Store   *eventstore.Store
	Queries *query.Service
	Tools   *query.Registry
	Clock   clock.Clock
	Logger  zerolog.Logger
}

// NewAppContext loads the configuration, applies the flag overrides and
// wires the query layer. The snapshot database is opened on demand.
func NewAppContext(dir, logLevel string) (*AppContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return newAppContext(cfg, dir, logLevel), nil
}

func newAppContext(cfg *config.Config, dir, logLevel string) *AppContext {
	if dir != "" {
		cfg.Dir = dir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger.Configure(logger.LogLevel(cfg.LogLevel), cfg.LogPretty)
	log := logger.New(os.Stderr, logger.LogLevel(cfg.LogLevel), cfg.LogPretty)

	store := eventstore.NewStore(cfg.Dir)
	svc := query.NewService(store, appClock, logger.NewAdapter(log), query.Options{
		LiveThreshold: cfg.LiveThreshold,
		SearchLimit:   cfg.SearchLimit,
		SearchMax:     cfg.SearchMax,
	})

	return &AppContext{
		Config:  cfg,
		Store:   store,
		Queries: svc,
		Tools:   query.NewRegistry(svc),
		Clock:   appClock,
		Logger:  log,
	}
}

// OpenSnapshots connects to the snapshot database and applies pending
// migrations. The caller closes the returned client.
func (a *AppContext) OpenSnapshots(ctx context.Context) (*database.Client, *turso.Repositories, error) {
	client, err := database.New(ctx, a.Config.DatabaseURL, a.Config.DatabaseToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return client, turso.NewRepositories(client.DB), nil
}
