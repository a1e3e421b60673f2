package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/srs-scheduler/internal/adapter/postgres"
	cardrepo "github.com/heartmarshall/srs-scheduler/internal/adapter/postgres/card"
	readingrepo "github.com/heartmarshall/srs-scheduler/internal/adapter/postgres/reading"
	"github.com/heartmarshall/srs-scheduler/internal/adapter/postgres/reviewlog"
	"github.com/heartmarshall/srs-scheduler/internal/config"
	"github.com/heartmarshall/srs-scheduler/internal/service/reading"
	"github.com/heartmarshall/srs-scheduler/internal/service/study"
)

// App holds the wired services of one process.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Pool    *pgxpool.Pool
	Study   *study.Service
	Reading *reading.Service
}

// New loads configuration from configPath (empty means CONFIG_PATH or
// ./config.yaml), connects to PostgreSQL and builds the services.
// Callers must Close the returned App.
func New(ctx context.Context, configPath string) (*App, error) {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	logger := NewLogger(cfg.Log)
	logger.InfoContext(ctx, "starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	app, err := wire(logger, cfg, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return app, nil
}

func wire(logger *slog.Logger, cfg *config.Config, pool *pgxpool.Pool) (*App, error) {
	tx := postgres.NewTxManager(pool)

	studySvc, err := study.NewService(
		logger,
		cardrepo.New(pool),
		reviewlog.New(pool),
		tx,
		cfg.Study.Domain(),
		cfg.FSRS.Parameters(),
	)
	if err != nil {
		return nil, fmt.Errorf("study service: %w", err)
	}

	return &App{
		Config:  cfg,
		Log:     logger,
		Pool:    pool,
		Study:   studySvc,
		Reading: reading.NewService(logger, readingrepo.New(pool), tx, cfg.Reading.Domain()),
	}, nil
}

// Migrate applies pending schema migrations.
func (a *App) Migrate(ctx context.Context) error {
	return postgres.Migrate(ctx, a.Pool, a.Log)
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
	a.Log.Info("application stopped")
}
