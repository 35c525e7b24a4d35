// Package bootstrap brings up the infrastructure the bot needs before it can
// take updates: logging, the database, its schema and seed data.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	coredatabase "github.com/m3rciful/sneakerbot/core/database"
	"github.com/m3rciful/sneakerbot/core/logger"
)

// Seeder fills reference data once the schema is in place.
type Seeder interface {
	Seed(ctx context.Context, db *sqlx.DB) error
}

// SeederFunc lets a plain function act as a Seeder.
type SeederFunc func(ctx context.Context, db *sqlx.DB) error

func (f SeederFunc) Seed(ctx context.Context, db *sqlx.DB) error { return f(ctx, db) }

// Options configures Run. The function fields replace the real logger,
// connection and migration steps in tests.
type Options struct {
	Config *coreconfig.Config
	// Migrations holds migrations/<driver>/*.sql; nil skips the migrate step.
	Migrations fs.FS
	Seeders    []Seeder

	LoggerInit func(*coreconfig.Config) error
	Connect    func(coreconfig.DatabaseConfig) (*sqlx.DB, error)
	Migrate    func(*sqlx.DB, fs.FS) error
}

// Result is the infrastructure Run brought up.
type Result struct {
	DB *sqlx.DB
}

// Run initializes the logger, opens the database, migrates and seeds it.
// If a step after the connection fails, the connection is closed again.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Config == nil {
		return nil, errors.New("bootstrap: nil config provided")
	}
	opts.fill()

	if err := opts.LoggerInit(opts.Config); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}
	var db *sqlx.DB
	err := timed(ctx, "connect", func() (err error) {
		db, err = opts.Connect(opts.Config.Database)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
	}

	steps := make([]func() error, 0, len(opts.Seeders)+1)
	if opts.Migrations != nil {
		steps = append(steps, func() error {
			return timed(ctx, "migrate", func() error { return opts.Migrate(db, opts.Migrations) })
		})
	}
	for _, s := range opts.Seeders {
		if s != nil {
			steps = append(steps, func() error {
				return timed(ctx, "seed", func() error { return s.Seed(ctx, db) })
			})
		}
	}
	for _, step := range steps {
		if err := step(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
	}
	return &Result{DB: db}, nil
}

// timed runs fn and logs how long the named step took.
func timed(ctx context.Context, step string, fn func() error) error {
	start := time.Now()
	err := fn()
	attrs := []slog.Attr{
		slog.String("step", step),
		slog.Duration("duration", time.Since(start)),
	}
	if err != nil {
		logger.Error(ctx, "app", "bootstrap.step", append(attrs,
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)...)
		return fmt.Errorf("%s: %w", step, err)
	}
	logger.Debug(ctx, "app", "bootstrap.step", append(attrs, slog.String("status", "ok"))...)
	return nil
}

func (o *Options) fill() {
	if o.LoggerInit == nil {
		o.LoggerInit = logger.InitLogger
	}
	if o.Connect == nil {
		o.Connect = coredatabase.Connect
	}
	if o.Migrate == nil {
		o.Migrate = coredatabase.RunMigrations
	}
}
