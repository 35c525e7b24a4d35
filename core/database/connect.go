package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	"github.com/m3rciful/sneakerbot/core/logger"
)

const (
	// DriverPostgres is the sqlx driver name for lib/pq.
	DriverPostgres = "postgres"
	// DriverSQLite is the sqlx driver name for mattn/go-sqlite3.
	DriverSQLite = "sqlite3"
)

const (
	readyTimeout  = 30 * time.Second
	readyInterval = 2 * time.Second
)

// Target is a parsed DATABASE_URL.
type Target struct {
	Driver string
	DSN    string
	Host   string
	Name   string
}

// ParseURL maps a connection URL to a driver and DSN. postgres:// and
// postgresql:// URLs are passed to lib/pq unchanged; sqlite:// and sqlite3://
// URLs are reduced to the file path that follows the scheme.
func ParseURL(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return Target{}, fmt.Errorf("database url %q has no scheme", raw)
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		u, err := url.Parse(raw)
		if err != nil {
			return Target{}, fmt.Errorf("parse database url: %w", err)
		}
		return Target{
			Driver: DriverPostgres,
			DSN:    raw,
			Host:   u.Host,
			Name:   strings.TrimPrefix(u.Path, "/"),
		}, nil
	case "sqlite", "sqlite3":
		if rest == "" {
			return Target{}, fmt.Errorf("database url %q has no file path", raw)
		}
		return Target{Driver: DriverSQLite, DSN: rest, Name: rest}, nil
	}
	return Target{}, fmt.Errorf("unsupported database scheme %q", scheme)
}

// Connect opens the database, waits for it to accept connections and
// configures the pool.
func Connect(cfg coreconfig.DatabaseConfig) (*sqlx.DB, error) {
	target, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	db, err := sqlx.Open(target.Driver, target.DSN)
	if err != nil {
		return nil, fmt.Errorf("db open: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), readyTimeout)
	defer cancel()
	if err := waitReady(ctx, db); err != nil {
		logger.DB.Error("db connect failed",
			slog.String("event", "db.connect"),
			slog.String("driver", target.Driver),
			slog.String("host", target.Host),
			slog.String("db", target.Name),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
			slog.String("err", err.Error()),
		)
		_ = db.Close()
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pool := cfg.MaxConnections
	if target.Driver == DriverSQLite {
		// SQLite allows a single writer.
		pool = 1
	}
	db.SetMaxOpenConns(pool)
	db.SetMaxIdleConns(pool)

	logger.DB.Info("db connected",
		slog.String("event", "db.connect"),
		slog.String("driver", target.Driver),
		slog.String("host", target.Host),
		slog.String("db", target.Name),
		slog.Int("pool_open", pool),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return db, nil
}

// waitReady pings until the database answers or ctx expires.
func waitReady(ctx context.Context, db *sqlx.DB) error {
	for {
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		logger.DB.Debug("db not ready",
			slog.String("event", "db.ping"),
			slog.String("err", err.Error()),
		)
		timer := time.NewTimer(readyInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("timeout waiting for database: %w", err)
		case <-timer.C:
		}
	}
}
