package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
)

func sqliteConnect(t *testing.T) func(coreconfig.DatabaseConfig) (*sqlx.DB, error) {
	return func(coreconfig.DatabaseConfig) (*sqlx.DB, error) {
		return sqlx.Open("sqlite3", ":memory:")
	}
}

func TestRunPipelineOrder(t *testing.T) {
	var steps []string
	opts := Options{
		Config:     &coreconfig.Config{},
		Migrations: fstest.MapFS{},
		LoggerInit: func(*coreconfig.Config) error {
			steps = append(steps, "logger")
			return nil
		},
		Connect: func(cfg coreconfig.DatabaseConfig) (*sqlx.DB, error) {
			steps = append(steps, "connect")
			return sqliteConnect(t)(cfg)
		},
		Migrate: func(*sqlx.DB, fs.FS) error {
			steps = append(steps, "migrate")
			return nil
		},
		Seeders: []Seeder{SeederFunc(func(context.Context, *sqlx.DB) error {
			steps = append(steps, "seed")
			return nil
		})},
	}

	res, err := Run(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.DB.Close() })
	assert.Equal(t, []string{"logger", "connect", "migrate", "seed"}, steps)
}

func TestRunStopsOnSeedFailure(t *testing.T) {
	boom := errors.New("boom")
	opts := Options{
		Config:     &coreconfig.Config{},
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Connect:    sqliteConnect(t),
		Seeders: []Seeder{SeederFunc(func(context.Context, *sqlx.DB) error {
			return boom
		})},
	}

	_, err := Run(context.Background(), opts)
	require.ErrorIs(t, err, boom)
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	require.Error(t, err)
}

func TestRunClosesDBWhenMigrationFails(t *testing.T) {
	var db *sqlx.DB
	boom := errors.New("bad migration")
	_, err := Run(context.Background(), Options{
		Config:     &coreconfig.Config{},
		Migrations: fstest.MapFS{},
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Connect: func(cfg coreconfig.DatabaseConfig) (*sqlx.DB, error) {
			var err error
			db, err = sqliteConnect(t)(cfg)
			return db, err
		},
		Migrate: func(*sqlx.DB, fs.FS) error { return boom },
	})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "migrate")
	assert.Error(t, db.Ping())
}
