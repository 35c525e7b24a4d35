package database

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/sneakerbot/core/logger"
)

// upScripts is a sorted list of *.up.sql file names.
type upScripts []string

func readUpScripts(fsys fs.FS, dir string) upScripts {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil
	}
	var names upScripts
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".up.sql") {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names
}

// scriptVersion reads the numeric prefix of a migrate file name.
func scriptVersion(name string) uint64 {
	digits, _, _ := strings.Cut(name, "_")
	v, _ := strconv.ParseUint(digits, 10, 64)
	return v
}

// between returns the scripts with versions in (from, to].
func (s upScripts) between(from, to uint64) upScripts {
	var out upScripts
	for _, name := range s {
		if v := scriptVersion(name); v > from && v <= to {
			out = append(out, name)
		}
	}
	return out
}

func (s upScripts) attrs(prefix string) []slog.Attr {
	preview, cut := logger.SummarizeStrings(s, 6)
	attrs := []slog.Attr{slog.Int(prefix+"_total", len(s))}
	if preview != "" {
		attrs = append(attrs, slog.String(prefix+"_preview", preview))
	}
	if cut {
		attrs = append(attrs, slog.Bool(prefix+"_truncated", true))
	}
	return attrs
}

func targetDriver(db *sqlx.DB) (migratedb.Driver, error) {
	switch db.DriverName() {
	case DriverPostgres:
		return postgres.WithInstance(db.DB, &postgres.Config{})
	case DriverSQLite:
		return sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	}
	return nil, fmt.Errorf("unsupported driver %q", db.DriverName())
}

// RunMigrations applies the up scripts under migrations/<driver> in fsys.
// The migrate handle is left open: closing it would close db as well.
func RunMigrations(db *sqlx.DB, fsys fs.FS) error {
	if db == nil {
		return errors.New("migrate: nil database")
	}
	ctx := logger.Background()
	driver := db.DriverName()
	dir := path.Join("migrations", driver)
	scripts := readUpScripts(fsys, dir)
	logger.LogEvent(ctx, logger.MIG, slog.LevelDebug, "migrate.resolve",
		append([]slog.Attr{slog.String("path", dir)}, scripts.attrs("files")...)...)

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("migrate: open %s: %w", dir, err)
	}
	defer src.Close()

	target, err := targetDriver(db)
	if err != nil {
		logger.LogEvent(ctx, logger.MIG, slog.LevelError, "migrate.init",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("migrate: init: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("migrate: init: %w", err)
	}

	from, _, _ := m.Version()
	start := time.Now()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.LogEvent(ctx, logger.MIG, slog.LevelError, "migrate.apply",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
			slog.Duration("duration", time.Since(start)),
		)
		return fmt.Errorf("migrate: apply: %w", err)
	}
	took := time.Since(start)
	to, _, _ := m.Version()

	applied := scripts.between(uint64(from), uint64(to))
	if len(applied) > 0 {
		logger.LogEvent(ctx, logger.MIG, slog.LevelDebug, "migrate.applied", applied.attrs("files")...)
	}
	logger.LogEvent(ctx, logger.MIG, slog.LevelInfo, "migrate.summary",
		slog.String("status", "ok"),
		slog.String("driver", driver),
		slog.Uint64("from_ver", uint64(from)),
		slog.Uint64("to_ver", uint64(to)),
		slog.Int("count", len(applied)),
		slog.Duration("duration", took),
	)
	return nil
}
