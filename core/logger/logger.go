// Package logger is the structured logging layer: one slog handler printing
// ordered JSON or key=value lines through a buffered background writer, plus
// per-update metadata carried in the context.
package logger

import (
	"cmp"
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/m3rciful/sneakerbot/core/buildinfo"
	coreconfig "github.com/m3rciful/sneakerbot/core/config"
)

var (
	setup sync.Once

	closeMu sync.Mutex
	closed  bool
	out     *lineWriter
	files   []io.Closer

	level slog.LevelVar

	debugSampler = newSampler(1, 50)
	trace        bool

	// L is the root logger. Until InitLogger runs it is slog.Default, so tests
	// can log without setup.
	L = slog.Default()

	DB    = L.With("component", "db")
	TG    = L.With("component", "tg")
	MIG   = L.With("component", "db.migrate")
	TWire = L.With("component", "tg.wire")
	SEED  = L.With("component", "db.seed")
)

// InitLogger installs the handler described by cfg as the process logger.
// Only the first call has any effect.
func InitLogger(cfg *coreconfig.Config) error {
	setup.Do(func() {
		var lc coreconfig.LoggingConfig
		if cfg != nil {
			lc = cfg.Logging
		}
		level.Set(parseLevel(lc.Level))
		debugSampler.Set(debugRatio(lc.DebugSample))
		trace = envFlag("TRACE") || envFlag("LOG_TRACE")

		var sinks []io.Writer
		sinks, files = openSinks(lc)
		out = newLineWriter(sinks, 64*1024)

		L = slog.New(newStructuredHandler(handlerConfig{
			level:    &level,
			writer:   out,
			format:   pickFormat(lc),
			keyOrder: keyOrder(lc.KeysOrder),
		}))
		slog.SetDefault(L)
		DB, TG, MIG = Component("db"), Component("tg"), Component("db.migrate")
		TWire, SEED = Component("tg.wire"), Component("db.seed")

		announce(cfg)
	})
	return nil
}

func announce(cfg *coreconfig.Config) {
	ctx := context.Background()
	attrs := []slog.Attr{
		slog.String("go_version", runtime.Version()),
		slog.String("build_version", buildinfo.Version),
		slog.String("build_commit", buildinfo.Commit),
		slog.String("build_time", buildinfo.Date),
	}
	if cfg == nil {
		Info(ctx, "app", "startup", attrs...)
		return
	}
	profile := strings.ToLower(strings.TrimSpace(cfg.Logging.Profile))
	attrs = append(attrs,
		slog.String("cfg_profile", cmp.Or(profile, "prod")),
		slog.String("mode", cfg.Telegram.RunMode),
		slog.Bool("admin_configured", cfg.Telegram.AdminID != 0),
	)
	Info(ctx, "app", "startup", attrs...)
	for _, w := range cfg.Warnings {
		Warn(ctx, "app", "config.warning", slog.String("cause", w))
	}
}

// Shutdown drains queued lines and closes log files. Later calls are no-ops.
func Shutdown() error {
	closeMu.Lock()
	defer closeMu.Unlock()
	if closed {
		return nil
	}
	closed = true

	var errs []error
	if out != nil {
		errs = append(errs, out.Close())
	}
	for _, f := range files {
		errs = append(errs, f.Close())
	}
	return errors.Join(errs...)
}

// pickFormat honours an explicit format and otherwise prints key=value for
// the dev and debug profiles, JSON everywhere else.
func pickFormat(lc coreconfig.LoggingConfig) logFormat {
	switch strings.ToLower(strings.TrimSpace(lc.Format)) {
	case "kv", "text", "pretty":
		return formatKV
	case "json":
		return formatJSON
	}
	switch strings.ToLower(lc.Profile) {
	case "dev", "debug":
		return formatKV
	}
	return formatJSON
}

// keyOrder parses a comma-separated key list; empty or "default" keeps the
// built-in order.
func keyOrder(raw string) []string {
	var order []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" && k != "default" {
			order = append(order, k)
		}
	}
	if len(order) == 0 {
		return slices.Clone(defaultKeyOrder)
	}
	return order
}

// openSinks always writes to stdout and adds the configured file when it can
// be opened. A file that cannot be opened is reported and skipped.
func openSinks(lc coreconfig.LoggingConfig) ([]io.Writer, []io.Closer) {
	dir, name := strings.TrimSpace(lc.Dir), strings.TrimSpace(lc.BotFile)
	if dir == "" || name == "" {
		return []io.Writer{os.Stdout}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Printf("logger: create %s: %v", dir, err)
		return []io.Writer{os.Stdout}, nil
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Printf("logger: open %s: %v", path, err)
		return []io.Writer{os.Stdout}, nil
	}
	return []io.Writer{os.Stdout, f}, []io.Closer{f}
}

// debugRatio defaults to one in fifty; "0" or an unparsable value disables
// sampling.
func debugRatio(raw string) (int, int) {
	if strings.TrimSpace(raw) == "" {
		return 1, 50
	}
	return parseRatio(raw)
}

func envFlag(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// Background is the context for log calls made outside an update.
func Background() context.Context {
	return context.Background()
}

// LogEvent writes attrs under event. A nil logg falls back to the logger in ctx.
func LogEvent(ctx context.Context, logg *slog.Logger, lvl slog.Level, event string, attrs ...slog.Attr) {
	if logg == nil {
		logg = FromContext(ctx)
	}
	if event != "" {
		attrs = append([]slog.Attr{slog.String("event", event)}, attrs...)
	}
	logg.LogAttrs(ctx, lvl, "", attrs...)
}

// Component returns L tagged with component name.
func Component(name string) *slog.Logger {
	if name = strings.TrimSpace(name); name == "" {
		return L
	}
	return L.With("component", name)
}

func Debug(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelDebug, event, attrs...)
}

func Info(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelInfo, event, attrs...)
}

func Warn(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelWarn, event, attrs...)
}

func Error(ctx context.Context, component, event string, attrs ...slog.Attr) {
	LogEvent(ctx, Component(component), slog.LevelError, event, attrs...)
}

// ShouldSampleDebug reports whether a high-volume debug event should be
// written. TRACE=1 lets all of them through.
func ShouldSampleDebug() bool {
	return trace || debugSampler.Allow()
}
