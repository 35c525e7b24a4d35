package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/metrics"
	coretelegram "github.com/m3rciful/sneakerbot/core/telegram"
)

// TelegramApp is a bootstrapped application ready to hand its routes to the bot.
type TelegramApp interface {
	TelegramRunOptions() (coretelegram.RunOptions, error)
}

// Options are the seams of Run. Only Bootstrap is required; the rest default
// to the real config loader, logger, bot runtime and metrics server.
type Options struct {
	LoadConfig func(path string) (*coreconfig.Config, error)
	Bootstrap  func(ctx context.Context, cfg *coreconfig.Config) (TelegramApp, error)

	ShutdownLogger func() error
	RunTelegram    func(ctx context.Context, opts coretelegram.RunOptions) error
	ServeMetrics   func(ctx context.Context, listen string) error
}

func (o Options) withDefaults() Options {
	if o.LoadConfig == nil {
		o.LoadConfig = coreconfig.Load
	}
	if o.ShutdownLogger == nil {
		o.ShutdownLogger = logger.Shutdown
	}
	if o.RunTelegram == nil {
		o.RunTelegram = coretelegram.RunTelegram
	}
	if o.ServeMetrics == nil {
		o.ServeMetrics = metrics.Serve
	}
	return o
}

// Run loads the config at cfgPath, bootstraps the app and serves updates
// until SIGINT or SIGTERM.
func Run(cfgPath string, opts Options) error {
	if opts.Bootstrap == nil {
		return errors.New("cmd: Bootstrap is required")
	}
	opts = opts.withDefaults()

	if cfgPath != "" {
		log.Printf("loading config: %s", cfgPath)
	}
	cfg, err := opts.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("cmd: failed to load config: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Bootstrap starts the logger, so its queue is drained even when a later
	// bootstrap step fails.
	defer func() {
		if err := opts.ShutdownLogger(); err != nil {
			log.Printf("logger shutdown error: %v", err)
		}
	}()
	startedAt := time.Now()
	app, err := opts.Bootstrap(ctx, cfg)
	if err != nil {
		return fmt.Errorf("cmd: bootstrap failed: %w", err)
	}
	if closer, ok := app.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn(logger.Background(), "app", "close", slog.String("err", err.Error()))
			}
		}()
	}

	runOpts, err := app.TelegramRunOptions()
	if err != nil {
		return fmt.Errorf("cmd: telegram options build failed: %w", err)
	}
	if listen := cfg.Metrics.Listen; listen != "" {
		go func() {
			if err := opts.ServeMetrics(ctx, listen); err != nil {
				logger.Error(logger.Background(), "metrics", "serve", slog.String("err", err.Error()))
			}
		}()
	}
	announceLifecycle(&runOpts, startedAt)
	return opts.RunTelegram(ctx, runOpts)
}

// announceLifecycle wraps the app's hooks with ready and shutdown log lines.
func announceLifecycle(ro *coretelegram.RunOptions, startedAt time.Time) {
	onStart, onStop := ro.OnStart, ro.OnStop
	ro.OnStart = func(ctx context.Context, rt coretelegram.Runtime) error {
		if onStart != nil {
			if err := onStart(ctx, rt); err != nil {
				return err
			}
		}
		logger.Info(ctx, "app", "ready", slog.Duration("startup_duration", time.Since(startedAt)))
		return nil
	}
	ro.OnStop = func(ctx context.Context, rt coretelegram.Runtime) error {
		logger.Info(ctx, "app", "shutdown")
		if onStop == nil {
			return nil
		}
		return onStop(ctx, rt)
	}
}
