package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
	"github.com/m3rciful/sneakerbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Middleware is a named global middleware, installed with bot.Use in order.
type Middleware struct {
	Name string
	Use  func(next tele.HandlerFunc) tele.HandlerFunc
}

// Route binds a handler to a telebot endpoint (a command string, tele.OnText,
// tele.OnCallback, ...).
type Route struct {
	Endpoint any
	Handler  tele.HandlerFunc
}

// RunOptions configures RunTelegram.
type RunOptions struct {
	Config   *coreconfig.Config
	Registry *Registry
	// Bot is built from Config when nil.
	Bot *tele.Bot

	Middlewares []Middleware
	Routes      []Route

	// KeepWebhook leaves a registered webhook in place when long-polling.
	KeepWebhook bool

	OnStart func(ctx context.Context, rt Runtime) error
	OnStop  func(ctx context.Context, rt Runtime) error
}

// Runtime is what lifecycle hooks get to see.
type Runtime struct {
	Bot      *tele.Bot
	Registry *Registry
}

// NewBot builds a bot for cfg without starting its poller.
func NewBot(cfg *coreconfig.Config) (*tele.Bot, error) {
	if cfg == nil {
		return nil, errors.New("telegram: nil config provided")
	}
	start := time.Now()
	tr := TransportFrom(cfg)
	bot, err := tele.NewBot(tele.Settings{
		Token:   cfg.Telegram.Token,
		Poller:  tr.Poller(),
		Client:  tr.Client(),
		OnError: logUpdateError,
	})
	if err != nil {
		return nil, fmt.Errorf("telegram: bot initialization failed: %s", RedactError(err))
	}
	attrs := []slog.Attr{slog.Duration("duration", time.Since(start))}
	if tr.Webhook {
		attrs = append(attrs,
			slog.String("mode", coreconfig.RunModeWebhook),
			slog.String("listen", tr.Listen),
			slog.String("public_url", tr.PublicURL),
		)
	} else {
		attrs = append(attrs,
			slog.String("mode", coreconfig.RunModeLongpoll),
			slog.Int("timeout_seconds", int(tr.PollWait/time.Second)),
		)
	}
	logger.LogEvent(logger.Background(), logger.TG, slog.LevelInfo, "mode", attrs...)
	return bot, nil
}

// logUpdateError receives errors that escaped every handler and middleware.
func logUpdateError(err error, c tele.Context) {
	ctx := logger.Background()
	if c != nil {
		ctx = logger.WithUpdateMeta(ctx, c.Update().ID, 0, 0)
	}
	logger.LogEvent(ctx, logger.TG, slog.LevelError, "tg.error",
		slog.String("status", "fail"),
		slog.String("err", RedactError(err)),
		slog.String("err_kind", ClassifyError(err)),
	)
}

// RunTelegram installs middlewares, routes and the command menu, then serves
// updates until ctx is cancelled. Cancellation is a clean exit.
func RunTelegram(ctx context.Context, opts RunOptions) error {
	if opts.Config == nil {
		return errors.New("telegram: nil config provided")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	reg := opts.Registry
	if reg == nil {
		reg = NewRegistry()
	}
	bot := opts.Bot
	if bot == nil {
		var err error
		if bot, err = NewBot(opts.Config); err != nil {
			return err
		}
	}

	if _, hooked := bot.Poller.(*tele.Webhook); !hooked && !opts.KeepWebhook {
		dropWebhook(bot)
	}
	for _, mw := range opts.Middlewares {
		if mw.Use != nil {
			bot.Use(mw.Use)
		}
	}
	for _, r := range opts.Routes {
		if r.Endpoint != nil && r.Handler != nil {
			bot.Handle(r.Endpoint, r.Handler)
		}
	}
	SetupCommands(bot, reg)

	rt := Runtime{Bot: bot, Registry: reg}
	if opts.OnStart != nil {
		if err := opts.OnStart(ctx, rt); err != nil {
			return err
		}
	}
	runErr := serve(ctx, bot)
	if opts.OnStop != nil {
		if err := opts.OnStop(context.WithoutCancel(ctx), rt); err != nil {
			return err
		}
	}
	return runErr
}

// dropWebhook clears a webhook left by an earlier deployment; Telegram refuses
// getUpdates while one is set.
func dropWebhook(bot *tele.Bot) {
	ctx := logger.Background()
	if err := bot.RemoveWebhook(false); err != nil {
		logger.LogEvent(ctx, logger.TG, slog.LevelWarn, "delete_webhook",
			slog.String("status", "fail"),
			slog.String("err", RedactError(err)),
		)
		return
	}
	logger.LogEvent(ctx, logger.TG, slog.LevelInfo, "delete_webhook", slog.String("status", "ok"))
}

func serve(ctx context.Context, bot *tele.Bot) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		bot.Start()
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		bot.Stop()
		<-done
	}
	if err := ctx.Err(); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
