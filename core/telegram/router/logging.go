package router

import (
	"cmp"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/metrics"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// handleWithSummary runs fn as handler name and writes one handler.handled
// line for it.
func handleWithSummary(c tele.Context, name string, start time.Time, fn func() error, extras ...slog.Attr) error {
	tghelpers.WithHandler(c, name)
	err := fn()
	logHandlerSummary(c, name, start, "", err, extras...)
	return err
}

// logHandlerSummary records the handler metrics and logs the result. status
// overrides the outcome-derived status label when set.
func logHandlerSummary(c tele.Context, name string, start time.Time, status string, err error, extras ...slog.Attr) {
	ctx := tghelpers.WithHandler(c, name)
	took := time.Since(start)
	outcome := metrics.Outcome(err)
	status = cmp.Or(status, outcome)

	m := metrics.Default()
	m.HandlerTotal.WithLabelValues(name, status).Inc()
	m.HandlerDuration.WithLabelValues(name).Observe(took.Seconds())

	sent, withKeyboard := tghelpers.Sent(ctx)
	lvl := slog.LevelInfo
	attrs := make([]slog.Attr, 0, 8+len(extras))
	attrs = append(attrs,
		slog.String("status", status),
		slog.String("outcome", outcome),
		slog.Int("messages", sent),
		slog.Bool("kb", withKeyboard),
		slog.Duration("duration", took),
	)
	if err != nil {
		lvl = slog.LevelError
		attrs = append(attrs,
			slog.String("err_code", deriveErrorCode(err)),
			slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
		)
	}
	logger.LogEvent(ctx, logger.TG, lvl, "handler.handled", append(attrs, extras...)...)
}

// normalizeHandlerName turns "/Add Shoe" into "add_shoe"; blank becomes "unknown".
func normalizeHandlerName(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return "unknown"
	}
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}

type errorCoder interface{ Code() string }

// deriveErrorCode returns the first Code() found in the chain, upper snake
// cased, or else the error's type name.
func deriveErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var ec errorCoder
	if errors.As(err, &ec) {
		if code := strings.Fields(ec.Code()); len(code) > 0 {
			return strings.ToUpper(strings.Join(code, "_"))
		}
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToUpper(cmp.Or(t.Name(), "unknown_error"))
}
