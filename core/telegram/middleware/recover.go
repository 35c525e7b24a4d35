package middleware

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/m3rciful/sneakerbot/core/logger"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// RecoverMiddleware turns a panic in next into an error for the update, so
// one bad update cannot stop the poller.
func RecoverMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("telegram: handler panic: %v", r)
				logger.Error(tghelpers.BuildContext(c), "tg", "tg.panic",
					slog.String("status", "fail"),
					slog.String("err", err.Error()),
					slog.String("stack", logger.SanitizeLimit(string(debug.Stack()), 4096)),
				)
			}
		}()
		return next(c)
	}
}
