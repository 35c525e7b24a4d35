package middleware

import (
	"log/slog"

	"github.com/m3rciful/sneakerbot/core/logger"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// AdminOptions configures the admin capability gate.
type AdminOptions struct {
	AdminID int64
	// OnReject answers a refused update. Nil drops it silently.
	OnReject tele.HandlerFunc
}

// IsAdmin reports whether userID is the configured administrator.
// An unset admin id matches nobody.
func (o AdminOptions) IsAdmin(userID int64) bool {
	return o.AdminID != 0 && userID == o.AdminID
}

// AdminOnlyMiddleware lets only the administrator reach next.
func AdminOnlyMiddleware(opts AdminOptions) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			var uid int64
			if u := c.Sender(); u != nil {
				uid = u.ID
			}
			if opts.IsAdmin(uid) {
				return next(c)
			}
			logger.Info(tghelpers.BuildContext(c), "tg", "access.denied",
				slog.String("outcome", "denied"),
				slog.Bool("admin_configured", opts.AdminID != 0),
			)
			if opts.OnReject == nil {
				return nil
			}
			return opts.OnReject(c)
		}
	}
}
