package helpers

import (
	"log/slog"

	"github.com/m3rciful/sneakerbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Alert answers the current callback with a modal alert.
func Alert(c tele.Context, text string) error {
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// Deny tells the sender the action is not theirs to take: an alert for a
// button press, a plain message for a command.
func Deny(c tele.Context, text string) error {
	ctx := BuildContext(c)
	logger.Debug(ctx, "tg", "access.denied",
		slog.String("status", "skip"),
		slog.String("reason", "not_admin"),
	)
	if c.Callback() != nil {
		return Alert(c, text)
	}
	if err := c.Send(text); err != nil {
		return err
	}
	CountSent(ctx, false)
	return nil
}
