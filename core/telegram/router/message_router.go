package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/sneakerbot/core/telegram"
	"github.com/m3rciful/sneakerbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Conversation receives free text while a multi-step dialog is open for the sender.
type Conversation interface {
	Active(userID int64) bool
	HandleText(c tele.Context) error
}

// TextRoutes builds the handler for plain text updates. Text goes to an open
// conversation first, then to commands matched by alias, then to the registry
// fallback.
func TextRoutes(conv Conversation, reg *tg.Registry) []tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		var userID int64
		if sender := c.Sender(); sender != nil {
			userID = sender.ID
		}

		if conv != nil && conv.Active(userID) {
			return handleWithSummary(c, "conversation", start, func() error {
				return conv.HandleText(c)
			})
		}

		if reg != nil {
			text := strings.TrimSpace(c.Text())
			if key, cmd, ok := reg.LookupCommand(text); ok && strings.HasPrefix(text, "/") && cmd.Handler != nil && !cmd.AdminOnly {
				return handleWithSummary(c, normalizeHandlerName(key), start, func() error {
					return cmd.Handler(c)
				})
			}
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, func() error {
					return fb(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
		},
	}
}
