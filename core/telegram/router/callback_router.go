package router

import (
	"log/slog"
	"time"

	"github.com/m3rciful/sneakerbot/core/logger"
	tg "github.com/m3rciful/sneakerbot/core/telegram"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"
	"github.com/m3rciful/sneakerbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// Decoder splits raw callback data into a registry key and a typed payload
// that handlers read back with helpers.CallbackPayload.
type Decoder func(data string) (key string, payload any, err error)

// CallbackOptions customises decoding, gating and fallback behaviour for callbacks.
type CallbackOptions struct {
	Decode   Decoder
	Admin    middleware.AdminOptions
	NotFound tele.HandlerFunc
}

// CallbackRoute returns a handler that routes callbacks through the registry.
// Callbacks flagged AdminOnly pass the capability gate before their handler runs.
func CallbackRoute(reg *tg.Registry, opts CallbackOptions) tg.Route {
	gate := middleware.AdminOnlyMiddleware(opts.Admin)

	handler := func(c tele.Context) error {
		start := time.Now()
		cb := c.Callback()
		if cb == nil {
			return nil
		}

		key, payload, err := decode(opts.Decode, cb.Data)
		if err != nil || key == "" {
			extras := []slog.Attr{
				slog.String("reason", "not_found"),
				slog.String("payload", logger.SanitizeLimit(cb.Data, 128)),
			}
			return handleWithSummary(c, "callback.unknown", start, func() error {
				return notFound(reg, opts)(c)
			}, extras...)
		}
		tghelpers.SetCallbackPayload(c, payload)

		name := "callback." + normalizeHandlerName(key)
		extras := []slog.Attr{slog.String("action", key)}

		entry, ok := reg.GetCallback(key)
		if !ok || entry.Handler == nil {
			extras = append(extras, slog.String("reason", "not_found"))
			return handleWithSummary(c, name, start, func() error {
				return notFound(reg, opts)(c)
			}, extras...)
		}

		h := entry.Handler
		if entry.AdminOnly {
			h = gate(h)
		}
		return handleWithSummary(c, name, start, func() error {
			return h(c)
		}, extras...)
	}
	return tg.Route{
		Endpoint: tele.OnCallback,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

func decode(fn Decoder, data string) (string, any, error) {
	if fn == nil {
		return data, data, nil
	}
	return fn(data)
}

func notFound(reg *tg.Registry, opts CallbackOptions) tele.HandlerFunc {
	if fb := reg.CallbackNotFound(); fb != nil {
		return fb
	}
	if opts.NotFound != nil {
		return opts.NotFound
	}
	return func(c tele.Context) error { return c.Respond() }
}
