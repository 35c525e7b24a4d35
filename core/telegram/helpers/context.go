// Package helpers carries per-update state on tele.Context: the logging
// context, the decoded callback payload and the outbound message tally.
package helpers

import (
	"context"

	"github.com/m3rciful/sneakerbot/core/logger"

	tele "gopkg.in/telebot.v4"
)

// Keys in tele.Context storage.
const (
	keyCtx     = "sneaker.ctx"
	keyPayload = "sneaker.payload"
	keyRID     = "rid"
)

// StoreContext keeps ctx on c for everything later in the chain.
func StoreContext(c tele.Context, ctx context.Context) {
	if c != nil && ctx != nil {
		c.Set(keyCtx, ctx)
	}
}

// ContextFrom returns the context kept by StoreContext, if any.
func ContextFrom(c tele.Context) (context.Context, bool) {
	if c == nil {
		return nil, false
	}
	ctx, ok := c.Get(keyCtx).(context.Context)
	return ctx, ok
}

// BuildContext returns the kept context, creating it on first use from the
// update, sender and chat ids.
func BuildContext(c tele.Context) context.Context {
	if ctx, ok := ContextFrom(c); ok {
		return ctx
	}
	upd := c.Update().ID
	user, chat := senderID(c), chatID(c)

	rid, _ := c.Get(keyRID).(string)
	if rid == "" {
		rid = logger.BuildRID(upd, chat, user)
	}
	ctx := logger.WithLogger(
		logger.WithUpdateMeta(logger.WithRID(context.Background(), rid), upd, user, chat),
		logger.TG,
	)
	StoreContext(c, ctx)
	return ctx
}

// WithHandler tags the kept context with the handler serving the update.
func WithHandler(c tele.Context, handler string) context.Context {
	ctx := BuildContext(c)
	if handler != "" {
		ctx = logger.WithHandler(ctx, handler)
		StoreContext(c, ctx)
	}
	return ctx
}

// SetCallbackPayload keeps the decoded callback data for the handler.
func SetCallbackPayload(c tele.Context, payload any) { c.Set(keyPayload, payload) }

// CallbackPayload returns what SetCallbackPayload kept.
func CallbackPayload(c tele.Context) any { return c.Get(keyPayload) }

func senderID(c tele.Context) int64 {
	if u := c.Sender(); u != nil {
		return u.ID
	}
	return 0
}

func chatID(c tele.Context) int64 {
	if ch := c.Chat(); ch != nil {
		return ch.ID
	}
	return 0
}
