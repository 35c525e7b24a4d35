package helpers

import (
	"context"
	"sync/atomic"
)

type tallyKey struct{}

// tally counts what one update sent back to the chat.
type tally struct {
	messages atomic.Int32
	keyboard atomic.Bool
}

// WithTally starts a fresh outbound count for the update behind ctx.
func WithTally(ctx context.Context) context.Context {
	return context.WithValue(ctx, tallyKey{}, &tally{})
}

// CountSent records one delivered message. Contexts without a tally ignore it.
func CountSent(ctx context.Context, keyboard bool) {
	t, ok := ctx.Value(tallyKey{}).(*tally)
	if !ok {
		return
	}
	t.messages.Add(1)
	if keyboard {
		t.keyboard.Store(true)
	}
}

// Sent reports how many messages the update produced and whether any of them
// carried a keyboard.
func Sent(ctx context.Context) (int, bool) {
	t, ok := ctx.Value(tallyKey{}).(*tally)
	if !ok {
		return 0, false
	}
	return int(t.messages.Load()), t.keyboard.Load()
}
