package logger

import (
	"context"
	"log/slog"
)

type (
	metaKey   struct{}
	loggerKey struct{}
)

// Meta identifies the Telegram update a log line was written for.
type Meta struct {
	RID      string
	UpdateID int
	UserID   int64
	ChatID   int64
	Handler  string
}

// MetaFrom returns the update metadata carried by ctx.
func MetaFrom(ctx context.Context) Meta {
	if ctx == nil {
		return Meta{}
	}
	m, _ := ctx.Value(metaKey{}).(Meta)
	return m
}

func updateMeta(ctx context.Context, edit func(*Meta)) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	m := MetaFrom(ctx)
	edit(&m)
	return context.WithValue(ctx, metaKey{}, m)
}

// WithRID sets the correlation id of the update.
func WithRID(ctx context.Context, rid string) context.Context {
	return updateMeta(ctx, func(m *Meta) { m.RID = rid })
}

// WithUpdateMeta sets the update, user and chat ids.
func WithUpdateMeta(ctx context.Context, updateID int, userID, chatID int64) context.Context {
	return updateMeta(ctx, func(m *Meta) {
		m.UpdateID, m.UserID, m.ChatID = updateID, userID, chatID
	})
}

// WithHandler names the handler serving the update. An empty name is ignored.
func WithHandler(ctx context.Context, handler string) context.Context {
	if handler == "" {
		if ctx == nil {
			return context.Background()
		}
		return ctx
	}
	return updateMeta(ctx, func(m *Meta) { m.Handler = handler })
}

// fill copies the non-zero ids into e without overriding explicit attrs.
func (m Meta) fill(e entry) {
	if m.RID != "" {
		e.setDefault("rid", m.RID)
	}
	if m.UpdateID != 0 {
		e.setDefault("update_id", int64(m.UpdateID))
	}
	if m.UserID != 0 {
		e.setDefault("user_id", m.UserID)
	}
	if m.ChatID != 0 {
		e.setDefault("chat_id", m.ChatID)
	}
	if m.Handler != "" {
		e.setDefault("handler", m.Handler)
	}
}

// WithLogger carries log in ctx for LogEvent calls that pass a nil logger.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if log == nil {
		return ctx
	}
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger stored by WithLogger, or L.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return L
}
