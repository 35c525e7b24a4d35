package middleware

import (
	"log/slog"
	"sync"
	"time"

	"github.com/m3rciful/sneakerbot/core/logger"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// seenUpdates remembers recently logged update ids for a short while.
type seenUpdates struct {
	mu   sync.Mutex
	ttl  time.Duration
	seen map[int]time.Time
}

// first reports whether id has not been seen within ttl, and marks it seen.
func (s *seenUpdates) first(id int, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, at := range s.seen {
		if now.Sub(at) > s.ttl {
			delete(s.seen, k)
		}
	}
	if _, dup := s.seen[id]; dup {
		return false
	}
	s.seen[id] = now
	return true
}

var received = &seenUpdates{ttl: 10 * time.Second, seen: make(map[int]time.Time)}

// LoggerMiddleware builds the per-update context (rid, ids, logger) and
// writes a sampled update.received line, once per update id.
func LoggerMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		upd := c.Update()
		var userID, chatID int64
		if u := c.Sender(); u != nil {
			userID = u.ID
		}
		if ch := c.Chat(); ch != nil {
			chatID = ch.ID
		}
		rid := logger.BuildRID(upd.ID, chatID, userID)
		c.Set("rid", rid)

		ctx := logger.WithUpdateMeta(logger.WithRID(logger.Background(), rid), upd.ID, userID, chatID)
		ctx = logger.WithLogger(ctx, logger.TG)
		tghelpers.StoreContext(c, ctx)

		if logger.ShouldSampleDebug() && received.first(upd.ID, time.Now()) {
			logger.LogEvent(ctx, logger.TG, slog.LevelDebug, "update.received", receiptAttrs(c, upd)...)
		}
		return next(c)
	}
}

func receiptAttrs(c tele.Context, upd tele.Update) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("status", "ok"),
		slog.String("kind", UpdateKind(upd)),
	}
	if u := c.Sender(); u != nil && u.Username != "" {
		attrs = append(attrs, slog.String("username", logger.SanitizeLimit(u.Username, 64)))
	}
	if upd.Callback != nil {
		return append(attrs, slog.String("payload", logger.SanitizeLimit(upd.Callback.Data, 128)))
	}
	if text := c.Text(); text != "" {
		attrs = append(attrs, slog.String("payload", logger.SanitizeLimit(text, 256)))
	}
	return attrs
}
