// Package shop implements the storefront: menus, the paginated catalog, the
// admin screens and the item-creation conversation.
package shop

import (
	"context"
	"log/slog"
	"slices"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/telegram/middleware"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

const (
	component       = "shop"
	defaultPageSize = 3
)

// Config carries storefront settings.
type Config struct {
	AdminID int64
	// Name is shown in the main menu title.
	Name string
	// Contact is the Telegram username linked from item captions.
	Contact  string
	PageSize int
}

// Request identifies who triggered a handler and from where.
type Request struct {
	UserID int64
	ChatID int64
	// MessageID is the message whose button was pressed, zero for text input.
	MessageID  int
	CallbackID string
}

// Notice is the answer shown for a button press. A zero Notice only stops the
// client's loading indicator.
type Notice struct {
	Text  string
	Alert bool
}

func alert(text string) Notice { return Notice{Text: text, Alert: true} }

// Shop holds the storefront collaborators.
type Shop struct {
	cfg      Config
	admin    middleware.AdminOptions
	catalog  catalog.Store
	sessions session.Store
	out      Messenger
}

// New builds a shop over the given catalog, session table and messenger.
func New(cfg Config, store catalog.Store, sessions session.Store, out Messenger) *Shop {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	return &Shop{
		cfg:      cfg,
		admin:    middleware.AdminOptions{AdminID: cfg.AdminID},
		catalog:  store,
		sessions: sessions,
		out:      out,
	}
}

// IsAdmin reports whether userID may use the admin screens.
func (s *Shop) IsAdmin(userID int64) bool {
	return s.admin.IsAdmin(userID)
}

// enter records the menu on the user's stack and returns a copy of the filter.
func (s *Shop) enter(userID int64, id session.MenuID) session.Filter {
	var f session.Filter
	s.sessions.Update(userID, func(sess *session.Session) {
		sess.Menu.Enter(id)
		f = session.Filter{
			Brands: slices.Clone(sess.Filter.Brands),
			Sizes:  slices.Clone(sess.Filter.Sizes),
		}
	})
	return f
}

// takeTracked returns and forgets the user's tracked catalog messages.
func (s *Shop) takeTracked(userID int64) []int {
	var ids []int
	s.sessions.Update(userID, func(sess *session.Session) {
		ids = sess.Tracking.All()
		sess.Tracking.Reset()
	})
	return ids
}

// deleteAll removes messages best-effort.
func (s *Shop) deleteAll(ctx context.Context, chatID int64, ids []int) {
	for _, id := range ids {
		s.deleteMessage(ctx, chatID, id)
	}
}

func (s *Shop) deleteMessage(ctx context.Context, chatID int64, id int) {
	if id == 0 {
		return
	}
	if err := s.out.Delete(ctx, chatID, id); err != nil {
		logger.Warn(ctx, component, "message.delete_failed",
			slog.Int("message_id", id),
			slog.String("err", err.Error()),
		)
	}
}

func (s *Shop) send(ctx context.Context, chatID int64, scr screen) (int, error) {
	return s.out.SendText(ctx, chatID, scr.text, scr.markup)
}

func (s *Shop) sendText(ctx context.Context, chatID int64, text string) {
	if _, err := s.out.SendText(ctx, chatID, text, nil); err != nil {
		logger.Warn(ctx, component, "message.send_failed", slog.String("err", err.Error()))
	}
}

func logStoreError(ctx context.Context, event string, err error, attrs ...slog.Attr) {
	attrs = append(attrs, slog.String("err", err.Error()))
	logger.Error(ctx, component, event, attrs...)
}
