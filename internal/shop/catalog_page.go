package shop

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/telegram/format"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

// window is one page of a result set. Start and End index the results.
type window struct {
	Page  int
	Pages int
	Start int
	End   int
	Total int
}

// paginate clamps page into range. An empty result set still has one page.
func paginate(total, page, size int) window {
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page = min(max(page, 0), pages-1)
	start := min(page*size, total)
	return window{
		Page:  page,
		Pages: pages,
		Start: start,
		End:   min(start+size, total),
		Total: total,
	}
}

// clearView deletes the tracked catalog messages and the pressed message.
func (s *Shop) clearView(ctx context.Context, req Request) {
	stale := s.takeTracked(req.UserID)
	if req.MessageID != 0 && !slices.Contains(stale, req.MessageID) {
		stale = append(stale, req.MessageID)
	}
	s.deleteAll(ctx, req.ChatID, stale)
}

// RenderPage replaces the user's view with one page of their filtered catalog:
// a message per item followed by a controls message.
func (s *Shop) RenderPage(ctx context.Context, req Request, page int) error {
	s.clearView(ctx, req)

	var filter catalog.Filter
	s.sessions.Update(req.UserID, func(sess *session.Session) {
		filter = sess.Filter.Catalog()
	})

	var items []int
	track := func(text string) {
		id, err := s.out.SendText(ctx, req.ChatID, text, nil)
		if err != nil {
			logger.Warn(ctx, component, "page.send_failed", slog.String("err", err.Error()))
			return
		}
		items = append(items, id)
	}

	shoes, err := s.catalog.Query(ctx, filter)
	if err != nil {
		logStoreError(ctx, "page.query_failed", err)
		shoes = nil
		track(textPageFailed)
	}

	w := paginate(len(shoes), page, s.cfg.PageSize)
	switch {
	case err != nil:
	case w.Total == 0:
		track(textNotFound)
	case w.Start >= w.End:
		track(textEmptyPage)
	default:
		for _, shoe := range shoes[w.Start:w.End] {
			if id, ok := s.sendItem(ctx, req.ChatID, shoe); ok {
				items = append(items, id)
			}
		}
	}

	controls, sendErr := s.send(ctx, req.ChatID, controlsScreen(w))
	s.sessions.Update(req.UserID, func(sess *session.Session) {
		sess.Tracking.Record(items, controls)
	})

	logger.Debug(ctx, component, "page.rendered",
		slog.Int("page", w.Page),
		slog.Int("pages", w.Pages),
		slog.Int("total", w.Total),
		slog.Int("messages", len(items)),
	)
	return sendErr
}

// sendItem sends one catalog item, as a photo when it has an http image.
// A failed photo degrades to a text message carrying a notice.
func (s *Shop) sendItem(ctx context.Context, chatID int64, shoe catalog.Shoe) (int, bool) {
	caption := Caption(shoe, s.cfg.Contact)
	if url := format.Value(shoe.Image); strings.HasPrefix(url, "http") {
		id, err := s.out.SendPhoto(ctx, chatID, url, caption)
		if err == nil {
			return id, true
		}
		logger.Warn(ctx, component, "item.photo_failed",
			slog.Int64("shoe_id", shoe.ID),
			slog.String("err", err.Error()),
		)
		caption += textPhotoFailed
	}
	id, err := s.out.SendText(ctx, chatID, caption, nil)
	if err != nil {
		logger.Warn(ctx, component, "item.send_failed",
			slog.Int64("shoe_id", shoe.ID),
			slog.String("err", err.Error()),
		)
		return 0, false
	}
	return id, true
}
