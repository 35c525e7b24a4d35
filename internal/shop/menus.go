package shop

import (
	"context"
	"log/slog"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/telegram"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

// Start sends a fresh main menu.
func (s *Shop) Start(ctx context.Context, req Request) error {
	s.enter(req.UserID, session.MenuMain)
	_, err := s.send(ctx, req.ChatID, mainScreen(s.cfg.Name, s.IsAdmin(req.UserID)))
	return err
}

// OpenAdmin sends a fresh admin menu.
func (s *Shop) OpenAdmin(ctx context.Context, req Request) error {
	if !s.IsAdmin(req.UserID) {
		s.sendText(ctx, req.ChatID, TextNoAccess)
		return nil
	}
	s.enter(req.UserID, session.MenuAdmin)
	_, err := s.send(ctx, req.ChatID, adminScreen())
	return err
}

// present shows scr in place of the pressed message, sending a new message
// when nothing was pressed or the edit fails. Tracked catalog messages other
// than the pressed one are deleted first.
func (s *Shop) present(ctx context.Context, req Request, scr screen) error {
	for _, id := range s.takeTracked(req.UserID) {
		if id != req.MessageID {
			s.deleteMessage(ctx, req.ChatID, id)
		}
	}
	if req.MessageID != 0 {
		err := s.out.EditText(ctx, req.ChatID, req.MessageID, scr.text, scr.markup)
		if err == nil || telegram.IsNotModified(err) {
			return nil
		}
		logger.Debug(ctx, component, "menu.edit_fallback",
			slog.Int("message_id", req.MessageID),
			slog.String("err", err.Error()),
		)
	}
	_, err := s.send(ctx, req.ChatID, scr)
	return err
}

// back pops the menu stack and renders the screen below.
func (s *Shop) back(ctx context.Context, req Request) (Notice, error) {
	next := session.MenuMain
	s.sessions.Update(req.UserID, func(sess *session.Session) {
		next = sess.Menu.Back()
	})
	return s.showMenu(ctx, req, next)
}

// showMenu renders menu id from a button press. Store failures degrade to an
// empty listing and an alert.
func (s *Shop) showMenu(ctx context.Context, req Request, id session.MenuID) (Notice, error) {
	switch id {
	case session.MenuFilters:
		return Notice{}, s.present(ctx, req, filterScreen(s.enter(req.UserID, id)))
	case session.MenuBrands:
		return s.showBrands(ctx, req)
	case session.MenuSizes:
		return s.showSizes(ctx, req)
	case session.MenuAdmin, session.MenuRemoveList, session.MenuAdminList:
		if !s.IsAdmin(req.UserID) {
			return alert(TextNoAccess), nil
		}
		return s.showAdminMenu(ctx, req, id)
	default:
		s.enter(req.UserID, session.MenuMain)
		return Notice{}, s.present(ctx, req, mainScreen(s.cfg.Name, s.IsAdmin(req.UserID)))
	}
}

func (s *Shop) showBrands(ctx context.Context, req Request) (Notice, error) {
	var notice Notice
	brands, err := s.catalog.ListBrands(ctx)
	if err != nil {
		logStoreError(ctx, "brands.load_failed", err)
		notice = alert(alertBrandsFailed)
	}
	f := s.enter(req.UserID, session.MenuBrands)
	scr, skipped := brandScreen(brands, f)
	if len(skipped) > 0 {
		summary, _ := logger.SummarizeStrings(skipped, 5)
		logger.Warn(ctx, component, "brands.skipped",
			slog.String("reason", "callback_data_too_long"),
			slog.Int("count", len(skipped)),
			slog.String("brands", summary),
		)
	}
	return notice, s.present(ctx, req, scr)
}

func (s *Shop) showSizes(ctx context.Context, req Request) (Notice, error) {
	var notice Notice
	sizes, err := s.catalog.ListSizes(ctx)
	if err != nil {
		logStoreError(ctx, "sizes.load_failed", err)
		notice = alert(alertSizesFailed)
	}
	f := s.enter(req.UserID, session.MenuSizes)
	return notice, s.present(ctx, req, sizeScreen(sizes, f))
}

func (s *Shop) showAdminMenu(ctx context.Context, req Request, id session.MenuID) (Notice, error) {
	if id == session.MenuAdmin {
		s.enter(req.UserID, id)
		return Notice{}, s.present(ctx, req, adminScreen())
	}

	var notice Notice
	shoes, err := s.catalog.Query(ctx, catalog.Filter{})
	if err != nil {
		logStoreError(ctx, "shoes.load_failed", err, slog.String("menu", string(id)))
		shoes = nil
		if id == session.MenuRemoveList {
			notice = alert(alertRemoveLoad)
		} else {
			notice = alert(alertListFailed)
		}
	}
	s.enter(req.UserID, id)
	scr := adminListScreen(shoes)
	if id == session.MenuRemoveList {
		scr = removeScreen(shoes)
	}
	return notice, s.present(ctx, req, scr)
}
