package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/internal/action"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

var adminKinds = map[action.Kind]bool{
	action.AdminPanel:     true,
	action.AddShoePrompt:  true,
	action.RemoveShoeMenu: true,
	action.RemoveShoe:     true,
	action.AdminListShoes: true,
	action.CancelAdd:      true,
}

// AdminOnly reports whether actions of kind k are reserved for the admin.
func AdminOnly(k action.Kind) bool { return adminKinds[k] }

// Kinds lists every action the shop handles.
func Kinds() []action.Kind {
	return []action.Kind{
		action.BackMenu,
		action.ShowAll,
		action.FilterOptions,
		action.BrandFilter,
		action.SizeFilter,
		action.ToggleBrand,
		action.ToggleSize,
		action.ApplyFilters,
		action.ResetFilters,
		action.AdminPanel,
		action.AddShoePrompt,
		action.RemoveShoeMenu,
		action.RemoveShoe,
		action.AdminListShoes,
		action.Page,
		action.CancelAdd,
	}
}

// HandleAction runs a button press and returns the answer for it.
func (s *Shop) HandleAction(ctx context.Context, req Request, a action.Action) (Notice, error) {
	if AdminOnly(a.Kind) && !s.IsAdmin(req.UserID) {
		return alert(TextNoAccess), nil
	}

	switch a.Kind {
	case action.BackMenu:
		return s.back(ctx, req)
	case action.ShowAll:
		s.updateFilter(req.UserID, (*session.Filter).Reset)
		return Notice{}, s.RenderPage(ctx, req, 0)
	case action.ApplyFilters:
		return Notice{}, s.RenderPage(ctx, req, 0)
	case action.Page:
		return Notice{}, s.RenderPage(ctx, req, a.Page)
	case action.FilterOptions:
		return s.showMenu(ctx, req, session.MenuFilters)
	case action.BrandFilter:
		return s.showMenu(ctx, req, session.MenuBrands)
	case action.SizeFilter:
		return s.showMenu(ctx, req, session.MenuSizes)
	case action.ToggleBrand:
		s.updateFilter(req.UserID, func(f *session.Filter) { f.ToggleBrand(a.Brand) })
		return s.showMenu(ctx, req, session.MenuBrands)
	case action.ToggleSize:
		size, err := session.ParseSizeToken(a.SizeToken)
		if err != nil {
			logger.Warn(ctx, component, "filter.bad_size_token", slog.String("err", err.Error()))
			return alert(alertBadSize), nil
		}
		s.updateFilter(req.UserID, func(f *session.Filter) { f.ToggleSize(size) })
		return s.showMenu(ctx, req, session.MenuSizes)
	case action.ResetFilters:
		s.updateFilter(req.UserID, (*session.Filter).Reset)
		_, err := s.showMenu(ctx, req, session.MenuFilters)
		return alert(alertFiltersReset), err
	case action.AdminPanel:
		return s.showMenu(ctx, req, session.MenuAdmin)
	case action.AddShoePrompt:
		return s.startCreation(ctx, req)
	case action.RemoveShoeMenu:
		return s.showMenu(ctx, req, session.MenuRemoveList)
	case action.RemoveShoe:
		return s.removeShoe(ctx, req, a.ShoeID)
	case action.AdminListShoes:
		return s.showMenu(ctx, req, session.MenuAdminList)
	case action.CancelAdd:
		return s.cancelCreation(ctx, req)
	}
	return alert(alertUnsupported), nil
}

func (s *Shop) updateFilter(userID int64, fn func(*session.Filter)) {
	s.sessions.Update(userID, func(sess *session.Session) { fn(&sess.Filter) })
}

// removeShoe deletes a shoe and re-renders the remove list.
func (s *Shop) removeShoe(ctx context.Context, req Request, id int64) (Notice, error) {
	var notice Notice
	switch err := s.catalog.Delete(ctx, id); {
	case err == nil:
		logger.Info(ctx, component, "shoe.removed", slog.Int64("shoe_id", id))
		notice = alert(fmt.Sprintf(alertRemoved, id))
	case errors.Is(err, catalog.ErrNotFound):
		notice = alert(fmt.Sprintf(alertRemoveMiss, id))
	default:
		logStoreError(ctx, "shoe.remove_failed", err, slog.Int64("shoe_id", id))
		notice = alert(alertRemoveFailed)
	}
	_, err := s.showMenu(ctx, req, session.MenuRemoveList)
	return notice, err
}
