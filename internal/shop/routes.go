package shop

import (
	"context"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/logger"
	tg "github.com/m3rciful/sneakerbot/core/telegram"
	"github.com/m3rciful/sneakerbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"
	"github.com/m3rciful/sneakerbot/core/telegram/middleware"
	"github.com/m3rciful/sneakerbot/core/telegram/router"
	"github.com/m3rciful/sneakerbot/internal/action"
)

// requestFrom extracts the sender, chat and pressed message from an update.
func requestFrom(c tele.Context) Request {
	var req Request
	if u := c.Sender(); u != nil {
		req.UserID = u.ID
	}
	if chat := c.Chat(); chat != nil {
		req.ChatID = chat.ID
	}
	if cb := c.Callback(); cb != nil {
		req.CallbackID = cb.ID
		if cb.Message != nil {
			req.MessageID = cb.Message.ID
		}
	}
	if req.ChatID == 0 {
		req.ChatID = req.UserID
	}
	return req
}

// answer acknowledges the press once. Failures are logged only: the
// callback may simply have expired.
func (s *Shop) answer(ctx context.Context, req Request, n Notice) {
	if err := s.out.Answer(ctx, req.CallbackID, n.Text, n.Alert); err != nil {
		logger.Debug(ctx, component, "callback.answer_failed", slog.String("err", err.Error()))
	}
}

func (s *Shop) onAction(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	req := requestFrom(c)
	a, ok := tghelpers.CallbackPayload(c).(action.Action)
	if !ok {
		s.answer(ctx, req, alert(alertUnsupported))
		return nil
	}
	notice, err := s.HandleAction(ctx, req, a)
	s.answer(ctx, req, notice)
	return err
}

func (s *Shop) onStart(c tele.Context) error {
	return s.Start(tghelpers.BuildContext(c), requestFrom(c))
}

func (s *Shop) onAdmin(c tele.Context) error {
	return s.OpenAdmin(tghelpers.BuildContext(c), requestFrom(c))
}

func (s *Shop) onCancel(c tele.Context) error {
	return s.Cancel(tghelpers.BuildContext(c), requestFrom(c))
}

// onDenied is the capability gate's reject handler.
func (s *Shop) onDenied(c tele.Context) error {
	return tghelpers.Deny(c, TextNoAccess)
}

// UnknownText hints non-admins towards the menu buttons. Stray admin text is
// ignored.
func (s *Shop) UnknownText() tele.HandlerFunc {
	return func(c tele.Context) error {
		req := requestFrom(c)
		if s.IsAdmin(req.UserID) {
			return nil
		}
		_, err := s.out.SendText(tghelpers.BuildContext(c), req.ChatID, textUseMenu, nil)
		return err
	}
}

// UnknownCallback answers presses no handler matched.
func (s *Shop) UnknownCallback() tele.HandlerFunc {
	return func(c tele.Context) error {
		s.answer(tghelpers.BuildContext(c), requestFrom(c), alert(alertUnsupported))
		return nil
	}
}

// conversation adapts the creation draft to the text router.
type conversation struct{ s *Shop }

func (cv conversation) Active(userID int64) bool { return cv.s.Active(userID) }

func (cv conversation) HandleText(c tele.Context) error {
	return cv.s.HandleText(tghelpers.BuildContext(c), requestFrom(c), c.Text())
}

// Conversation returns the creation conversation for router.TextRoutes.
func (s *Shop) Conversation() router.Conversation { return conversation{s: s} }

// Register adds the shop's commands, callbacks and fallbacks to reg.
func (s *Shop) Register(reg *tg.Registry) error {
	cmds := []struct {
		name string
		cmd  commands.Command
	}{
		{"/start", commands.Command{Handler: s.onStart, Description: "Головне меню"}},
		{"/admin", commands.Command{Handler: s.onAdmin, Description: "Адмін-панель", AdminOnly: true}},
		{"/cancel", commands.Command{Handler: s.onCancel, Description: "Скасувати додавання товару", AdminOnly: true}},
	}
	for _, c := range cmds {
		if err := reg.RegisterCommand(c.name, c.cmd); err != nil {
			return fmt.Errorf("shop: register %s: %w", c.name, err)
		}
	}
	for _, k := range Kinds() {
		if err := reg.RegisterCallback(string(k), tg.Callback{Handler: s.onAction, AdminOnly: AdminOnly(k)}); err != nil {
			return fmt.Errorf("shop: register callback %s: %w", k, err)
		}
	}
	reg.UseFallbacks(s)
	return nil
}

// Routes builds the bot routes for a registry filled by Register.
func (s *Shop) Routes(reg *tg.Registry) []tg.Route {
	admin := middleware.AdminOptions{AdminID: s.cfg.AdminID, OnReject: s.onDenied}
	routes := router.CommandRoutes(reg, router.CommandRouteOptions{Admin: admin})
	routes = append(routes, router.TextRoutes(s.Conversation(), reg)...)
	routes = append(routes, router.CallbackRoute(reg, router.CallbackOptions{
		Decode: action.DecodeCallback,
		Admin:  admin,
	}))
	return routes
}
