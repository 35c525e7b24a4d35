package shop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/telegram/keyboard"
	"github.com/m3rciful/sneakerbot/internal/action"
	"github.com/m3rciful/sneakerbot/internal/catalog"
	"github.com/m3rciful/sneakerbot/internal/session"
)

var prompts = map[session.Step]string{
	session.StepName:  textPromptName,
	session.StepBrand: textPromptBrand,
	session.StepSize:  textPromptSize,
	session.StepPrice: textPromptPrice,
	session.StepImage: textPromptImage,
}

func cancelMarkup() *tele.ReplyMarkup {
	return keyboard.New().Row(btn(btnCancel, action.Of(action.CancelAdd))).Markup()
}

// Active reports whether text from userID belongs to an open creation draft.
func (s *Shop) Active(userID int64) bool {
	return s.IsAdmin(userID) && session.HasDraft(s.sessions, userID)
}

func (s *Shop) prompt(ctx context.Context, chatID int64, text string) error {
	_, err := s.out.SendText(ctx, chatID, text, cancelMarkup())
	return err
}

// startCreation replaces the admin menu with the first prompt.
func (s *Shop) startCreation(ctx context.Context, req Request) (Notice, error) {
	s.clearView(ctx, req)
	s.sessions.Update(req.UserID, func(sess *session.Session) {
		sess.Draft = session.NewDraft()
	})
	logger.Info(ctx, component, "creation.started")
	return Notice{}, s.prompt(ctx, req.ChatID, prompts[session.StepName])
}

// HandleText feeds one message into the sender's draft. Invalid input is
// answered and the step repeats; the last step inserts the shoe.
func (s *Shop) HandleText(ctx context.Context, req Request, text string) error {
	var (
		open bool
		done bool
		step session.Step
		shoe catalog.NewShoe
		err  error
	)
	s.sessions.Update(req.UserID, func(sess *session.Session) {
		if sess.Draft == nil {
			return
		}
		open = true
		done, err = sess.Draft.Accept(text)
		step = sess.Draft.Step
		if done {
			shoe = sess.Draft.Shoe()
			sess.Draft = nil
		}
	})
	if !open {
		return nil
	}
	if err != nil {
		logger.Debug(ctx, component, "creation.rejected",
			slog.String("step", step.String()),
			slog.String("err", err.Error()),
		)
		return s.prompt(ctx, req.ChatID, rejection(err))
	}
	if !done {
		return s.prompt(ctx, req.ChatID, prompts[step])
	}

	id, err := s.catalog.Insert(ctx, shoe)
	if err != nil {
		logStoreError(ctx, "creation.insert_failed", err)
		s.sendText(ctx, req.ChatID, textAddFailed)
		return fmt.Errorf("shop: add shoe: %w", err)
	}
	logger.Info(ctx, component, "creation.completed", slog.Int64("shoe_id", id))

	s.sendText(ctx, req.ChatID, textAdded)
	s.enter(req.UserID, session.MenuAdmin)
	_, err = s.send(ctx, req.ChatID, adminScreen())
	return err
}

func rejection(err error) string {
	var verr *session.ValidationError
	if !errors.As(err, &verr) {
		return textEmptyValue
	}
	switch verr.Field {
	case "size":
		if verr.Reason == session.ReasonNotPositive {
			return textBadSize + textSizeNotPos
		}
		return textBadSize
	case "price":
		if verr.Reason == session.ReasonNotPositive {
			return textBadPrice + textPriceNotPos
		}
		return textBadPrice
	default:
		return textEmptyValue
	}
}

// dropDraft abandons the user's draft and reports the outcome text.
func (s *Shop) dropDraft(ctx context.Context, userID int64) string {
	had := false
	s.sessions.Update(userID, func(sess *session.Session) {
		had = sess.Draft != nil
		sess.Draft = nil
		sess.Menu.Enter(session.MenuAdmin)
	})
	if !had {
		return textNoDraft
	}
	logger.Info(ctx, component, "creation.canceled")
	return textAddCanceled
}

// cancelCreation handles the cancel button on a prompt.
func (s *Shop) cancelCreation(ctx context.Context, req Request) (Notice, error) {
	text := s.dropDraft(ctx, req.UserID)
	return Notice{Text: text}, s.present(ctx, req, adminScreen())
}

// Cancel handles /cancel: the draft is dropped and a fresh admin menu sent.
func (s *Shop) Cancel(ctx context.Context, req Request) error {
	s.sendText(ctx, req.ChatID, s.dropDraft(ctx, req.UserID))
	_, err := s.send(ctx, req.ChatID, adminScreen())
	return err
}
