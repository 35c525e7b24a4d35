package shop

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/logger"
	"github.com/m3rciful/sneakerbot/core/metrics"
	"github.com/m3rciful/sneakerbot/core/telegram"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"
)

// Messenger is the outbound side of the shop. All text is sent in HTML parse
// mode; returned errors are *RenderError.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) (int, error)
	SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) (int, error)
	EditText(ctx context.Context, chatID int64, messageID int, text string, markup *tele.ReplyMarkup) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	// Answer acknowledges a button press. An empty text only stops the spinner.
	Answer(ctx context.Context, callbackID, text string, alert bool) error
}

// TelebotMessenger sends through a telebot bot.
type TelebotMessenger struct {
	bot     *tele.Bot
	metrics *metrics.Metrics
}

// NewTelebotMessenger wraps bot.
func NewTelebotMessenger(bot *tele.Bot) *TelebotMessenger {
	return &TelebotMessenger{bot: bot, metrics: metrics.Default()}
}

func htmlOptions(markup *tele.ReplyMarkup) *tele.SendOptions {
	return &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: markup}
}

func stored(chatID int64, messageID int) tele.StoredMessage {
	return tele.StoredMessage{MessageID: strconv.Itoa(messageID), ChatID: chatID}
}

func (t *TelebotMessenger) SendText(ctx context.Context, chatID int64, text string, markup *tele.ReplyMarkup) (id int, err error) {
	defer t.observe(ctx, "send_text", &err)
	msg, err := t.bot.Send(tele.ChatID(chatID), text, htmlOptions(markup))
	if err != nil {
		return 0, err
	}
	tghelpers.CountSent(ctx, markup != nil)
	return msg.ID, nil
}

func (t *TelebotMessenger) SendPhoto(ctx context.Context, chatID int64, photoURL, caption string) (id int, err error) {
	defer t.observe(ctx, "send_photo", &err)
	photo := &tele.Photo{File: tele.FromURL(photoURL), Caption: caption}
	msg, err := t.bot.Send(tele.ChatID(chatID), photo, htmlOptions(nil))
	if err != nil {
		return 0, err
	}
	tghelpers.CountSent(ctx, false)
	return msg.ID, nil
}

func (t *TelebotMessenger) EditText(ctx context.Context, chatID int64, messageID int, text string, markup *tele.ReplyMarkup) (err error) {
	defer t.observe(ctx, "edit_text", &err)
	if _, err = t.bot.Edit(stored(chatID, messageID), text, htmlOptions(markup)); err == nil {
		tghelpers.CountSent(ctx, markup != nil)
	}
	return err
}

func (t *TelebotMessenger) Delete(ctx context.Context, chatID int64, messageID int) (err error) {
	defer t.observe(ctx, "delete", &err)
	return t.bot.Delete(stored(chatID, messageID))
}

func (t *TelebotMessenger) Answer(ctx context.Context, callbackID, text string, alert bool) (err error) {
	if callbackID == "" {
		return nil
	}
	defer t.observe(ctx, "answer", &err)
	return t.bot.Respond(&tele.Callback{ID: callbackID}, &tele.CallbackResponse{Text: text, ShowAlert: alert})
}

// observe counts the call and wraps a failure into *RenderError.
func (t *TelebotMessenger) observe(ctx context.Context, op string, errp *error) {
	err := *errp
	t.metrics.OutboundTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
	if err == nil {
		return
	}
	var rerr *RenderError
	if errors.As(err, &rerr) {
		return
	}
	if logger.ShouldSampleDebug() {
		logger.Debug(ctx, "tg", "outbound.failed",
			slog.String("op", op),
			slog.String("err_kind", telegram.ClassifyError(err)),
			slog.String("err", telegram.RedactError(err)),
		)
	}
	*errp = &RenderError{Op: op, Err: err}
}
