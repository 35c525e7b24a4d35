// Package keyboard assembles inline keyboards.
package keyboard

import tele "gopkg.in/telebot.v4"

// Button is an inline button carrying raw callback data.
type Button struct {
	Text string
	Data string
}

// Builder collects keyboard rows top to bottom.
type Builder struct {
	rows [][]tele.InlineButton
}

// New starts an empty keyboard.
func New() *Builder { return &Builder{} }

// Row appends buttons as one row. A call without buttons adds nothing.
func (b *Builder) Row(buttons ...Button) *Builder {
	if len(buttons) == 0 {
		return b
	}
	row := make([]tele.InlineButton, len(buttons))
	for i, btn := range buttons {
		row[i] = tele.InlineButton{Text: btn.Text, Data: btn.Data}
	}
	b.rows = append(b.rows, row)
	return b
}

// Column appends each button on a row of its own.
func (b *Builder) Column(buttons ...Button) *Builder {
	for _, btn := range buttons {
		b.Row(btn)
	}
	return b
}

// Markup returns the finished keyboard.
func (b *Builder) Markup() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{InlineKeyboard: b.rows}
}

// Flatten lists the buttons of an inline keyboard row by row.
func Flatten(markup *tele.ReplyMarkup) []tele.InlineButton {
	if markup == nil {
		return nil
	}
	var out []tele.InlineButton
	for _, row := range markup.InlineKeyboard {
		out = append(out, row...)
	}
	return out
}
