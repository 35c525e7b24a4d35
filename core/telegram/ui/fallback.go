// Package ui holds contracts between feature packages and the bot wiring.
package ui

import tele "gopkg.in/telebot.v4"

// FallbackProvider answers updates nothing else claimed: text outside a
// conversation that is not a command, and callback data that does not decode.
type FallbackProvider interface {
	UnknownText() tele.HandlerFunc
	UnknownCallback() tele.HandlerFunc
}
