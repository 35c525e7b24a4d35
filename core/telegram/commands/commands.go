// Package commands describes slash commands before they reach the registry.
package commands

import (
	"errors"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v4"
)

var (
	// ErrNoSlash rejects command names without the leading '/'.
	ErrNoSlash = errors.New("commands: name must start with '/'")
	// ErrIncomplete rejects commands missing a handler or description.
	ErrIncomplete = errors.New("commands: handler and description are required")
)

// Command is a slash command. Admin-only and hidden commands still dispatch
// but are left out of the Telegram command menu.
type Command struct {
	Handler     tele.HandlerFunc
	Description string
	AdminOnly   bool
	Hidden      bool
	Aliases     []string
}

// Validate checks that cmd can be registered under name.
func (cmd Command) Validate(name string) error {
	if cmd.Handler == nil || strings.TrimSpace(cmd.Description) == "" {
		return fmt.Errorf("%w: %q", ErrIncomplete, name)
	}
	if !strings.HasPrefix(name, "/") {
		return fmt.Errorf("%w: %q", ErrNoSlash, name)
	}
	return nil
}

// Visible reports whether cmd belongs in the public command menu.
func (cmd Command) Visible() bool {
	return !cmd.Hidden && !cmd.AdminOnly
}

// MenuEntry renders cmd as a Telegram menu item.
func (cmd Command) MenuEntry(name string) tele.Command {
	return tele.Command{Text: strings.TrimPrefix(name, "/"), Description: cmd.Description}
}

// Matches reports whether name, with or without '/', is one of cmd's aliases.
func (cmd Command) Matches(name string) bool {
	name = strings.TrimPrefix(name, "/")
	for _, alias := range cmd.Aliases {
		if strings.TrimPrefix(alias, "/") == name {
			return true
		}
	}
	return false
}
