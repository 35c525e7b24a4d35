package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	"github.com/m3rciful/sneakerbot/core/telegram/commands"
)

func noop(tele.Context) error { return nil }

func TestRegistryCommands(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "Main menu", Aliases: []string{"menu"}}))
	require.NoError(t, reg.RegisterCommand("/admin", commands.Command{Handler: noop, Description: "Admin panel", AdminOnly: true}))

	assert.Error(t, reg.RegisterCommand("start", commands.Command{Handler: noop, Description: "x"}))
	assert.Error(t, reg.RegisterCommand("/start", commands.Command{Handler: noop, Description: "again"}))
	assert.Error(t, reg.RegisterCommand("/empty", commands.Command{Handler: noop}))

	visible := reg.ListCommands(true)
	require.Len(t, visible, 1)
	assert.Equal(t, "start", visible[0].Text)
	assert.Len(t, reg.ListCommands(false), 2)

	key, _, ok := reg.LookupCommand("menu")
	require.True(t, ok)
	assert.Equal(t, "/start", key)

	_, _, ok = reg.LookupCommand("hello there")
	assert.False(t, ok)
}

func TestRegistryCallbacks(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.RegisterCallback("page", Callback{Handler: noop}))
	require.NoError(t, reg.RegisterCallback("admin_panel", Callback{Handler: noop, AdminOnly: true}))
	assert.Error(t, reg.RegisterCallback("page", Callback{Handler: noop}))
	assert.Error(t, reg.RegisterCallback("", Callback{Handler: noop}))
	assert.Error(t, reg.RegisterCallback("nil", Callback{}))

	cb, ok := reg.GetCallback("admin_panel")
	require.True(t, ok)
	assert.True(t, cb.AdminOnly)

	assert.Equal(t, []string{"admin_panel", "page"}, reg.ListCallbacks())
	assert.NotNil(t, reg.CallbackNotFound())
}

type fallbacks struct{ text, callback int }

func (f *fallbacks) UnknownText() tele.HandlerFunc {
	return func(tele.Context) error { f.text++; return nil }
}

func (f *fallbacks) UnknownCallback() tele.HandlerFunc {
	return func(tele.Context) error { f.callback++; return nil }
}

func TestRegistryUseFallbacks(t *testing.T) {
	reg := NewRegistry()
	fb := &fallbacks{}
	reg.UseFallbacks(fb)

	require.NoError(t, reg.TextFallback()(nil))
	require.NoError(t, reg.CallbackNotFound()(nil))
	assert.Equal(t, 1, fb.text)
	assert.Equal(t, 1, fb.callback)
}

func TestRegistryCommandNamesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"/start", "/admin", "/cancel"} {
		require.NoError(t, reg.RegisterCommand(name, commands.Command{Handler: noop, Description: name}))
	}
	assert.Equal(t, []string{"/admin", "/cancel", "/start"}, reg.CommandNames())

	cmd, ok := reg.Command("/cancel")
	require.True(t, ok)
	assert.Equal(t, "/cancel", cmd.Description)
	_, ok = reg.Command("/missing")
	assert.False(t, ok)
}
