package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	tg "github.com/m3rciful/sneakerbot/core/telegram"
	"github.com/m3rciful/sneakerbot/internal/action"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	reg := tg.NewRegistry()

	require.NoError(t, f.shop.Register(reg))

	assert.Len(t, reg.ListCallbacks(), len(Kinds()))
	for _, k := range Kinds() {
		cb, ok := reg.GetCallback(string(k))
		require.True(t, ok, string(k))
		assert.Equal(t, AdminOnly(k), cb.AdminOnly, string(k))
	}
	assert.Equal(t, []tele.Command{{Text: "start", Description: "Головне меню"}}, reg.ListCommands(true))
	_, admin, ok := reg.LookupCommand("/admin")
	require.True(t, ok)
	assert.True(t, admin.AdminOnly)

	require.Error(t, f.shop.Register(reg), "second registration collides")
}

func TestRoutesCoverEndpoints(t *testing.T) {
	f := newFixture(t)
	reg := tg.NewRegistry()
	require.NoError(t, f.shop.Register(reg))

	endpoints := map[any]bool{}
	for _, r := range f.shop.Routes(reg) {
		endpoints[r.Endpoint] = true
	}
	for _, want := range []any{"/start", "/admin", "/cancel", tele.OnText, tele.OnCallback} {
		assert.True(t, endpoints[want], want)
	}
}

func TestAdminKindsAreCallbackKinds(t *testing.T) {
	for k := range adminKinds {
		assert.Contains(t, Kinds(), k)
	}
	assert.False(t, AdminOnly(action.Page))
}
