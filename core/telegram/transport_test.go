package telegram

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tele "gopkg.in/telebot.v4"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"
)

func TestTransportLongPoll(t *testing.T) {
	cfg := &coreconfig.Config{}
	cfg.Telegram.RunMode = coreconfig.RunModeLongpoll

	tr := TransportFrom(cfg)
	assert.False(t, tr.Webhook)
	lp, ok := tr.Poller().(*tele.LongPoller)
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, lp.Timeout)
	assert.Equal(t, 30*time.Second, tr.Client().Timeout)

	cfg.Telegram.LongPollTimeoutSeconds = 25
	tr = TransportFrom(cfg)
	assert.Equal(t, 25*time.Second, tr.PollWait)
	assert.Greater(t, tr.Client().Timeout, tr.PollWait)
}

func TestTransportWebhook(t *testing.T) {
	cfg := &coreconfig.Config{}
	cfg.Telegram.RunMode = "Webhook"
	cfg.Webhook = coreconfig.WebhookConfig{Listen: "0.0.0.0", Port: 8443, URL: "https://shop.example/hook"}

	wh, ok := TransportFrom(cfg).Poller().(*tele.Webhook)
	require.True(t, ok)
	assert.Equal(t, "0.0.0.0:8443", wh.Listen)
	assert.Equal(t, "https://shop.example/hook", wh.Endpoint.PublicURL)
}
