package telegram

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	coreconfig "github.com/m3rciful/sneakerbot/core/config"

	tele "gopkg.in/telebot.v4"
)

const (
	defaultPollWait = 10 * time.Second
	// pollSlack is added to the long-poll wait to get the HTTP client timeout,
	// so an idle getUpdates never times out on the client side.
	pollSlack = 20 * time.Second
)

// Transport says how the bot receives updates and how it reaches the API.
type Transport struct {
	Webhook bool
	// PollWait is how long getUpdates may hold the request open.
	PollWait time.Duration

	Listen    string // host:port the webhook server binds
	PublicURL string
}

// TransportFrom reads the telegram and webhook config sections.
// Every run mode other than webhook long-polls.
func TransportFrom(cfg *coreconfig.Config) Transport {
	t := Transport{PollWait: defaultPollWait}
	if cfg.Telegram.LongPollTimeoutSeconds > 0 {
		t.PollWait = time.Duration(cfg.Telegram.LongPollTimeoutSeconds) * time.Second
	}
	if strings.EqualFold(strings.TrimSpace(cfg.Telegram.RunMode), coreconfig.RunModeWebhook) {
		t.Webhook = true
		t.Listen = net.JoinHostPort(cfg.Webhook.Listen, strconv.Itoa(cfg.Webhook.Port))
		t.PublicURL = cfg.Webhook.URL
	}
	return t
}

// Poller returns the telebot poller for t. It is not started.
func (t Transport) Poller() tele.Poller {
	if t.Webhook {
		return &tele.Webhook{
			Listen:   t.Listen,
			Endpoint: &tele.WebhookEndpoint{PublicURL: t.PublicURL},
		}
	}
	return &tele.LongPoller{Timeout: t.PollWait}
}

// Client returns the HTTP client for Bot API calls. Calls are never retried;
// callers see the first failure.
func (t Transport) Client() *http.Client {
	dialer := &net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}
	return &http.Client{
		Timeout: t.PollWait + pollSlack,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			ForceAttemptHTTP2:   true,
			MaxIdleConnsPerHost: 8,
			IdleConnTimeout:     time.Minute,
			TLSHandshakeTimeout: 5 * time.Second,
		},
	}
}
