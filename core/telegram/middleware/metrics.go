package middleware

import (
	"github.com/m3rciful/sneakerbot/core/metrics"
	tghelpers "github.com/m3rciful/sneakerbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// MetricsMiddleware counts the update by kind and opens the outbound tally
// that senders report into and the handler summary reads.
func MetricsMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		metrics.Default().UpdatesTotal.WithLabelValues(UpdateKind(c.Update())).Inc()
		tghelpers.StoreContext(c, tghelpers.WithTally(tghelpers.BuildContext(c)))
		return next(c)
	}
}

// UpdateKind names the update type for logs and metric labels.
func UpdateKind(upd tele.Update) string {
	switch {
	case upd.Callback != nil:
		return "callback"
	case upd.Message != nil:
		return "message"
	}
	return "other"
}
