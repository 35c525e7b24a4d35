// Package metrics exposes Prometheus collectors for the bot runtime.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	global     *Metrics
	globalOnce sync.Once
)

// Metrics holds the bot collectors.
type Metrics struct {
	// UpdatesTotal counts inbound updates by kind (message, callback, other).
	UpdatesTotal *prometheus.CounterVec
	// HandlerTotal counts handled updates by handler and outcome.
	HandlerTotal *prometheus.CounterVec
	// HandlerDuration observes handler latency.
	HandlerDuration *prometheus.HistogramVec
	// OutboundTotal counts Telegram API calls by operation and outcome.
	OutboundTotal *prometheus.CounterVec
	// StoreTotal counts catalog store calls by operation and outcome.
	StoreTotal *prometheus.CounterVec
}

// Default returns the process-wide collectors, registering them on first use.
//
// Metrics:
//   - sneakerbot_updates_total{kind}
//   - sneakerbot_handler_total{handler,outcome}
//   - sneakerbot_handler_duration_seconds{handler}
//   - sneakerbot_outbound_total{op,outcome}
//   - sneakerbot_store_total{op,outcome}
func Default() *Metrics {
	globalOnce.Do(func() {
		global = &Metrics{
			UpdatesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sneakerbot_updates_total",
					Help: "Inbound Telegram updates",
				},
				[]string{"kind"},
			),
			HandlerTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sneakerbot_handler_total",
					Help: "Handled updates by handler and outcome",
				},
				[]string{"handler", "outcome"},
			),
			HandlerDuration: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "sneakerbot_handler_duration_seconds",
					Help:    "Handler latency in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"handler"},
			),
			OutboundTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sneakerbot_outbound_total",
					Help: "Telegram API calls by operation and outcome",
				},
				[]string{"op", "outcome"},
			),
			StoreTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "sneakerbot_store_total",
					Help: "Catalog store calls by operation and outcome",
				},
				[]string{"op", "outcome"},
			),
		}
	})
	return global
}

// Outcome maps an error to the outcome label.
func Outcome(err error) string {
	if err != nil {
		return "fail"
	}
	return "ok"
}
