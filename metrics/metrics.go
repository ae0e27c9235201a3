// Package metrics exposes Prometheus instrumentation for the realtime
// channel. The realtime path drops unauthorized and malformed events
// silently, so the dropped-event counter is the only client-visible
// signal that something went wrong.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OpenConnections tracks websocket connections, identified or not.
	OpenConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "messenger_ws_connections",
		Help: "Current number of open WebSocket connections",
	})

	// IdentifiedConnections tracks connections registered in the hub.
	IdentifiedConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "messenger_ws_identified_connections",
		Help: "Current number of identified WebSocket connections",
	})

	// EventsSent counts outbound realtime events by event name.
	EventsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "messenger_events_sent_total",
		Help: "Total outbound realtime events delivered",
	}, []string{"event"})

	// EventsDropped counts inbound realtime events dropped without a
	// response, by reason: "malformed", "unsupported", "unauthorized",
	// "unidentified", "failed".
	EventsDropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "messenger_events_dropped_total",
		Help: "Total inbound realtime events dropped",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(
		OpenConnections,
		IdentifiedConnections,
		EventsSent,
		EventsDropped,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
