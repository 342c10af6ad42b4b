// Package metrics provides Prometheus metrics for the chat service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ActiveConnections tracks currently open websocket connections.
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_active_connections",
			Help: "Number of currently open websocket connections",
		},
	)

	// OnlineUsers tracks users currently registered in the presence registry.
	OnlineUsers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_online_users",
			Help: "Number of users currently present in the registry",
		},
	)

	// MessagesRouted counts messages accepted and persisted by the router.
	MessagesRouted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_routed_total",
			Help: "Total number of messages persisted by the router",
		},
	)

	// MessageDeliveries counts live deliveries by target.
	MessageDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_message_deliveries_total",
			Help: "Total number of live message deliveries",
		},
		[]string{"target"},
	)

	// DeliveryMisses counts messages whose receiver had no live connection.
	DeliveryMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_delivery_misses_total",
			Help: "Total number of messages routed while the receiver was offline",
		},
	)

	// PersistFailures counts failed writes on the live message path.
	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_message_persist_failures_total",
			Help: "Total number of message persistence failures",
		},
	)

	// HTTPRequestDuration tracks request latency by route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chat_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// RecordMessageRouted increments the routed message counter.
func RecordMessageRouted() {
	MessagesRouted.Inc()
}

// RecordDelivery increments the delivery counter for the given target
// ("echo" or "recipient").
func RecordDelivery(target string) {
	MessageDeliveries.WithLabelValues(target).Inc()
}

// RecordDeliveryMiss increments the offline-receiver counter.
func RecordDeliveryMiss() {
	DeliveryMisses.Inc()
}

// RecordPersistFailure increments the persistence failure counter.
func RecordPersistFailure() {
	PersistFailures.Inc()
}

// RecordConnectionOpened increments the active connection gauge.
func RecordConnectionOpened() {
	ActiveConnections.Inc()
}

// RecordConnectionClosed decrements the active connection gauge.
func RecordConnectionClosed() {
	ActiveConnections.Dec()
}

// SetOnlineUsers records the current presence registry size.
func SetOnlineUsers(n int) {
	OnlineUsers.Set(float64(n))
}
