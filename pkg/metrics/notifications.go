package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultPanic   = "panic"
)

// NotificationMetrics records best-effort delivery of order events.
type NotificationMetrics struct {
	deliveries *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	dropped    prometheus.Counter
}

// NewNotificationMetrics registers the notification metrics on the provided registerer.
func NewNotificationMetrics(reg prometheus.Registerer) *NotificationMetrics {
	if reg == nil {
		return &NotificationMetrics{}
	}
	deliveries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "notification_deliveries_total",
		Help: "Notification sink deliveries by sink and result.",
	}, []string{"sink", "result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "notification_delivery_duration_seconds",
		Help:    "Duration of notification sink deliveries in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"sink"})
	dropped := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "notification_events_dropped_total",
		Help: "Order events dropped because the notification buffer was full or closed.",
	})
	reg.MustRegister(deliveries, duration, dropped)
	return &NotificationMetrics{
		deliveries: deliveries,
		duration:   duration,
		dropped:    dropped,
	}
}

// ObserveDelivery records the outcome and duration of one sink delivery.
func (n *NotificationMetrics) ObserveDelivery(sink, result string, duration time.Duration) {
	if n == nil || n.deliveries == nil {
		return
	}
	n.deliveries.WithLabelValues(normalizeLabel(sink), normalizeLabel(result)).Inc()
	n.duration.WithLabelValues(normalizeLabel(sink)).Observe(duration.Seconds())
}

// IncDropped counts one event that never reached the workers.
func (n *NotificationMetrics) IncDropped() {
	if n == nil || n.dropped == nil {
		return
	}
	n.dropped.Inc()
}
