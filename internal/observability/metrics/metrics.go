package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservas_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reservas_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	reservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservas_reservations_created_total",
		Help: "Count of reservations successfully created",
	})

	reservationConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservas_reservation_conflicts_total",
		Help: "Count of booking attempts rejected because the slot was taken",
	})

	txRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reservas_tx_retries_total",
		Help: "Count of transactions retried after serialization failures or deadlocks",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

func ObserveReservationCreated() {
	reservationsCreated.Inc()
}

func ObserveReservationConflict() {
	reservationConflicts.Inc()
}

func ObserveTxRetry() {
	txRetries.Inc()
}
