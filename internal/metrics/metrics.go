// Package metrics holds the Prometheus instruments for the content store,
// its storage backends, the chat proxy and the HTTP API.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	storeOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibetank_store_operations_total",
		Help: "Content store operations by operation and status",
	}, []string{"operation", "status"})

	backendDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vibetank_backend_duration_seconds",
		Help:    "Time spent in a storage backend call",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"backend", "operation", "status"})

	lastSavedGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "vibetank_last_saved_timestamp_seconds",
		Help: "Unix time of the most recent save that reached at least one backend",
	})

	chatStreamsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibetank_chat_streams_total",
		Help: "Chat proxy streams by status",
	}, []string{"status"})

	chatTokensTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vibetank_chat_tokens_total",
		Help: "Text chunks forwarded by the chat proxy",
	})

	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibetank_http_requests_total",
		Help: "HTTP requests by method and status code",
	}, []string{"method", "code"})

	adminLoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibetank_admin_logins_total",
		Help: "Admin login attempts by status",
	}, []string{"status"})
)

func status(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusOK
}

// StoreOperation counts one content store operation.
func StoreOperation(operation string, err error) {
	storeOperationsTotal.WithLabelValues(operation, status(err)).Inc()
}

// ObserveBackend records the duration of a backend call started at start.
func ObserveBackend(backend, operation string, start time.Time, err error) {
	backendDurationHistogram.WithLabelValues(backend, operation, status(err)).Observe(time.Since(start).Seconds())
}

// SetLastSaved records the time of the latest successful save.
func SetLastSaved(t time.Time) {
	lastSavedGauge.Set(float64(t.Unix()))
}

// ChatStream counts one finished chat stream.
func ChatStream(err error) {
	chatStreamsTotal.WithLabelValues(status(err)).Inc()
}

// ChatToken counts one forwarded chunk.
func ChatToken() {
	chatTokensTotal.Inc()
}

// HTTPRequest counts one served request.
func HTTPRequest(method, code string) {
	httpRequestsTotal.WithLabelValues(method, code).Inc()
}

// AdminLogin counts one login attempt.
func AdminLogin(ok bool) {
	if ok {
		adminLoginsTotal.WithLabelValues(StatusOK).Inc()
		return
	}
	adminLoginsTotal.WithLabelValues(StatusError).Inc()
}
