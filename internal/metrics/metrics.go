package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Действия модерации: approve/reject/delete/ban/unban/resolve и т.д.
	moderationActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_actions_total",
			Help: "Total number of moderation actions applied",
		},
		[]string{"entity", "action"},
	)

	// Жалобы, которые не прошли проверки при создании.
	reportsRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_rejected_total",
			Help: "Report filing attempts refused, by reason code",
		},
		[]string{"code"},
	)

	wsConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ws_connections",
			Help: "Open WebSocket notification connections",
		},
	)

	listingViewsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_views_total",
			Help: "Listing view attempts, split by whether the view was unique",
		},
		[]string{"unique"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveHTTPRequest учитывает завершённый HTTP запрос. route это шаблон
// маршрута gin, а не сырой путь, чтобы не раздувать кардинальность.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordModeration фиксирует выполненное действие модерации.
func RecordModeration(entity, action string) {
	moderationActionsTotal.WithLabelValues(entity, action).Inc()
}

// RecordReportRefused фиксирует отказ в создании жалобы.
func RecordReportRefused(code string) {
	reportsRejectedTotal.WithLabelValues(code).Inc()
}

// RecordListingView фиксирует попытку просмотра объявления.
func RecordListingView(unique bool) {
	label := "false"
	if unique {
		label = "true"
	}
	listingViewsTotal.WithLabelValues(label).Inc()
}

func SetWSConnections(n int) {
	wsConnections.Set(float64(n))
}
