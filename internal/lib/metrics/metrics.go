// Package metrics регистрирует метрики Prometheus сервиса.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Количество HTTP-запросов.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Длительность обработки HTTP-запросов.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	providerRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbot_provider_requests_total",
		Help: "Обращения к языковой модели по исходу.",
	}, []string{"outcome"})

	providerDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "chatbot_provider_duration_seconds",
		Help:    "Длительность обращения к языковой модели.",
		Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
	})

	EmergencyPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emergency_events_published_total",
		Help: "Публикации экстренных вызовов в брокер.",
	}, []string{"result"})
)

// ObserveProvider учитывает одно обращение к модели.
func ObserveProvider(outcome string, started time.Time) {
	providerRequests.WithLabelValues(outcome).Inc()
	providerDuration.Observe(time.Since(started).Seconds())
}
