// Package metrics prometheus-метрики сервиса
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса доступности
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	EvaluationsTotal    *prometheus.CounterVec
	SlotsGenerated      prometheus.Histogram
}

// New регистрирует и возвращает метрики сервиса
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		EvaluationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "policy_evaluations_total",
			Help:        "Policy admission decisions by outcome code",
			ConstLabels: labels,
		}, []string{"outcome"}),

		SlotsGenerated: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:        "availability_slots_generated",
			Help:        "Number of slots generated per availability query",
			ConstLabels: labels,
			Buckets:     []float64{0, 5, 10, 25, 50, 100, 250, 500},
		}),
	}
}

// ObserveEvaluation учитывает одно решение допуска
// outcome — "allowed" либо стабильный код отклонения
func (m *Metrics) ObserveEvaluation(outcome string) {
	m.EvaluationsTotal.WithLabelValues(outcome).Inc()
}
