// Package metrics provides the centralized Prometheus registry for the
// forecast pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ForecastRequestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stockcast",
		Name:      "forecast_requests_total",
		Help:      "Total number of forecast requests",
	})
	ForecastFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockcast",
		Name:      "forecast_failures_total",
		Help:      "Total number of failed forecast requests by stage",
	}, []string{"stage"})
	SyntheticFallbacksTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stockcast",
		Name:      "synthetic_fallbacks_total",
		Help:      "Total number of requests served from the synthetic bar generator",
	})
	CacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "stockcast",
		Name:      "forecast_cache_hits_total",
		Help:      "Total number of forecast results served from cache",
	})
)

// Histogram metrics
var (
	DataFetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stockcast",
		Name:      "data_fetch_duration_seconds",
		Help:      "Duration of market data retrieval in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	TrainingDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "stockcast",
		Name:      "model_training_duration_seconds",
		Help:      "Duration of model fitting and prediction in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"variant"})
	PipelineDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "stockcast",
		Name:      "forecast_pipeline_duration_seconds",
		Help:      "End-to-end duration of a forecast request in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ForecastRequestsTotal)
		registry.MustRegister(ForecastFailuresTotal)
		registry.MustRegister(SyntheticFallbacksTotal)
		registry.MustRegister(CacheHitsTotal)

		registry.MustRegister(DataFetchDuration)
		registry.MustRegister(TrainingDuration)
		registry.MustRegister(PipelineDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordForecastRequest records a forecast request event.
func RecordForecastRequest() {
	ForecastRequestsTotal.Inc()
}

// RecordForecastFailure records a failed forecast request for a stage.
func RecordForecastFailure(stage string) {
	ForecastFailuresTotal.WithLabelValues(stage).Inc()
}

// RecordSyntheticFallback records a request served by the synthetic generator.
func RecordSyntheticFallback() {
	SyntheticFallbacksTotal.Inc()
}

// RecordCacheHit records a forecast result served from cache.
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordDataFetch records market data retrieval latency.
func RecordDataFetch(durationSeconds float64) {
	DataFetchDuration.Observe(durationSeconds)
}

// RecordTraining records model fitting latency for a variant.
func RecordTraining(variant string, durationSeconds float64) {
	TrainingDuration.WithLabelValues(variant).Observe(durationSeconds)
}

// RecordPipelineDuration records end-to-end request latency.
func RecordPipelineDuration(durationSeconds float64) {
	PipelineDuration.Observe(durationSeconds)
}
