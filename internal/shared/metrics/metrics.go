package metrics

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"method", "route"})

	yieldEstimatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yield_estimates_total",
		Help: "Completed yield estimates by tier.",
	}, []string{"tier"})

	yieldEfficiency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "yield_efficiency_score",
		Help:    "Distribution of clamped efficiency scores.",
		Buckets: []float64{40, 55, 70, 85, 98},
	})

	yieldRejectedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "yield_estimates_rejected_total",
		Help: "Yield estimate requests rejected as invalid input.",
	})

	cropRecommendationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crop_recommendation_requests_total",
		Help: "Crop recommendation upstream calls by outcome.",
	}, []string{"outcome"})

	catalogRefreshTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_refresh_total",
		Help: "Catalog snapshot refreshes by catalog and outcome.",
	}, []string{"catalog", "outcome"})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		httpRequestsTotal,
		httpRequestDuration,
		yieldEstimatesTotal,
		yieldEfficiency,
		yieldRejectedTotal,
		cropRecommendationsTotal,
		catalogRefreshTotal,
	)
}

// ObserveHTTP records one served request.
func ObserveHTTP(method, route string, status int, seconds float64) {
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// ObserveYieldEstimate records a completed estimate.
func ObserveYieldEstimate(tier string, efficiency int) {
	yieldEstimatesTotal.WithLabelValues(tier).Inc()
	yieldEfficiency.Observe(float64(efficiency))
}

// IncYieldRejected counts an estimate rejected for invalid input.
func IncYieldRejected() {
	yieldRejectedTotal.Inc()
}

// IncCropRecommendation counts an upstream recommendation call.
func IncCropRecommendation(outcome string) {
	cropRecommendationsTotal.WithLabelValues(outcome).Inc()
}

// IncCatalogRefresh counts a catalog snapshot refresh attempt.
func IncCatalogRefresh(catalog string, ok bool) {
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	catalogRefreshTotal.WithLabelValues(catalog, outcome).Inc()
}

// Registry exposes the collector registry, mainly for tests.
func Registry() *prometheus.Registry {
	return registry
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
}
