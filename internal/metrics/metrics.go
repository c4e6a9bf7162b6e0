// Package metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal считает HTTP-запросы по эндпоинту и статусу ответа.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landuse_http_requests_total",
			Help: "Number of HTTP requests processed, by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	// RequestDuration — длительность обработки HTTP-запросов.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landuse_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// CalculationDuration — длительность вычисления индикатора по его виду.
	CalculationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landuse_indicator_calculation_seconds",
			Help:    "Indicator calculation duration in seconds, by indicator kind.",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 5, 15, 60},
		},
		[]string{"indicator"},
	)

	// CacheHits считает попадания в кэш результатов.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "landuse_result_cache_hits_total",
		Help: "Number of indicator results served from cache.",
	})

	// CacheMisses считает промахи кэша результатов.
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "landuse_result_cache_misses_total",
		Help: "Number of indicator computations not found in cache.",
	})

	// SkippedZones считает зоны, исключённые из агрегации из-за некорректной геометрии.
	SkippedZones = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "landuse_skipped_zones_total",
		Help: "Number of zones skipped due to malformed geometry.",
	})

	// DegradedResults считает результаты, вычисленные с пропущенными зонами.
	DegradedResults = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "landuse_degraded_results_total",
		Help: "Number of indicator results computed with skipped zones.",
	})
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		CalculationDuration,
		CacheHits,
		CacheMisses,
		SkippedZones,
		DegradedResults,
	)
}
