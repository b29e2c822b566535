package providers

import (
	"time"

	"informant/internal/services"
	"informant/internal/structures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObservePersistenceDuration(duration time.Duration)
	IncLoadsTotal(state string)
	ObserveLoadDuration(duration time.Duration)
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           prometheus.Counter
	cacheMisses         prometheus.Counter
	persistenceDuration prometheus.Histogram
	loadsTotal          *prometheus.CounterVec
	loadDuration        prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncLoadsTotal(state string) {
	m.loadsTotal.WithLabelValues(state).Inc()
}

func (m *MetricsProvider) ObserveLoadDuration(duration time.Duration) {
	m.loadDuration.Observe(duration.Seconds())
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config, service services.HistoryServiceInterface) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "informant_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "informant_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "informant_cache_hits_total",
			Help: "Total number of cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "informant_cache_misses_total",
			Help: "Total number of cache misses",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "informant_persistence_duration_seconds",
			Help:    "Duration of snapshot persistence in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		loadsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "informant_loads_total",
			Help: "Total number of Workrave export loads by outcome",
		}, []string{"state"}),

		loadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "informant_load_duration_seconds",
			Help:    "Duration of Workrave export loads in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "informant_days_total",
		Help: "Number of days in the published history",
	}, func() float64 {
		return float64(service.GetDayCount())
	})

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "informant_store_generation",
		Help: "Generation of the published history store",
	}, func() float64 {
		return float64(service.GetGeneration())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncLoadsTotal(_ string)                           {}
func (n *noopMetrics) ObserveLoadDuration(_ time.Duration)              {}
