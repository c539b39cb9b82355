package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// risk advisory service.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // labels: source={manual,location}
	AssessmentDuration prometheus.Histogram
	AggregateLevels    *prometheus.CounterVec // labels: level={low,medium,high,critical}
	AdvisorReady       prometheus.Gauge

	// Assessment publishing metrics.
	AssessmentsPublished prometheus.Counter
	PublishErrors        prometheus.Counter

	// Weather provider metrics.
	WeatherRequests    *prometheus.CounterVec // labels: outcome={success,error}
	WeatherCache       *prometheus.CounterVec // labels: result={hit,miss,expired}
	WeatherAPIDuration prometheus.Histogram
	WeatherEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaf_risk",
			Name:      "assessments_total",
			Help:      "Total risk assessments produced, by reading source.",
		}, []string{"source"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leaf_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete normalize-score-rank-advise cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		AggregateLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaf_risk",
			Name:      "aggregate_levels_total",
			Help:      "Aggregate risk classifications observed, by level.",
		}, []string{"level"}),
		AdvisorReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "leaf_risk",
			Name:      "advisor_ready",
			Help:      "1 when the risk catalog validated and the advisor serves traffic.",
		}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leaf_risk",
			Name:      "assessments_published_total",
			Help:      "Total assessments written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "leaf_risk",
			Name:      "publish_errors_total",
			Help:      "Total failures publishing assessments to the sink topic.",
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaf_risk",
			Name:      "weather_requests_total",
			Help:      "Weather provider requests by outcome.",
		}, []string{"outcome"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "leaf_risk",
			Name:      "weather_cache_total",
			Help:      "Weather reading cache lookups by result.",
		}, []string{"result"}),
		WeatherAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "leaf_risk",
			Name:      "weather_api_duration_seconds",
			Help:      "Weather provider request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		WeatherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "leaf_risk",
			Name:      "weather_enabled",
			Help:      "1 when the weather provider is configured, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.AggregateLevels,
		m.AdvisorReady,
		m.AssessmentsPublished,
		m.PublishErrors,
		m.WeatherRequests,
		m.WeatherCache,
		m.WeatherAPIDuration,
		m.WeatherEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "leaf_risk", Name: "assessments_total"}, []string{"source"}),
		AssessmentDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "leaf_risk", Name: "assessment_duration_seconds"}),
		AggregateLevels:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "leaf_risk", Name: "aggregate_levels_total"}, []string{"level"}),
		AdvisorReady:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "leaf_risk", Name: "advisor_ready"}),
		AssessmentsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "leaf_risk", Name: "assessments_published_total"}),
		PublishErrors:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "leaf_risk", Name: "publish_errors_total"}),
		WeatherRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "leaf_risk", Name: "weather_requests_total"}, []string{"outcome"}),
		WeatherCache:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "leaf_risk", Name: "weather_cache_total"}, []string{"result"}),
		WeatherAPIDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "leaf_risk", Name: "weather_api_duration_seconds"}),
		WeatherEnabled:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "leaf_risk", Name: "weather_enabled"}),
	}
}
