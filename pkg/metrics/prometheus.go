package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	forecasts *prometheus.CounterVec
	upstream  *prometheus.CounterVec
	events    *prometheus.CounterVec
	errors    *prometheus.CounterVec
	lastPrice *prometheus.GaugeVec
	latency   *prometheus.HistogramVec
}

// New creates a recorder and registers its collectors on reg.
func New(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		forecasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "findash",
			Name:      "forecasts_total",
			Help:      "Forecast computations by outcome",
		}, []string{"outcome"}),
		upstream: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "findash",
			Name:      "upstream_requests_total",
			Help:      "Calls to third-party data sources",
		}, []string{"source", "result"}),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "findash",
			Name:      "events_published_total",
			Help:      "Domain events handed to the publisher",
		}, []string{"type"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "findash",
			Name:      "errors_total",
			Help:      "Total number of errors encountered",
		}, []string{"kind"}),
		lastPrice: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "findash",
			Name:      "last_price",
			Help:      "Last close seen for a symbol",
		}, []string{"symbol"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "findash",
			Name:      "operation_duration_seconds",
			Help:      "Duration of operations in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(r.forecasts, r.upstream, r.events, r.errors, r.lastPrice, r.latency)
	}
	return r
}

// RecordForecast counts a forecast by outcome ("ok", "skipped", "insufficient", "error").
func (r *Recorder) RecordForecast(outcome string) {
	r.forecasts.WithLabelValues(outcome).Inc()
}

// RecordUpstream counts an outbound data-source call.
func (r *Recorder) RecordUpstream(source string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.upstream.WithLabelValues(source, result).Inc()
}

// RecordEvent counts a published domain event.
func (r *Recorder) RecordEvent(eventType string) {
	r.events.WithLabelValues(eventType).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errors.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a symbol.
func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
