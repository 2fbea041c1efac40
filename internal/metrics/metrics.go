package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Extractions        *prometheus.CounterVec
	ExtractionDuration *prometheus.HistogramVec
	EventsExtracted    prometheus.Counter
	LLMRetries         prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Extractions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "extraction_requests_total",
			Help: "Extraction pipeline runs by industry and outcome.",
		}, []string{"industry", "outcome"}),
		ExtractionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "extraction_duration_seconds",
			Help:    "End-to-end extraction pipeline duration.",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}, []string{"industry"}),
		EventsExtracted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "extraction_events_total",
			Help: "Total extracted events returned to callers.",
		}),
		LLMRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "llm_retries_total",
			Help: "LLM provider calls retried after a transient failure.",
		}),
	}
	reg.MustRegister(m.Extractions, m.ExtractionDuration, m.EventsExtracted, m.LLMRetries)
	return m
}

func (m *Metrics) ObserveExtraction(industry string, outcome string, dur time.Duration, events int) {
	m.Extractions.WithLabelValues(industry, outcome).Inc()
	m.ExtractionDuration.WithLabelValues(industry).Observe(dur.Seconds())
	if events > 0 {
		m.EventsExtracted.Add(float64(events))
	}
}
