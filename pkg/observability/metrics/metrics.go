// Package metrics exposes Prometheus metrics for the classification
// pipeline. Metrics are registered with the default registry; the CLI can
// serve them via promhttp when asked to.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts completed classifications by predicted label.
	ClassificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltran_classifications_total",
			Help: "Total number of completed classifications by predicted label",
		},
		[]string{"label"},
	)

	// ClassificationDuration observes end-to-end classify latency.
	ClassificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deltran_classification_duration_seconds",
			Help:    "Latency of the classify operation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
	)

	// ClassificationErrors counts failed classifications by reason.
	ClassificationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deltran_classification_errors_total",
			Help: "Total number of failed classifications by reason",
		},
		[]string{"reason"},
	)

	// AttributionFailures counts attribution passes absorbed by the pipeline.
	AttributionFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deltran_attribution_failures_total",
			Help: "Total number of failed token attribution passes",
		},
	)

	// ExtractionFallbacks counts extractions that ran in degraded
	// (gazetteer-only) location mode.
	ExtractionFallbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "deltran_extraction_fallbacks_total",
			Help: "Total number of extractions that used the rule-based location fallback",
		},
	)

	// EntityRecognizerLoaded reports whether the NER model is available.
	EntityRecognizerLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "deltran_entity_recognizer_loaded",
			Help: "1 if the entity recognition model loaded at startup, 0 otherwise",
		},
	)
)

// RecordClassification records one successful classification.
func RecordClassification(label string, seconds float64) {
	ClassificationsTotal.WithLabelValues(label).Inc()
	ClassificationDuration.Observe(seconds)
}

// RecordClassificationError records one failed classification.
func RecordClassificationError(reason string) {
	ClassificationErrors.WithLabelValues(reason).Inc()
}

// RecordAttributionFailure records one absorbed attribution failure.
func RecordAttributionFailure() {
	AttributionFailures.Inc()
}

// RecordExtractionFallback records one degraded-mode extraction.
func RecordExtractionFallback() {
	ExtractionFallbacks.Inc()
}

// SetEntityRecognizerLoaded publishes NER availability.
func SetEntityRecognizerLoaded(loaded bool) {
	if loaded {
		EntityRecognizerLoaded.Set(1)
	} else {
		EntityRecognizerLoaded.Set(0)
	}
}
