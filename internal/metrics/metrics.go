// Package metrics exposes Prometheus counters for oracle traffic. Fallback
// assessments are counted because a rising fallback rate is itself a quality
// signal about the scoring pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OracleCalls counts completion calls by component and outcome
	// (ok, error).
	OracleCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toolgauge",
		Name:      "oracle_calls_total",
		Help:      "Completion calls issued to the scoring oracle.",
	}, []string{"component", "outcome"})

	// ParseFailures counts oracle replies that could not be parsed into the
	// expected structured form, after JSON repair.
	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "toolgauge",
		Name:      "oracle_parse_failures_total",
		Help:      "Oracle replies rejected as structurally malformed.",
	}, []string{"component"})

	// FallbackAssessments counts assessments that degraded to the neutral
	// fallback score.
	FallbackAssessments = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "toolgauge",
		Name:      "fallback_assessments_total",
		Help:      "Assessments that fell back to the deterministic neutral score.",
	})
)
