package docconv

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-docconv/internal/metrics"
)

// Recorder receives conversion metrics. See WithRecorder.
type Recorder = metrics.Recorder

// Outcome labels a finished conversion for a Recorder.
type Outcome = metrics.Outcome

// Conversion outcomes.
const (
	OutcomeSuccess  = metrics.OutcomeSuccess
	OutcomeFailed   = metrics.OutcomeFailed
	OutcomeCanceled = metrics.OutcomeCanceled
)

// NewPrometheusRecorder returns a Recorder whose collectors are registered
// with reg under the docconv namespace. A nil reg gets a private registry.
func NewPrometheusRecorder(reg *prometheus.Registry) Recorder {
	return metrics.NewPrometheusRecorder(reg)
}
