package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docconv"

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	conversions   *prom.CounterVec
	stageDuration *prom.HistogramVec
	inputBytes    prom.Counter
	outputBytes   prom.Counter
}

// NewPrometheusRecorder creates the collectors and registers them with reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		conversions: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Conversions by source format, target format and outcome",
		}, []string{"from", "to", "outcome"}),
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of parse, transform and render stages",
			Buckets:   prom.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
		inputBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Bytes pulled from sources",
		}),
		outputBytes: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "output_bytes_total",
			Help:      "Bytes pushed to sinks",
		}),
	}
	reg.MustRegister(pr.conversions, pr.stageDuration, pr.inputBytes, pr.outputBytes)
	return pr
}

func (p *PrometheusRecorder) IncConversion(from, to string, outcome Outcome) {
	if p == nil {
		return
	}
	p.conversions.WithLabelValues(from, to, string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) AddInputBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.inputBytes.Add(float64(n))
}

func (p *PrometheusRecorder) AddOutputBytes(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.outputBytes.Add(float64(n))
}

var _ Recorder = (*PrometheusRecorder)(nil)
