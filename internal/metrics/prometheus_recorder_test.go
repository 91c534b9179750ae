package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.IncConversion("markdown", "html", OutcomeSuccess)
	pr.IncConversion("markdown", "html", OutcomeSuccess)
	pr.IncConversion("html", "plain", OutcomeFailed)
	pr.ObserveStageDuration("parse", 3*time.Millisecond)
	pr.AddInputBytes(100)
	pr.AddInputBytes(-5)
	pr.AddOutputBytes(250)

	mfs, err := reg.Gather()
	require.NoError(t, err)

	counters := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, lp := range m.GetLabel() {
				key += "," + lp.GetValue()
			}
			if c := m.GetCounter(); c != nil {
				counters[key] = c.GetValue()
			}
			if h := m.GetHistogram(); h != nil {
				counters[key] = float64(h.GetSampleCount())
			}
		}
	}

	assert.InDelta(t, 2, counters["docconv_conversions_total,markdown,success,html"], 0)
	assert.InDelta(t, 1, counters["docconv_conversions_total,html,failed,plain"], 0)
	assert.InDelta(t, 1, counters["docconv_stage_duration_seconds,parse"], 0)
	assert.InDelta(t, 100, counters["docconv_input_bytes_total"], 0)
	assert.InDelta(t, 250, counters["docconv_output_bytes_total"], 0)
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var pr *PrometheusRecorder
	assert.NotPanics(t, func() {
		pr.IncConversion("a", "b", OutcomeCanceled)
		pr.ObserveStageDuration("parse", time.Second)
		pr.AddInputBytes(1)
		pr.AddOutputBytes(1)
	})
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	assert.NotPanics(t, func() {
		r.IncConversion("a", "b", OutcomeSuccess)
		r.ObserveStageDuration("render", time.Millisecond)
		r.AddInputBytes(1)
		r.AddOutputBytes(1)
	})
}
