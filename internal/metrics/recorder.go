package metrics

import "time"

// Outcome labels a finished conversion.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeFailed   Outcome = "failed"
	OutcomeCanceled Outcome = "canceled"
)

// Recorder receives conversion observations. Implementations must be safe for
// concurrent use.
type Recorder interface {
	IncConversion(from, to string, outcome Outcome)
	ObserveStageDuration(stage string, d time.Duration)
	AddInputBytes(n int64)
	AddOutputBytes(n int64)
}

// NoopRecorder is the Recorder used when metrics are not configured.
type NoopRecorder struct{}

func (NoopRecorder) IncConversion(string, string, Outcome)      {}
func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) AddInputBytes(int64)                        {}
func (NoopRecorder) AddOutputBytes(int64)                       {}

var _ Recorder = NoopRecorder{}
