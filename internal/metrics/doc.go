// Package metrics records conversion metrics.
//
// Components receive a Recorder and default to NoopRecorder, so metrics cost
// nothing until a PrometheusRecorder is injected.
package metrics
