// Package logfields holds the canonical slog attribute keys used across
// docconv so log output stays stable for ingestion.
package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field names.
const (
	KeyFrom       = "from"
	KeyTo         = "to"
	KeyStage      = "stage"
	KeyBytes      = "bytes"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyOutput     = "output"
	KeyWorkers    = "workers"
	KeyOptions    = "options"
	KeyError      = "error"
)

func From(format string) slog.Attr   { return slog.String(KeyFrom, format) }
func To(format string) slog.Attr     { return slog.String(KeyTo, format) }
func Stage(name string) slog.Attr    { return slog.String(KeyStage, name) }
func Bytes(n int64) slog.Attr        { return slog.Int64(KeyBytes, n) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Output(p string) slog.Attr      { return slog.String(KeyOutput, p) }
func Workers(n int) slog.Attr        { return slog.Int(KeyWorkers, n) }
func Options(names string) slog.Attr { return slog.String(KeyOptions, names) }

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d)/float64(time.Millisecond))
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
