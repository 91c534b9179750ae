package docconv

import (
	"log/slog"

	"github.com/alnah/go-docconv/internal/assets"
	"github.com/alnah/go-docconv/internal/htmlfmt"
	"github.com/alnah/go-docconv/internal/metrics"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Engine defaults.
const (
	DefaultChunkSize      = 4096
	DefaultMaxInputSize   = 64 << 20
	DefaultTOCDepth       = pipeline.MaxTOCDepth
	DefaultStyle          = assets.DefaultStyleName
	DefaultHighlightStyle = htmlfmt.DefaultHighlightStyle
)

// Option configures an Engine.
type Option func(*engineConfig)

type engineConfig struct {
	logger         *slog.Logger
	recorder       metrics.Recorder
	chunkSize      int
	maxInputSize   int64
	tocDepth       int
	style          string
	assetDir       string
	highlightStyle string
}

func defaultConfig() engineConfig {
	return engineConfig{
		logger:         slog.New(slog.DiscardHandler),
		recorder:       metrics.NoopRecorder{},
		chunkSize:      DefaultChunkSize,
		maxInputSize:   DefaultMaxInputSize,
		tocDepth:       DefaultTOCDepth,
		style:          DefaultStyle,
		highlightStyle: DefaultHighlightStyle,
	}
}

// WithLogger sets the logger for stage diagnostics. A nil logger discards.
func WithLogger(l *slog.Logger) Option {
	return func(c *engineConfig) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		c.logger = l
	}
}

// WithRecorder sets the metrics recorder. A nil recorder disables metrics.
func WithRecorder(r Recorder) Option {
	return func(c *engineConfig) {
		if r == nil {
			r = metrics.NoopRecorder{}
		}
		c.recorder = r
	}
}

// WithChunkSize sets how many rendered bytes are gathered before each push to
// the sink.
// Panics if n <= 0.
func WithChunkSize(n int) Option {
	if n <= 0 {
		panic("docconv: WithChunkSize size must be positive")
	}
	return func(c *engineConfig) {
		c.chunkSize = n
	}
}

// WithMaxInputSize bounds the bytes pulled from a source; exceeding it fails
// the conversion with an I/O error. n <= 0 removes the limit.
func WithMaxInputSize(n int64) Option {
	return func(c *engineConfig) {
		c.maxInputSize = n
	}
}

// WithTOCDepth sets the deepest heading level listed in a generated table of
// contents.
// Panics if depth is outside 1..6.
func WithTOCDepth(depth int) Option {
	if depth < pipeline.MinTOCDepth || depth > pipeline.MaxTOCDepth {
		panic("docconv: WithTOCDepth depth must be between 1 and 6")
	}
	return func(c *engineConfig) {
		c.tocDepth = depth
	}
}

// WithStyle selects the stylesheet embedded in standalone HTML output.
// New fails if the style does not exist.
func WithStyle(name string) Option {
	return func(c *engineConfig) {
		c.style = name
	}
}

// WithAssetDir sets a directory whose styles/ and templates/ override the
// built-in assets file by file.
func WithAssetDir(dir string) Option {
	return func(c *engineConfig) {
		c.assetDir = dir
	}
}

// WithHighlightStyle selects the chroma style used for code highlighting.
// Unknown names fall back to chroma's default style.
func WithHighlightStyle(name string) Option {
	return func(c *engineConfig) {
		c.highlightStyle = name
	}
}
