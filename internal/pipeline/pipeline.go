package pipeline

import (
	"context"
	"io"

	"github.com/alnah/go-docconv/internal/document"
)

// ReadOptions selects syntax extensions for a Reader.
type ReadOptions struct {
	Autolink       bool // bare URLs become links
	Typographer    bool // smart quotes and dashes
	HardLineBreaks bool // every newline inside a paragraph is a line break
}

// Covers reports whether every extension enabled in o is enabled in supported.
func (o ReadOptions) Covers(supported ReadOptions) bool {
	return (!o.Autolink || supported.Autolink) &&
		(!o.Typographer || supported.Typographer) &&
		(!o.HardLineBreaks || supported.HardLineBreaks)
}

// WriteOptions controls rendering.
type WriteOptions struct {
	Standalone bool   // wrap the body in the format's envelope
	Highlight  bool   // syntax-highlight code blocks
	CSS        string // stylesheet embedded in the envelope
}

// Capabilities is the set of optional features a Writer can honor.
type Capabilities uint8

// Writer capabilities.
const (
	CapEnvelope Capabilities = 1 << iota
	CapHighlight
)

// Has reports whether all capabilities in c2 are present in c.
func (c Capabilities) Has(c2 Capabilities) bool {
	return c&c2 == c2
}

// Reader parses one source format into a document.
// It must consume r until io.EOF or fail.
type Reader interface {
	Read(ctx context.Context, r io.Reader, opts ReadOptions) (*document.Document, error)
	// Extensions returns the ReadOptions this Reader understands.
	Extensions() ReadOptions
}

// Writer renders a document in one target format.
// It traverses the document once, writing as it goes.
type Writer interface {
	Write(ctx context.Context, doc *document.Document, w io.Writer, opts WriteOptions) error
	Capabilities() Capabilities
}
