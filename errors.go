package docconv

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
	"github.com/alnah/go-docconv/internal/stream"
)

// Sentinel errors, one per Kind. Every *Error matches its kind's sentinel
// with errors.Is.
var (
	ErrLifecycle         = errors.New("lifecycle error")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnsupportedOption = errors.New("unsupported option")
	ErrParse             = errors.New("parse error")
	ErrRender            = errors.New("render error")
	ErrIO                = errors.New("I/O error")
)

// Kind classifies a conversion failure.
type Kind uint8

// Failure kinds.
const (
	KindLifecycle         Kind = iota + 1 // engine used before init or after teardown
	KindUnsupportedFormat                 // no reader or writer for a format
	KindUnsupportedOption                 // option or extension the target cannot honor
	KindParse                             // malformed input
	KindRender                            // document not expressible in the target
	KindIO                                // source or sink failure
)

var kindNames = map[Kind]string{
	KindLifecycle:         "LifecycleError",
	KindUnsupportedFormat: "UnsupportedFormat",
	KindUnsupportedOption: "UnsupportedOption",
	KindParse:             "ParseError",
	KindRender:            "RenderError",
	KindIO:                "IOError",
}

var kindSentinels = map[Kind]error{
	KindLifecycle:         ErrLifecycle,
	KindUnsupportedFormat: ErrUnsupportedFormat,
	KindUnsupportedOption: ErrUnsupportedOption,
	KindParse:             ErrParse,
	KindRender:            ErrRender,
	KindIO:                ErrIO,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Position locates a parse failure. Line and Column are 1-based; Offset is a
// 0-based byte offset. Zero fields are unknown.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsZero reports whether the position is unknown.
func (p Position) IsZero() bool {
	return p == Position{}
}

// Error is the single failure value returned by the engine.
type Error struct {
	Kind    Kind
	Op      string   // operation, e.g. "convert markdown->html"
	Message string   // human-readable description
	Pos     Position // set for parse errors when known
	Err     error    // underlying cause, if any
}

func (e *Error) Error() string {
	msg := e.Kind.String() + ": " + e.Message
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Pos.Line > 0 {
		msg += fmt.Sprintf(" (line %d, column %d)", e.Pos.Line, e.Pos.Column)
	}
	return msg
}

// Unwrap exposes the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of err, or 0 when err is not a docconv error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// classify converts a stage failure into an *Error. fallback is used for
// failures that carry no classification of their own.
func classify(op string, err error, fallback Kind) *Error {
	var (
		own    *Error
		parse  *pipeline.ParseError
		render *pipeline.RenderError
		node   *document.NodeError
		ioErr  *stream.IOError
	)
	switch {
	case errors.As(err, &own):
		return own
	case errors.As(err, &ioErr):
		return &Error{Kind: KindIO, Op: op, Message: ioErr.Error(), Err: ioErr.Err}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindIO, Op: op, Message: "conversion interrupted: " + err.Error(), Err: err}
	case errors.As(err, &parse):
		return &Error{
			Kind:    KindParse,
			Op:      op,
			Message: parse.Message,
			Pos:     Position(parse.Pos),
		}
	case errors.As(err, &render):
		return &Error{Kind: KindRender, Op: op, Message: render.Error()}
	case errors.As(err, &node):
		return &Error{Kind: KindRender, Op: op, Message: node.Error(), Err: err}
	default:
		return &Error{Kind: fallback, Op: op, Message: err.Error(), Err: err}
	}
}

func quote(s string) string {
	return strconv.Quote(s)
}
