// Package stream adapts pull-based byte sources and push-based byte sinks to
// io.Reader and io.Writer so format readers and writers can use the standard
// streaming interfaces.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Source produces raw bytes on demand. Returning 0 with a nil error signals
// end of input.
type Source interface {
	Pull(p []byte) (int, error)
}

// Sink consumes raw bytes as they are produced.
type Sink interface {
	Push(p []byte) error
}

// Sentinel errors for stream failures.
var (
	ErrBadCount      = errors.New("source returned invalid byte count")
	ErrInputTooLarge = errors.New("input exceeds size limit")
)

// IOError wraps a failure raised by a caller-supplied source or sink.
type IOError struct {
	Op  string // "pull" or "push"
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Reader exposes a Source as an io.Reader.
// Once the source reports end of input it is never pulled again.
type Reader struct {
	ctx   context.Context
	src   Source
	limit int64
	total int64
	pulls int
	eof   bool
	err   error
}

// NewReader wraps src. A limit <= 0 disables the size check.
func NewReader(ctx context.Context, src Source, limit int64) *Reader {
	return &Reader{ctx: ctx, src: src, limit: limit}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if r.eof {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}
	if err := r.ctx.Err(); err != nil {
		r.err = err
		return 0, err
	}

	r.pulls++
	n, err := r.src.Pull(p)
	if err != nil {
		r.err = &IOError{Op: "pull", Err: err}
		return 0, r.err
	}
	if n < 0 || n > len(p) {
		r.err = &IOError{Op: "pull", Err: fmt.Errorf("%w: %d (buffer %d)", ErrBadCount, n, len(p))}
		return 0, r.err
	}
	if n == 0 {
		r.eof = true
		return 0, io.EOF
	}

	r.total += int64(n)
	if r.limit > 0 && r.total > r.limit {
		r.err = &IOError{Op: "pull", Err: fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, r.limit)}
		return 0, r.err
	}
	return n, nil
}

// BytesRead returns the number of bytes pulled so far.
func (r *Reader) BytesRead() int64 {
	return r.total
}

// Pulls returns the number of times the source was pulled.
func (r *Reader) Pulls() int {
	return r.pulls
}

// Writer exposes a Sink as an io.Writer. Every Write is delivered as one push.
type Writer struct {
	sink   Sink
	total  int64
	pushes int
	err    error
}

// NewWriter wraps sink.
func NewWriter(sink Sink) *Writer {
	return &Writer{sink: sink}
}

// Write implements io.Writer. After the first failure every call returns that
// failure without touching the sink.
func (w *Writer) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	if len(p) == 0 {
		return 0, nil
	}
	w.pushes++
	if err := w.sink.Push(p); err != nil {
		w.err = &IOError{Op: "push", Err: err}
		return 0, w.err
	}
	w.total += int64(len(p))
	return len(p), nil
}

// BytesWritten returns the number of bytes accepted by the sink.
func (w *Writer) BytesWritten() int64 {
	return w.total
}

// Pushes returns the number of push calls made.
func (w *Writer) Pushes() int {
	return w.pushes
}
