package docconv

import (
	"errors"
	"fmt"
	"io"
)

// ByteSource produces input on demand. Pull fills p with up to len(p) bytes
// and returns how many it wrote. Returning 0 with a nil error ends the input;
// the engine never pulls again afterwards.
type ByteSource interface {
	Pull(p []byte) (int, error)
}

// ByteSink consumes output as it is produced. Push must consume all of p or
// return an error.
type ByteSink interface {
	Push(p []byte) error
}

// ErrSourceFailed is reported when a SourceFunc returns a negative count.
var ErrSourceFailed = errors.New("source callback failed")

// SourceFunc adapts a callback that fills buf and returns the number of bytes
// produced: 0 ends the input, a negative value reports failure.
type SourceFunc func(buf []byte) int

// Pull implements ByteSource.
func (f SourceFunc) Pull(p []byte) (int, error) {
	n := f(p)
	if n < 0 {
		return 0, fmt.Errorf("%w: returned %d", ErrSourceFailed, n)
	}
	return n, nil
}

// SinkFunc adapts a callback that must consume all of buf.
type SinkFunc func(buf []byte) error

// Push implements ByteSink.
func (f SinkFunc) Push(p []byte) error {
	return f(p)
}

// ReaderSource pulls from r. Short reads are passed through; io.EOF ends the
// input even when it arrives together with data.
func ReaderSource(r io.Reader) ByteSource {
	return &readerSource{r: r}
}

// maxEmptyReads bounds consecutive (0, nil) reads, as bufio does.
const maxEmptyReads = 100

type readerSource struct {
	r       io.Reader
	pending error
}

func (s *readerSource) Pull(p []byte) (int, error) {
	if s.pending != nil {
		if errors.Is(s.pending, io.EOF) {
			return 0, nil
		}
		return 0, s.pending
	}
	for range maxEmptyReads {
		n, err := s.r.Read(p)
		if err != nil {
			s.pending = err
			if n > 0 {
				return n, nil
			}
			if errors.Is(err, io.EOF) {
				return 0, nil
			}
			return 0, err
		}
		if n > 0 || len(p) == 0 {
			return n, nil
		}
		// io.Reader allows (0, nil); keep reading rather than signal EOF.
	}
	s.pending = io.ErrNoProgress
	return 0, s.pending
}

// WriterSink pushes to w, failing on short writes.
func WriterSink(w io.Writer) ByteSink {
	return SinkFunc(func(p []byte) error {
		n, err := w.Write(p)
		if err != nil {
			return err
		}
		if n != len(p) {
			return io.ErrShortWrite
		}
		return nil
	})
}

// BytesSource serves b. The slice is not copied and must not change during
// the conversion.
func BytesSource(b []byte) ByteSource {
	return &bytesSource{b: b}
}

type bytesSource struct {
	b []byte
}

func (s *bytesSource) Pull(p []byte) (int, error) {
	n := copy(p, s.b)
	s.b = s.b[n:]
	return n, nil
}
