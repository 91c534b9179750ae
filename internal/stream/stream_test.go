package stream

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"
)

// chunkSource hands out data at most size bytes per pull and counts pulls
// made after end of input.
type chunkSource struct {
	data       []byte
	size       int
	afterEOF   int
	reachedEOF bool
}

func (s *chunkSource) Pull(p []byte) (int, error) {
	if s.reachedEOF {
		s.afterEOF++
	}
	if len(s.data) == 0 {
		s.reachedEOF = true
		return 0, nil
	}
	n := min(len(p), s.size, len(s.data))
	copy(p, s.data[:n])
	s.data = s.data[n:]
	return n, nil
}

type badSource struct {
	n   int
	err error
}

func (s badSource) Pull([]byte) (int, error) { return s.n, s.err }

type recordSink struct {
	pushes [][]byte
	err    error
}

func (s *recordSink) Push(p []byte) error {
	if s.err != nil {
		return s.err
	}
	s.pushes = append(s.pushes, append([]byte(nil), p...))
	return nil
}

// ---------------------------------------------------------------------------
// Reader
// ---------------------------------------------------------------------------

func TestReader_DrainsSource(t *testing.T) {
	t.Parallel()

	src := &chunkSource{data: []byte("hello, world"), size: 3}
	r := NewReader(context.Background(), src, 0)

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() unexpected error: %v", err)
	}
	if string(got) != "hello, world" {
		t.Errorf("ReadAll() = %q, want %q", got, "hello, world")
	}
	if r.BytesRead() != 12 {
		t.Errorf("BytesRead() = %d, want 12", r.BytesRead())
	}

	// Extra reads must not pull an exhausted source.
	buf := make([]byte, 8)
	for range 3 {
		if n, err := r.Read(buf); n != 0 || err != io.EOF {
			t.Fatalf("Read after EOF = (%d, %v), want (0, EOF)", n, err)
		}
	}
	if src.afterEOF != 0 {
		t.Errorf("source pulled %d times after EOF, want 0", src.afterEOF)
	}
}

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	boom := errors.New("disk gone")
	tests := []struct {
		name    string
		src     Source
		limit   int64
		wantErr error
	}{
		{"source failure", badSource{err: boom}, 0, boom},
		{"negative count", badSource{n: -1}, 0, ErrBadCount},
		{"count beyond buffer", badSource{n: 1 << 20}, 0, ErrBadCount},
		{"size limit", &chunkSource{data: make([]byte, 100), size: 10}, 50, ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := io.ReadAll(NewReader(context.Background(), tt.src, tt.limit))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ReadAll() error = %v, want %v", err, tt.wantErr)
			}
			var ioErr *IOError
			if !errors.As(err, &ioErr) {
				t.Errorf("error %T is not *IOError", err)
			}
		})
	}
}

func TestReader_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &chunkSource{data: []byte("data"), size: 4}
	_, err := io.ReadAll(NewReader(ctx, src, 0))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ReadAll() error = %v, want context.Canceled", err)
	}
	if len(src.data) != 4 {
		t.Error("canceled reader should not pull the source")
	}
}

// ---------------------------------------------------------------------------
// Writer
// ---------------------------------------------------------------------------

func TestWriter_ChunkedPushes(t *testing.T) {
	t.Parallel()

	sink := &recordSink{}
	w := NewWriter(sink)
	bw := bufio.NewWriterSize(w, 16)

	for range 10 {
		if _, err := bw.WriteString("0123456789"); err != nil {
			t.Fatalf("WriteString() unexpected error: %v", err)
		}
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("Flush() unexpected error: %v", err)
	}

	if w.BytesWritten() != 100 {
		t.Errorf("BytesWritten() = %d, want 100", w.BytesWritten())
	}
	if w.Pushes() < 2 {
		t.Errorf("Pushes() = %d, want more than one push", w.Pushes())
	}
	for i, p := range sink.pushes {
		if len(p) > 16 {
			t.Errorf("push %d carried %d bytes, want <= 16", i, len(p))
		}
	}
}

func TestWriter_StickyFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("pipe closed")
	sink := &recordSink{err: boom}
	w := NewWriter(sink)

	if _, err := w.Write([]byte("a")); !errors.Is(err, boom) {
		t.Fatalf("Write() error = %v, want %v", err, boom)
	}
	sink.err = nil
	if _, err := w.Write([]byte("b")); !errors.Is(err, boom) {
		t.Fatalf("second Write() error = %v, want sticky %v", err, boom)
	}
	if len(sink.pushes) != 0 {
		t.Errorf("sink received %d pushes after failure, want 0", len(sink.pushes))
	}
}
