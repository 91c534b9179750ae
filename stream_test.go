package docconv

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

// pullAll drains src with a small buffer.
func pullAll(t *testing.T, src ByteSource) (string, error) {
	t.Helper()
	var sb strings.Builder
	buf := make([]byte, 3)
	for {
		n, err := src.Pull(buf)
		if err != nil {
			return sb.String(), err
		}
		if n == 0 {
			return sb.String(), nil
		}
		sb.Write(buf[:n])
	}
}

func TestSourceFunc(t *testing.T) {
	t.Parallel()

	t.Run("count passes through", func(t *testing.T) {
		t.Parallel()
		n, err := SourceFunc(func(buf []byte) int { return copy(buf, "ab") }).Pull(make([]byte, 4))
		if n != 2 || err != nil {
			t.Errorf("Pull() = %d, %v; want 2, nil", n, err)
		}
	})

	t.Run("negative count fails", func(t *testing.T) {
		t.Parallel()
		n, err := SourceFunc(func([]byte) int { return -3 }).Pull(make([]byte, 4))
		if n != 0 || !errors.Is(err, ErrSourceFailed) {
			t.Errorf("Pull() = %d, %v; want 0, ErrSourceFailed", n, err)
		}
	})
}

func TestReaderSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		reader  io.Reader
		want    string
		wantErr error
	}{
		{"plain reader", strings.NewReader("hello world"), "hello world", nil},
		{"one byte at a time", iotest.OneByteReader(strings.NewReader("abc")), "abc", nil},
		{"data with EOF", iotest.DataErrReader(strings.NewReader("payload")), "payload", nil},
		{"half reads", iotest.HalfReader(strings.NewReader("0123456789")), "0123456789", nil},
		{"reader error", iotest.ErrReader(io.ErrUnexpectedEOF), "", io.ErrUnexpectedEOF},
		{"empty", strings.NewReader(""), "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := pullAll(t, ReaderSource(tt.reader))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

type stallReader struct{}

func (stallReader) Read([]byte) (int, error) { return 0, nil }

func TestReaderSource_NoProgress(t *testing.T) {
	t.Parallel()

	src := ReaderSource(stallReader{})
	if _, err := src.Pull(make([]byte, 8)); !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("Pull() error = %v, want io.ErrNoProgress", err)
	}
	if _, err := src.Pull(make([]byte, 8)); !errors.Is(err, io.ErrNoProgress) {
		t.Errorf("second Pull() error = %v, want sticky io.ErrNoProgress", err)
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestWriterSink(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	if err := WriterSink(&sb).Push([]byte("abc")); err != nil {
		t.Fatalf("Push() unexpected error: %v", err)
	}
	if sb.String() != "abc" {
		t.Errorf("got %q", sb.String())
	}

	if err := WriterSink(shortWriter{}).Push([]byte("abcd")); !errors.Is(err, io.ErrShortWrite) {
		t.Errorf("Push() error = %v, want io.ErrShortWrite", err)
	}
}

func TestBytesSource(t *testing.T) {
	t.Parallel()

	got, err := pullAll(t, BytesSource([]byte("streamed bytes")))
	if err != nil || got != "streamed bytes" {
		t.Errorf("pullAll() = %q, %v", got, err)
	}
}
