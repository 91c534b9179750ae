package main

// Notes:
// - discoverFiles: we build a small tree in t.TempDir() and check which files
//   are selected and where their outputs go.
// - resolveOutputPath: pure path logic, tested with a table.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docconv"
)

func readableInputs(f docconv.Format) bool {
	return f == docconv.FormatMarkdown || f == docconv.FormatHTML
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Input expansion
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	newTree := func(t *testing.T) string {
		t.Helper()
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "a.md"), "# A")
		writeFile(t, filepath.Join(dir, "b.html"), "<p>b</p>")
		writeFile(t, filepath.Join(dir, "notes.rst"), "skip")
		writeFile(t, filepath.Join(dir, "sub", "c.markdown"), "# C")
		return dir
	}

	t.Run("directory walks readable formats", func(t *testing.T) {
		t.Parallel()

		dir := newTree(t)
		out := filepath.Join(dir, "out")

		got, err := discoverFiles([]string{dir}, out, docconv.FormatUnknown, docconv.FormatPlain, readableInputs)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}

		want := []FileToConvert{
			{InputPath: filepath.Join(dir, "a.md"), OutputPath: filepath.Join(out, "a.txt"), From: docconv.FormatMarkdown},
			{InputPath: filepath.Join(dir, "b.html"), OutputPath: filepath.Join(out, "b.txt"), From: docconv.FormatHTML},
			{InputPath: filepath.Join(dir, "sub", "c.markdown"), OutputPath: filepath.Join(out, "sub", "c.txt"), From: docconv.FormatMarkdown},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("discoverFiles() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("from filters directory entries", func(t *testing.T) {
		t.Parallel()

		dir := newTree(t)

		got, err := discoverFiles([]string{dir}, "", docconv.FormatHTML, docconv.FormatMarkdown, readableInputs)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(got) != 1 || got[0].InputPath != filepath.Join(dir, "b.html") {
			t.Fatalf("discoverFiles() = %+v, want only b.html", got)
		}
		if want := filepath.Join(dir, "b.md"); got[0].OutputPath != want {
			t.Errorf("OutputPath = %q, want %q", got[0].OutputPath, want)
		}
	})

	t.Run("explicit file with unknown extension", func(t *testing.T) {
		t.Parallel()

		dir := newTree(t)

		_, err := discoverFiles([]string{filepath.Join(dir, "notes.rst")}, "", docconv.FormatUnknown, docconv.FormatHTML, readableInputs)
		if !errors.Is(err, ErrUnknownInputFormat) {
			t.Errorf("error = %v, want ErrUnknownInputFormat", err)
		}
	})

	t.Run("explicit file with from set", func(t *testing.T) {
		t.Parallel()

		dir := newTree(t)
		in := filepath.Join(dir, "notes.rst")

		got, err := discoverFiles([]string{in}, "", docconv.FormatMarkdown, docconv.FormatHTML, readableInputs)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if got[0].From != docconv.FormatMarkdown || got[0].OutputPath != filepath.Join(dir, "notes.html") {
			t.Errorf("discoverFiles() = %+v", got[0])
		}
	})

	t.Run("output would overwrite input", func(t *testing.T) {
		t.Parallel()

		dir := newTree(t)

		_, err := discoverFiles([]string{filepath.Join(dir, "b.html")}, "", docconv.FormatUnknown, docconv.FormatHTML, readableInputs)
		if !errors.Is(err, ErrOutputIsInput) {
			t.Errorf("error = %v, want ErrOutputIsInput", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles([]string{filepath.Join(t.TempDir(), "nope.md")}, "", docconv.FormatUnknown, docconv.FormatHTML, readableInputs)
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output path derivation
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		baseDir string
		to      docconv.Format
		single  bool
		want    string
	}{
		{"alongside input", "docs/a.md", "", "", docconv.FormatHTML, true, filepath.Join("docs", "a.html")},
		{"single file output", "docs/a.md", "out/page.html", "", docconv.FormatHTML, true, "out/page.html"},
		{"single dir output", "docs/a.md", "out", "", docconv.FormatPlain, true, filepath.Join("out", "a.txt")},
		{"batch keeps structure", "docs/sub/a.md", "out", "docs", docconv.FormatHTML, false, filepath.Join("out", "sub", "a.html")},
		{"batch ignores file-like output", "docs/a.md", "out.html", "docs", docconv.FormatHTML, false, filepath.Join("out.html", "a.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.input, tt.output, tt.baseDir, tt.to, tt.single)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Worker count bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, false},
		{1, false},
		{8, false},
		{-1, true},
		{9, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n, 8)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
