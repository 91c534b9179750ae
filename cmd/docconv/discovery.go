package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alnah/go-docconv"
	"github.com/alnah/go-docconv/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrUnknownInputFormat = errors.New("cannot infer input format")
	ErrOutputIsInput      = errors.New("output would overwrite input")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
	From       docconv.Format
}

// discoverFiles expands inputs into the files to convert. Files are taken as
// given; directories are walked for files whose extension names a readable
// format (only from, when set).
func discoverFiles(inputs []string, output string, from, to docconv.Format, readable func(docconv.Format) bool) ([]FileToConvert, error) {
	var files []FileToConvert
	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			f := from
			if f == docconv.FormatUnknown {
				f = docconv.FormatForPath(input)
			}
			if f == docconv.FormatUnknown {
				return nil, fmt.Errorf("%w: %s", ErrUnknownInputFormat, input)
			}
			outPath := resolveOutputPath(input, output, "", to, len(inputs) == 1)
			files = append(files, FileToConvert{InputPath: input, OutputPath: outPath, From: f})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() {
				return nil
			}
			f := docconv.FormatForPath(path)
			if f == docconv.FormatUnknown || !readable(f) || (from != docconv.FormatUnknown && f != from) {
				return nil
			}
			outPath := resolveOutputPath(path, output, input, to, false)
			files = append(files, FileToConvert{InputPath: path, OutputPath: outPath, From: f})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	for _, f := range files {
		if samePath(f.InputPath, f.OutputPath) {
			return nil, fmt.Errorf("%w: %s (use --output)", ErrOutputIsInput, f.InputPath)
		}
	}
	return files, nil
}

// resolveOutputPath determines the output path for an input file.
// With a single input, an output whose extension names a format is a file.
func resolveOutputPath(inputPath, output, baseInputDir string, to docconv.Format, single bool) string {
	base := fileutil.ReplaceExt(filepath.Base(inputPath), to.Extension())

	if output == "" {
		return filepath.Join(filepath.Dir(inputPath), base)
	}

	if single && docconv.FormatForPath(output) != docconv.FormatUnknown {
		return output
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(output, filepath.Dir(relPath), base)
		}
	}

	return filepath.Join(output, base)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n, limit int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > limit {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, limit)
	}
	return nil
}
