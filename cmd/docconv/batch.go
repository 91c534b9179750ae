package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-docconv"
	"github.com/alnah/go-docconv/internal/fileutil"
	"github.com/alnah/go-docconv/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input file")
	ErrWriteOutput = errors.New("failed to write output file")
)

// Converter is the part of the engine the CLI uses.
type Converter interface {
	Convert(ctx context.Context, req docconv.Request) error
}

// Compile-time interface implementation check.
var _ Converter = (*docconv.Engine)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	to         docconv.Format
	options    docconv.Options
	extensions docconv.Extensions
	workers    int
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently with a bounded worker pool.
func convertBatch(ctx context.Context, conv Converter, files []FileToConvert, params *conversionParams) []ConversionResult {
	results := make([]ConversionResult, len(files))
	runPool(ctx, params.workers, len(files),
		func(ctx context.Context, i int) {
			results[i] = convertFile(ctx, conv, files[i], params)
		},
		func(i int, err error) {
			results[i] = ConversionResult{InputPath: files[i].InputPath, OutputPath: files[i].OutputPath, Err: err}
		},
	)
	return results
}

// convertFile converts one file, writing the output atomically.
func convertFile(ctx context.Context, conv Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	in, err := os.Open(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadInput, err))
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		return fail(fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory()))
	}
	out, err := fileutil.CreateAtomic(f.OutputPath, filePermissions)
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	err = conv.Convert(ctx, docconv.Request{
		From:       f.From,
		To:         params.to,
		Options:    params.options,
		Extensions: params.extensions,
		Source:     docconv.ReaderSource(in),
		Sink:       docconv.WriterSink(out),
	})
	if err != nil {
		out.Abort()
		return fail(err)
	}
	if err := out.Commit(); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}

	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// batchError reports failed conversions. It unwraps to the first failure so
// the exit code reflects its kind.
type batchError struct {
	failed int
	first  error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() error {
	return e.first
}

// printResults outputs conversion results and returns an error when any failed.
func printResults(results []ConversionResult, quiet, verbose bool, stdout, stderr io.Writer) error {
	summary := countResults(results)
	var first error

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(stderr, "FAILED %s: %v%s\n", r.InputPath, r.Err, hintFor(r.Err))
			if first == nil {
				first = r.Err
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	if summary.Failed > 0 {
		return &batchError{failed: summary.Failed, first: first}
	}
	return nil
}
