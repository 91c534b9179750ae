// Package docconv converts documents between Markdown, HTML and plain text.
//
// # Quick Start
//
// Create an engine, convert, and tear it down when done:
//
//	eng, err := docconv.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Teardown()
//
//	err = eng.Convert(ctx, docconv.Request{
//	    From:    docconv.FormatMarkdown,
//	    To:      docconv.FormatHTML,
//	    Options: docconv.OptGenerateTOC | docconv.OptStandalone,
//	    Source:  docconv.ReaderSource(os.Stdin),
//	    Sink:    docconv.WriterSink(os.Stdout),
//	})
//
// # Conversion Pipeline
//
// Every conversion runs the same fixed stages:
//
//  1. The reader for the source format pulls the whole input and parses it
//     into a document tree.
//  2. Structural transforms run; OptGenerateTOC prepends a table of contents.
//  3. The writer for the target format walks the tree once and pushes output
//     to the sink in chunks as it renders.
//
// A failure in any stage stops the conversion and is returned as an *Error
// whose Kind tells which class of problem occurred. Output already pushed is
// not retracted.
//
// # Options and Extensions
//
// Options select conversion features and are checked against the target
// writer: OptStandalone is ignored by targets without an envelope, while
// OptHighlightCode fails with ErrUnsupportedOption when the target cannot
// highlight. Extensions enable reader syntax and fail the same way when the
// source reader does not support them. Unknown bits always fail.
//
// # Byte Streams
//
// Sources and sinks are caller-supplied. SourceFunc and SinkFunc adapt
// callbacks, ReaderSource and WriterSink adapt io.Reader and io.Writer, and
// BytesSource serves a byte slice.
//
// # Lifecycle
//
// An Engine is ready when New returns and safe for concurrent conversions.
// After Teardown every Convert fails with ErrLifecycle. The package-level
// Init, Convert and Teardown manage a shared default engine.
package docconv
