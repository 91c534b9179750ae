package docconv

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/alnah/go-docconv/internal/assets"
	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/htmlfmt"
	"github.com/alnah/go-docconv/internal/logfields"
	"github.com/alnah/go-docconv/internal/markdown"
	"github.com/alnah/go-docconv/internal/metrics"
	"github.com/alnah/go-docconv/internal/pipeline"
	"github.com/alnah/go-docconv/internal/plain"
	"github.com/alnah/go-docconv/internal/stream"
)

// Stage names used in logs and metrics.
const (
	stageParse     = "parse"
	stageTransform = "transform"
	stageRender    = "render"
)

// Request describes one conversion.
type Request struct {
	From       Format
	To         Format
	Options    Options
	Extensions Extensions
	Source     ByteSource
	Sink       ByteSink
}

// Engine converts documents between formats. Create one with New; it is safe
// for concurrent use until Teardown. The zero value is not initialized and
// every Convert on it fails with a lifecycle error.
type Engine struct {
	cfg engineConfig
	reg atomic.Pointer[registry]
}

// registry holds the readers and writers keyed by format. It is built once by
// New and never modified.
type registry struct {
	readers map[Format]pipeline.Reader
	writers map[Format]pipeline.Writer
	css     string
}

// New creates an initialized Engine.
func New(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	reg, err := newRegistry(cfg)
	if err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg}
	e.reg.Store(reg)
	return e, nil
}

func newRegistry(cfg engineConfig) (*registry, error) {
	initErr := func(msg string, err error) error {
		return &Error{Kind: KindUnsupportedOption, Op: "init", Message: msg + ": " + err.Error(), Err: err}
	}

	resolver, err := assets.NewAssetResolver(cfg.assetDir)
	if err != nil {
		return nil, initErr("asset directory", err)
	}
	if resolver.HasCustomLoader() {
		cfg.logger.Debug("using custom assets", logfields.Path(cfg.assetDir))
	}
	css, err := resolver.LoadStyle(cfg.style)
	if err != nil {
		return nil, initErr("style "+quote(cfg.style), err)
	}
	envelope, err := assets.LoadEnvelope(resolver)
	if err != nil {
		return nil, initErr("envelope template", err)
	}
	htmlWriter, err := htmlfmt.NewWriter(envelope, cfg.highlightStyle)
	if err != nil {
		return nil, initErr("highlight style", err)
	}

	return &registry{
		readers: map[Format]pipeline.Reader{
			FormatMarkdown: markdown.NewReader(),
			FormatHTML:     htmlfmt.NewReader(),
		},
		writers: map[Format]pipeline.Writer{
			FormatMarkdown: markdown.NewWriter(),
			FormatHTML:     htmlWriter,
			FormatPlain:    plain.NewWriter(),
		},
		css: css,
	}, nil
}

// Teardown releases the registry. Later conversions fail with a lifecycle
// error. Calling Teardown more than once is harmless; conversions already
// running finish normally.
func (e *Engine) Teardown() {
	if e != nil {
		e.reg.Store(nil)
	}
}

// Convert reads req.Source as req.From, applies the requested transforms and
// writes req.To to req.Sink. Output is pushed as it is rendered, so a failed
// conversion may leave partial output in the sink.
//
// Every failure is an *Error.
func (e *Engine) Convert(ctx context.Context, req Request) (err error) {
	op := "convert " + req.From.String() + "->" + req.To.String()

	var reg *registry
	if e != nil {
		reg = e.reg.Load()
	}
	if reg == nil {
		return &Error{Kind: KindLifecycle, Op: op, Message: "engine is not initialized or has been torn down"}
	}

	reader, writer, err := reg.lookup(op, req.From, req.To)
	if err != nil {
		return err
	}
	if err := validate(op, req, reader, writer); err != nil {
		return err
	}
	if req.Source == nil || req.Sink == nil {
		return &Error{Kind: KindIO, Op: op, Message: "source and sink are required"}
	}

	in := stream.NewReader(ctx, req.Source, e.cfg.maxInputSize)
	out := stream.NewWriter(req.Sink)
	start := time.Now()
	defer func() {
		e.cfg.recorder.IncConversion(req.From.String(), req.To.String(), outcomeOf(err))
		e.cfg.recorder.AddInputBytes(in.BytesRead())
		e.cfg.recorder.AddOutputBytes(out.BytesWritten())
		e.cfg.logger.LogAttrs(ctx, slog.LevelDebug, "conversion finished",
			logfields.From(req.From.String()),
			logfields.To(req.To.String()),
			logfields.Bytes(out.BytesWritten()),
			logfields.Duration(time.Since(start)),
			logfields.Error(err),
		)
	}()

	var doc *document.Document
	err = e.stage(ctx, stageParse, func() error {
		var err error
		doc, err = reader.Read(ctx, in, req.Extensions.readOptions())
		return err
	})
	if err != nil {
		return classify(op, err, KindParse)
	}

	err = e.stage(ctx, stageTransform, func() error {
		return pipeline.ApplyTransforms(ctx, doc, pipeline.TransformOptions{
			TOC:      req.Options.Has(OptGenerateTOC),
			TOCDepth: e.cfg.tocDepth,
		})
	})
	if err == nil {
		err = document.Validate(doc)
	}
	if err != nil {
		return classify(op, err, KindRender)
	}

	caps := writer.Capabilities()
	wopts := pipeline.WriteOptions{
		Standalone: req.Options.Has(OptStandalone) && caps.Has(pipeline.CapEnvelope),
		Highlight:  req.Options.Has(OptHighlightCode),
		CSS:        reg.css,
	}
	err = e.stage(ctx, stageRender, func() error {
		buf := bufio.NewWriterSize(out, e.cfg.chunkSize)
		if err := writer.Write(ctx, doc, buf, wopts); err != nil {
			return err
		}
		return buf.Flush()
	})
	if err != nil {
		return classify(op, err, KindRender)
	}
	return nil
}

// stage runs fn and records its duration.
func (e *Engine) stage(ctx context.Context, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := fn()
	d := time.Since(start)
	e.cfg.recorder.ObserveStageDuration(name, d)
	e.cfg.logger.LogAttrs(ctx, slog.LevelDebug, "stage finished",
		logfields.Stage(name),
		logfields.Duration(d),
		logfields.Error(err),
	)
	return err
}

func (r *registry) lookup(op string, from, to Format) (pipeline.Reader, pipeline.Writer, error) {
	reader, ok := r.readers[from]
	if !ok {
		return nil, nil, &Error{Kind: KindUnsupportedFormat, Op: op, Message: "no reader for format " + from.String()}
	}
	writer, ok := r.writers[to]
	if !ok {
		return nil, nil, &Error{Kind: KindUnsupportedFormat, Op: op, Message: "no writer for format " + to.String()}
	}
	return reader, writer, nil
}

// validate checks the requested options and extensions against what the
// reader and writer support. It runs before the source is touched.
func validate(op string, req Request, reader pipeline.Reader, writer pipeline.Writer) error {
	unsupported := func(msg string) error {
		return &Error{Kind: KindUnsupportedOption, Op: op, Message: msg}
	}

	if err := req.Options.Validate(); err != nil {
		return err
	}
	if err := req.Extensions.Validate(); err != nil {
		return err
	}
	if req.Options.Has(OptHighlightCode) && !writer.Capabilities().Has(pipeline.CapHighlight) {
		return unsupported("highlight is not supported for " + req.To.String() + " output")
	}

	supported := reader.Extensions()
	var missing []string
	for _, fn := range extensionNames {
		if req.Extensions.Has(fn.flag) && !fn.flag.readOptions().Covers(supported) {
			missing = append(missing, fn.name)
		}
	}
	if len(missing) > 0 {
		return unsupported("extension " + strings.Join(missing, ",") + " is not supported for " + req.From.String() + " input")
	}
	return nil
}

func outcomeOf(err error) metrics.Outcome {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeFailed
	}
}

// ConvertString converts an in-memory document.
func (e *Engine) ConvertString(ctx context.Context, from, to Format, opts Options, ext Extensions, input string) (string, error) {
	var out strings.Builder
	err := e.Convert(ctx, Request{
		From:       from,
		To:         to,
		Options:    opts,
		Extensions: ext,
		Source:     BytesSource([]byte(input)),
		Sink:       WriterSink(&out),
	})
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// FormatInfo describes what the engine can do with one format.
type FormatInfo struct {
	Format     Format
	Readable   bool
	Writable   bool
	Extensions Extensions // reader extensions
	Standalone bool       // writer has an envelope
	Highlight  bool       // writer highlights code
}

// Describe lists every known format with its reader and writer support. It
// returns nil for a nil or torn down Engine.
func (e *Engine) Describe() []FormatInfo {
	if e == nil {
		return nil
	}
	reg := e.reg.Load()
	if reg == nil {
		return nil
	}
	var out []FormatInfo
	for _, f := range Formats() {
		info := FormatInfo{Format: f}
		if r, ok := reg.readers[f]; ok {
			info.Readable = true
			for _, fn := range extensionNames {
				if fn.flag.readOptions().Covers(r.Extensions()) {
					info.Extensions |= fn.flag
				}
			}
		}
		if w, ok := reg.writers[f]; ok {
			info.Writable = true
			info.Standalone = w.Capabilities().Has(pipeline.CapEnvelope)
			info.Highlight = w.Capabilities().Has(pipeline.CapHighlight)
		}
		out = append(out, info)
	}
	return out
}
