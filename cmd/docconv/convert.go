package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/alnah/go-docconv"
	"github.com/alnah/go-docconv/internal/assets"
	"github.com/alnah/go-docconv/internal/config"
	"github.com/alnah/go-docconv/internal/fileutil"
	"github.com/alnah/go-docconv/internal/hints"
	"github.com/alnah/go-docconv/internal/logfields"
	"github.com/alnah/go-docconv/internal/stream"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// Defaults applied when neither flags, environment nor config choose.
const (
	defaultFrom = docconv.FormatMarkdown
	defaultTo   = docconv.FormatHTML
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.workers, config.MaxWorkers); err != nil {
		return err
	}

	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, from, err := buildParams(cfg)
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Log, flags.common, env.Stderr)

	var registry *prometheus.Registry
	var recorder docconv.Recorder
	if flags.metricsFile != "" {
		registry = prometheus.NewRegistry()
		recorder = docconv.NewPrometheusRecorder(registry)
	}

	eng, err := docconv.New(engineOptions(cfg, logger, recorder)...)
	if err != nil {
		return err
	}
	defer eng.Teardown()

	fromStdin := len(positionalArgs) == 0 || (len(positionalArgs) == 1 && positionalArgs[0] == "-")
	output := outputTarget(flags, cfg)
	if fromStdin {
		output = flags.output
	}
	if cfg.To == "" {
		if to, ok := outputFormat(output, eng.Describe()); ok {
			params.to = to
		}
	}

	if fromStdin {
		if from == docconv.FormatUnknown {
			from = defaultFrom
		}
		err = convertStream(ctx, eng, from, output, params, env)
	} else {
		err = convertFiles(ctx, eng, positionalArgs, from, output, params, flags.common, logger, env)
	}

	if registry != nil {
		if werr := prometheus.WriteToTextfile(flags.metricsFile, registry); werr != nil && err == nil {
			err = fmt.Errorf("%w: metrics: %w", ErrWriteOutput, werr)
		}
	}
	return err
}

// convertStream converts stdin to stdout, or to a file when output is set.
func convertStream(ctx context.Context, conv Converter, from docconv.Format, output string, params *conversionParams, env *Environment) error {
	req := docconv.Request{
		From:       from,
		To:         params.to,
		Options:    params.options,
		Extensions: params.extensions,
		Source:     docconv.ReaderSource(env.Stdin),
	}

	if output == "" || output == "-" {
		req.Sink = docconv.WriterSink(env.Stdout)
		return conv.Convert(ctx, req)
	}

	if err := os.MkdirAll(filepath.Dir(output), dirPermissions); err != nil {
		return fmt.Errorf("%w: creating output directory: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	out, err := fileutil.CreateAtomic(output, filePermissions)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	req.Sink = docconv.WriterSink(out)
	if err := conv.Convert(ctx, req); err != nil {
		out.Abort()
		return err
	}
	if err := out.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// convertFiles discovers input files and converts them in parallel.
func convertFiles(ctx context.Context, eng *docconv.Engine, inputs []string, from docconv.Format, output string, params *conversionParams, common commonFlags, logger *slog.Logger, env *Environment) error {
	readable := make(map[docconv.Format]bool)
	for _, info := range eng.Describe() {
		readable[info.Format] = info.Readable
	}

	files, err := discoverFiles(inputs, output, from, params.to, func(f docconv.Format) bool { return readable[f] })
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no convertible files found in %s", ErrNoInput, strings.Join(inputs, ", "))
	}

	logger.Debug("starting batch",
		logfields.Workers(params.workers),
		logfields.To(params.to.String()),
		logfields.Options(params.options.String()),
		slog.Int("files", len(files)),
	)

	results := convertBatch(ctx, eng, files, params)
	for _, r := range results {
		if r.Err == nil {
			logger.Debug("file converted", logfields.Path(r.InputPath), logfields.Output(r.OutputPath), logfields.Duration(r.Duration))
		}
	}
	return printResults(results, common.quiet, common.verbose, env.Stdout, env.Stderr)
}

// loadConfig loads the named config, or the defaults when none is named,
// then applies environment overrides.
func loadConfig(name string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			hint := ""
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				hint = hints.ForConfigNotFound(config.SearchPaths(name))
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hint)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values;
// option flags add to the configured options.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.format.from != "" {
		cfg.From = flags.format.from
	}
	if flags.format.to != "" {
		cfg.To = flags.format.to
	}
	if flags.format.extensions != "" {
		cfg.Extensions = strings.Split(flags.format.extensions, ",")
	}

	if flags.options.toc {
		cfg.Options = append(cfg.Options, "toc")
	}
	if flags.options.standalone {
		cfg.Options = append(cfg.Options, "standalone")
	}
	if flags.options.highlight {
		cfg.Options = append(cfg.Options, "highlight")
	}
	if flags.options.tocDepth != 0 {
		cfg.TOCDepth = flags.options.tocDepth
	}

	if flags.assets.style != "" {
		cfg.Style = flags.assets.style
	}
	if flags.assets.assetsDir != "" {
		cfg.AssetsDir = flags.assets.assetsDir
	}
	if flags.assets.highlightStyle != "" {
		cfg.HighlightStyle = flags.assets.highlightStyle
	}

	if flags.workers != 0 {
		cfg.Workers = flags.workers
	}
	if flags.common.logFormat != "" {
		cfg.Log.Format = flags.common.logFormat
	}
}

// buildParams resolves the validated config into conversion parameters.
// The returned source format is FormatUnknown when it should be inferred.
func buildParams(cfg *config.Config) (*conversionParams, docconv.Format, error) {
	from := docconv.FormatUnknown
	if cfg.From != "" {
		f, err := docconv.ParseFormat(cfg.From)
		if err != nil {
			return nil, 0, err
		}
		from = f
	}

	to := defaultTo
	if cfg.To != "" {
		f, err := docconv.ParseFormat(cfg.To)
		if err != nil {
			return nil, 0, err
		}
		to = f
	}

	opts, err := docconv.ParseOptions(strings.Join(cfg.Options, ","))
	if err != nil {
		return nil, 0, err
	}
	ext, err := docconv.ParseExtensions(strings.Join(cfg.Extensions, ","))
	if err != nil {
		return nil, 0, err
	}

	return &conversionParams{
		to:         to,
		options:    opts,
		extensions: ext,
		workers:    resolvePoolSize(cfg.Workers),
	}, from, nil
}

// outputTarget returns the output file or directory for file inputs.
func outputTarget(flags *convertFlags, cfg *config.Config) string {
	if flags.output != "" {
		return flags.output
	}
	return cfg.Output.DefaultDir
}

// outputFormat returns the writable format named by the extension of an
// output file. Directories and stdout name none.
func outputFormat(output string, infos []docconv.FormatInfo) (docconv.Format, bool) {
	if output == "" || output == "-" {
		return docconv.FormatUnknown, false
	}
	if fi, err := os.Stat(output); err == nil && fi.IsDir() {
		return docconv.FormatUnknown, false
	}
	f := docconv.FormatForPath(output)
	for _, info := range infos {
		if info.Format == f && info.Writable {
			return f, true
		}
	}
	return docconv.FormatUnknown, false
}

// engineOptions maps config values onto engine options. Zero values keep the
// engine defaults.
func engineOptions(cfg *config.Config, logger *slog.Logger, recorder docconv.Recorder) []docconv.Option {
	opts := []docconv.Option{docconv.WithLogger(logger)}
	if recorder != nil {
		opts = append(opts, docconv.WithRecorder(recorder))
	}
	if cfg.ChunkSize > 0 {
		opts = append(opts, docconv.WithChunkSize(cfg.ChunkSize))
	}
	if cfg.MaxInputSize != 0 {
		opts = append(opts, docconv.WithMaxInputSize(cfg.MaxInputSize))
	}
	if cfg.TOCDepth > 0 {
		opts = append(opts, docconv.WithTOCDepth(cfg.TOCDepth))
	}
	if cfg.Style != "" {
		opts = append(opts, docconv.WithStyle(cfg.Style))
	}
	if cfg.AssetsDir != "" {
		opts = append(opts, docconv.WithAssetDir(cfg.AssetsDir))
	}
	if cfg.HighlightStyle != "" {
		opts = append(opts, docconv.WithHighlightStyle(cfg.HighlightStyle))
	}
	return opts
}

// newLogger builds the CLI logger. -v forces debug, -q forces error.
func newLogger(cfg config.LogConfig, common commonFlags, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	switch {
	case common.verbose:
		level = slog.LevelDebug
	case common.quiet:
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// styleNames lists the embedded styles for hints.
var styleNames = sync.OnceValue(func() []string {
	return assets.NewEmbeddedLoader().Styles()
})

// formatNames lists readable and writable formats for hints.
var formatNames = sync.OnceValues(func() ([]string, []string) {
	eng, err := docconv.New()
	if err != nil {
		return nil, nil
	}
	defer eng.Teardown()

	var readable, writable []string
	for _, info := range eng.Describe() {
		if info.Readable {
			readable = append(readable, info.Format.String())
		}
		if info.Writable {
			writable = append(writable, info.Format.String())
		}
	}
	return readable, writable
})

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return hints.ForStyleNotFound(styleNames())
	case errors.Is(err, stream.ErrInputTooLarge):
		return hints.ForInputTooLarge()
	case errors.Is(err, ErrUnknownInputFormat):
		return hints.ForUnknownFormat()
	}

	switch docconv.KindOf(err) {
	case docconv.KindUnsupportedFormat:
		return hints.ForUnsupportedFormat(formatNames())
	case docconv.KindUnsupportedOption:
		return hints.ForUnsupportedOption()
	case docconv.KindParse:
		return hints.ForParse()
	}
	return ""
}
