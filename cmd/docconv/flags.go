package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// formatFlags holds source/target selection flags.
type formatFlags struct {
	from       string
	to         string
	extensions string
}

// optionFlags holds conversion option flags. Set flags are added to the
// options from the config file.
type optionFlags struct {
	toc        bool
	standalone bool
	highlight  bool
	tocDepth   int
}

// assetFlags holds envelope styling flags.
type assetFlags struct {
	style          string // Name of an embedded or custom style
	assetsDir      string // Override asset directory
	highlightStyle string // chroma style name
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common      commonFlags
	format      formatFlags
	options     optionFlags
	assets      assetFlags
	output      string
	workers     int
	metricsFile string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addFormatFlags adds format selection flags to a FlagSet.
func addFormatFlags(fs *flag.FlagSet, f *formatFlags) {
	fs.StringVarP(&f.from, "from", "f", "", "source format: markdown, html (default: from extension)")
	fs.StringVarP(&f.to, "to", "t", "", "target format: html, markdown, plain (default: html)")
	fs.StringVarP(&f.extensions, "extensions", "e", "", "reader extensions: autolink,typographer,hardbreaks")
}

// addOptionFlags adds conversion option flags to a FlagSet.
func addOptionFlags(fs *flag.FlagSet, f *optionFlags) {
	fs.BoolVar(&f.toc, "toc", false, "prepend a table of contents")
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "write a complete document (html envelope)")
	fs.BoolVar(&f.highlight, "highlight", false, "syntax-highlight code blocks (html only)")
	fs.IntVar(&f.tocDepth, "toc-depth", 0, "deepest heading level in the TOC (1-6, default: 6)")
}

// addAssetFlags adds asset-related flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "envelope CSS style name")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "custom asset directory (styles/, templates/)")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "chroma style for --highlight")
}

// newConvertFlagSet registers every convert flag into a new FlagSet.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (default: stdout for stdin input)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.metricsFile, "metrics-file", "", "write conversion metrics to this file")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addFormatFlags(fs, &f.format)
	addOptionFlags(fs, &f.options)
	addAssetFlags(fs, &f.assets)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(stderr)
	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
