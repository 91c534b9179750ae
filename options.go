package docconv

import (
	"fmt"
	"strings"

	"github.com/alnah/go-docconv/internal/pipeline"
)

// Options is a set of conversion features. The order in which options are
// combined has no effect.
type Options uint32

// Conversion options.
const (
	// OptGenerateTOC prepends a table of contents linking every heading.
	OptGenerateTOC Options = 1 << iota
	// OptStandalone wraps the output in the target format's envelope.
	// It is a no-op for targets without one.
	OptStandalone
	// OptHighlightCode syntax-highlights code blocks. The target must
	// support highlighting.
	OptHighlightCode

	knownOptions = OptGenerateTOC | OptStandalone | OptHighlightCode
)

var optionNames = []flagName[Options]{
	{OptGenerateTOC, "toc"},
	{OptStandalone, "standalone"},
	{OptHighlightCode, "highlight"},
}

// Extensions is a set of reader syntax extensions.
type Extensions uint32

// Reader syntax extensions.
const (
	// ExtAutolink turns bare URLs and e-mail addresses into links.
	ExtAutolink Extensions = 1 << iota
	// ExtTypographer replaces straight quotes, dashes and ellipses with
	// typographic ones.
	ExtTypographer
	// ExtHardLineBreaks makes every newline inside a paragraph a line break.
	ExtHardLineBreaks

	knownExtensions = ExtAutolink | ExtTypographer | ExtHardLineBreaks
)

var extensionNames = []flagName[Extensions]{
	{ExtAutolink, "autolink"},
	{ExtTypographer, "typographer"},
	{ExtHardLineBreaks, "hardbreaks"},
}

// Has reports whether every option in flag is set.
func (o Options) Has(flag Options) bool { return o&flag == flag }

// Has reports whether every extension in flag is set.
func (e Extensions) Has(flag Extensions) bool { return e&flag == flag }

// Validate rejects bits that name no option.
func (o Options) Validate() error {
	if unknown := o &^ knownOptions; unknown != 0 {
		return &Error{
			Kind:    KindUnsupportedOption,
			Op:      "validate options",
			Message: fmt.Sprintf("unknown option bits %#x", uint32(unknown)),
		}
	}
	return nil
}

// Validate rejects bits that name no extension.
func (e Extensions) Validate() error {
	if unknown := e &^ knownExtensions; unknown != 0 {
		return &Error{
			Kind:    KindUnsupportedOption,
			Op:      "validate extensions",
			Message: fmt.Sprintf("unknown extension bits %#x", uint32(unknown)),
		}
	}
	return nil
}

func (o Options) String() string    { return flagString(o, optionNames) }
func (e Extensions) String() string { return flagString(e, extensionNames) }

// ParseOptions builds Options from a comma-separated list of names such as
// "toc,standalone". An empty string yields no options.
func ParseOptions(s string) (Options, error) {
	return parseFlags(s, optionNames, "option")
}

// ParseExtensions builds Extensions from a comma-separated list of names such
// as "autolink,typographer".
func ParseExtensions(s string) (Extensions, error) {
	return parseFlags(s, extensionNames, "extension")
}

// OptionNames lists the accepted option names.
func OptionNames() []string { return names(optionNames) }

// ExtensionNames lists the accepted extension names.
func ExtensionNames() []string { return names(extensionNames) }

func (e Extensions) readOptions() pipeline.ReadOptions {
	return pipeline.ReadOptions{
		Autolink:       e.Has(ExtAutolink),
		Typographer:    e.Has(ExtTypographer),
		HardLineBreaks: e.Has(ExtHardLineBreaks),
	}
}

type flagName[T ~uint32] struct {
	flag T
	name string
}

func flagString[T ~uint32](set T, table []flagName[T]) string {
	var parts []string
	for _, fn := range table {
		if set&fn.flag != 0 {
			parts = append(parts, fn.name)
		}
	}
	if rest := set &^ allFlags(table); rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, ",")
}

func parseFlags[T ~uint32](s string, table []flagName[T], kind string) (T, error) {
	var set T
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		found := false
		for _, fn := range table {
			if fn.name == part {
				set |= fn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, &Error{
				Kind:    KindUnsupportedOption,
				Op:      "parse " + kind + "s",
				Message: "unknown " + kind + " " + quote(part),
			}
		}
	}
	return set, nil
}

func allFlags[T ~uint32](table []flagName[T]) T {
	var all T
	for _, fn := range table {
		all |= fn.flag
	}
	return all
}

func names[T ~uint32](table []flagName[T]) []string {
	out := make([]string, len(table))
	for i, fn := range table {
		out[i] = fn.name
	}
	return out
}
