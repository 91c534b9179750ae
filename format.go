package docconv

import (
	"path/filepath"
	"strings"
)

// Format identifies a markup syntax.
type Format uint8

// Supported formats. FormatUnknown is never registered.
const (
	FormatUnknown Format = iota
	FormatMarkdown
	FormatHTML
	FormatPlain
)

var formatNames = [...]string{
	FormatUnknown:  "unknown",
	FormatMarkdown: "markdown",
	FormatHTML:     "html",
	FormatPlain:    "plain",
}

// formatAliases maps accepted names to formats.
var formatAliases = map[string]Format{
	"markdown": FormatMarkdown,
	"md":       FormatMarkdown,
	"html":     FormatHTML,
	"htm":      FormatHTML,
	"plain":    FormatPlain,
	"text":     FormatPlain,
	"txt":      FormatPlain,
}

// formatExtensions maps file extensions to formats, and formats to the
// extension used for output files.
var (
	formatExtensions = map[string]Format{
		".md":       FormatMarkdown,
		".markdown": FormatMarkdown,
		".mdown":    FormatMarkdown,
		".html":     FormatHTML,
		".htm":      FormatHTML,
		".txt":      FormatPlain,
		".text":     FormatPlain,
	}
	outputExtensions = map[Format]string{
		FormatMarkdown: ".md",
		FormatHTML:     ".html",
		FormatPlain:    ".txt",
	}
)

// String returns the canonical format name.
func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// Extension returns the file extension for output in f, or "" for
// FormatUnknown.
func (f Format) Extension() string {
	return outputExtensions[f]
}

// ParseFormat resolves a format name or alias, ignoring case.
// Unknown names return an UnsupportedFormat error.
func ParseFormat(name string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return f, nil
	}
	return FormatUnknown, &Error{
		Kind:    KindUnsupportedFormat,
		Op:      "parse format",
		Message: "unknown format " + quote(name),
	}
}

// FormatForPath infers a format from a file extension. It returns
// FormatUnknown when the extension is not recognized.
func FormatForPath(path string) Format {
	return formatExtensions[strings.ToLower(filepath.Ext(path))]
}

// Formats lists every known format except FormatUnknown.
func Formats() []Format {
	return []Format{FormatMarkdown, FormatHTML, FormatPlain}
}
