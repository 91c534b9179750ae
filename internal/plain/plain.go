// Package plain renders documents as unformatted text.
//
// Headings are underlined, list items get a bullet or number, code blocks are
// indented and quotes are prefixed with "> ". Link targets follow their text
// in angle brackets when they differ from it.
package plain

import (
	"context"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Writer renders plain text. It has no optional capabilities.
type Writer struct{}

// NewWriter returns a plain text writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Capabilities implements pipeline.Writer.
func (w *Writer) Capabilities() pipeline.Capabilities {
	return 0
}

// Write implements pipeline.Writer. The document title, when set, is written
// first as a top-level heading.
func (w *Writer) Write(ctx context.Context, doc *document.Document, out io.Writer, _ pipeline.WriteOptions) error {
	r := &renderer{ctx: ctx, out: out}
	if doc.Meta.Title != "" {
		r.underlined(doc.Meta.Title, '=', "")
		if len(doc.Blocks) > 0 {
			r.raw("\n")
		}
	}
	r.blocks(doc.Blocks, "", "")
	return r.err
}

// Compile-time interface check.
var _ pipeline.Writer = (*Writer)(nil)

type renderer struct {
	ctx context.Context
	out io.Writer
	err error
}

func (r *renderer) raw(s string) {
	if r.err != nil || s == "" {
		return
	}
	_, r.err = io.WriteString(r.out, s)
}

// lines writes s with first before the first line and rest before the others.
func (r *renderer) lines(s, first, rest string) {
	for i, line := range strings.Split(s, "\n") {
		prefix := rest
		if i == 0 {
			prefix = first
		}
		if line == "" {
			prefix = strings.TrimRight(prefix, " ")
		}
		r.raw(prefix + line + "\n")
	}
}

func (r *renderer) underlined(s string, mark byte, prefix string) {
	r.lines(s, prefix, prefix)
	width := 0
	for _, line := range strings.Split(s, "\n") {
		width = max(width, utf8.RuneCountInString(line))
	}
	r.raw(prefix + strings.Repeat(string(mark), max(width, 3)) + "\n")
}

// blocks separates blocks with a blank line.
func (r *renderer) blocks(blocks []document.Block, first, rest string) {
	for i, b := range blocks {
		if r.err != nil {
			return
		}
		if err := r.ctx.Err(); err != nil {
			r.err = err
			return
		}
		prefix := first
		if i > 0 {
			prefix = rest
			r.raw(strings.TrimRight(rest, " ") + "\n")
		}
		r.block(b, prefix, rest)
	}
}

func (r *renderer) block(b document.Block, first, rest string) {
	switch v := b.(type) {
	case *document.Heading:
		mark := byte('-')
		if v.Level == 1 {
			mark = '='
		}
		r.underlined(text(v.Content), mark, first)
	case *document.Paragraph:
		r.lines(text(v.Content), first, rest)
	case *document.List:
		for i, item := range v.Items {
			marker := "- "
			if v.Ordered {
				marker = strconv.Itoa(i+1) + ". "
			}
			indent := strings.Repeat(" ", len(marker))
			if i == 0 {
				r.items(item, first+marker, rest+indent)
			} else {
				r.items(item, rest+marker, rest+indent)
			}
		}
	case *document.CodeBlock:
		r.lines(v.Text, first+"    ", rest+"    ")
	case *document.Quote:
		r.blocks(v.Body.Blocks, first+"> ", rest+"> ")
	case *document.ThematicBreak:
		r.raw(first + "----------\n")
	default:
		r.err = &pipeline.RenderError{Node: b.Kind(), Message: "unsupported block"}
	}
}

// items writes one list item. An empty item still gets its marker.
func (r *renderer) items(item document.Document, first, rest string) {
	if len(item.Blocks) == 0 {
		r.raw(strings.TrimRight(first, " ") + "\n")
		return
	}
	r.blocks(item.Blocks, first, rest)
}

// text flattens inline content. Line breaks become newlines.
func text(content []document.Inline) string {
	var sb strings.Builder
	writeText(&sb, content)
	return sb.String()
}

func writeText(sb *strings.Builder, content []document.Inline) {
	for _, in := range content {
		switch v := in.(type) {
		case *document.Text:
			sb.WriteString(v.Value)
		case *document.Code:
			sb.WriteString(v.Value)
		case *document.Emphasis:
			writeText(sb, v.Content)
		case *document.Strong:
			writeText(sb, v.Content)
		case *document.Link:
			label := text(v.Content)
			sb.WriteString(label)
			if v.Href != "" && v.Href != label && "mailto:"+label != v.Href {
				sb.WriteString(" <" + v.Href + ">")
			}
		case *document.LineBreak:
			sb.WriteByte('\n')
		}
	}
}
