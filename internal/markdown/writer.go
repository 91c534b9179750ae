package markdown

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Writer renders CommonMark that Reader parses back into an equal document.
// Metadata is written as YAML front matter.
type Writer struct{}

// NewWriter returns a Markdown writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Capabilities implements pipeline.Writer. Markdown has no envelope and no
// highlighting; metadata travels as front matter regardless of options.
func (w *Writer) Capabilities() pipeline.Capabilities {
	return 0
}

// Write implements pipeline.Writer.
func (w *Writer) Write(ctx context.Context, doc *document.Document, out io.Writer, _ pipeline.WriteOptions) error {
	r := &renderer{ctx: ctx, out: out}
	if !doc.Meta.IsZero() {
		fm, err := encodeFrontMatter(doc.Meta)
		if err != nil {
			return &pipeline.RenderError{Node: "Meta", Message: err.Error()}
		}
		r.raw(string(fm))
	}
	r.blocks(doc.Blocks, "", "", false)
	return r.err
}

// Compile-time interface check.
var _ pipeline.Writer = (*Writer)(nil)

// renderer streams blocks to out. The first error sticks; later writes are
// dropped.
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

func (r *renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// blocks writes a sequence of blocks. first prefixes the first line, rest
// every following line. Tight sequences have no blank line between blocks.
func (r *renderer) blocks(blocks []document.Block, first, rest string, tight bool) {
	alternate := false
	for i, b := range blocks {
		if r.err != nil {
			return
		}
		if err := r.ctx.Err(); err != nil {
			r.fail(err)
			return
		}

		prefix := first
		if i > 0 {
			prefix = rest
			if !tight {
				r.raw(strings.TrimRight(rest, " ") + "\n")
			}
		}

		// Two adjacent lists of the same kind need different markers or
		// they merge into one list.
		if l, ok := b.(*document.List); ok && i > 0 {
			if prev, ok := blocks[i-1].(*document.List); ok && prev.Ordered == l.Ordered {
				alternate = !alternate
			} else {
				alternate = false
			}
		}
		r.block(b, prefix, rest, alternate)
	}
}

func (r *renderer) block(b document.Block, first, rest string, alternate bool) {
	switch n := b.(type) {
	case *document.Heading:
		r.heading(n, first)
	case *document.Paragraph:
		r.raw(first)
		r.inlines(n.Content, inParagraph, rest)
		r.raw("\n")
	case *document.List:
		r.list(n, first, rest, alternate)
	case *document.CodeBlock:
		r.codeBlock(n, first, rest)
	case *document.Quote:
		if len(n.Body.Blocks) == 0 {
			r.raw(first + ">\n")
			return
		}
		r.blocks(n.Body.Blocks, first+"> ", rest+"> ", false)
	case *document.ThematicBreak:
		r.raw(first + "___\n")
	default:
		r.fail(&pipeline.RenderError{Node: b.Kind(), Message: "unsupported block"})
	}
}

func (r *renderer) heading(h *document.Heading, prefix string) {
	r.raw(prefix + strings.Repeat("#", h.Level))
	if len(h.Content) > 0 {
		r.raw(" ")
		r.inlines(h.Content, inHeading, "")
	}
	if h.ID != "" {
		switch {
		case simpleID(h.ID):
			r.raw(" {#" + h.ID + "}")
		case !strings.ContainsAny(h.ID, "\"\\\n"):
			r.raw(` {id="` + h.ID + `"}`)
		default:
			r.fail(&pipeline.RenderError{Node: document.KindHeading, Message: fmt.Sprintf("id %q cannot be expressed", h.ID)})
		}
	}
	r.raw("\n")
}

func (r *renderer) list(l *document.List, first, rest string, alternate bool) {
	tight := isTight(l)
	bullet, delim := "- ", "."
	if alternate {
		bullet, delim = "* ", ")"
	}

	for i := range l.Items {
		if r.err != nil {
			return
		}
		marker := bullet
		if l.Ordered {
			marker = strconv.Itoa(i+1) + delim + " "
		}
		prefix := rest
		if i == 0 {
			prefix = first
		} else if !tight {
			r.raw(strings.TrimRight(rest, " ") + "\n")
		}

		item := l.Items[i].Blocks
		if len(item) == 0 {
			r.raw(strings.TrimRight(prefix+marker, " ") + "\n")
			continue
		}
		r.blocks(item, prefix+marker, rest+strings.Repeat(" ", len(marker)), tight)
	}
}

// isTight reports whether a list can be written without blank lines: every
// item holds at most a paragraph followed by a nested list.
func isTight(l *document.List) bool {
	for _, item := range l.Items {
		switch len(item.Blocks) {
		case 0:
		case 1:
			switch n := item.Blocks[0].(type) {
			case *document.Paragraph:
			case *document.List:
				if !startsWithContent(n) {
					return false
				}
			default:
				return false
			}
		case 2:
			if _, ok := item.Blocks[0].(*document.Paragraph); !ok {
				return false
			}
			nested, ok := item.Blocks[1].(*document.List)
			if !ok || !startsWithContent(nested) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// startsWithContent reports whether a nested list can interrupt a paragraph.
func startsWithContent(l *document.List) bool {
	return len(l.Items) > 0 && len(l.Items[0].Blocks) > 0
}

func (r *renderer) codeBlock(c *document.CodeBlock, first, rest string) {
	if strings.ContainsAny(c.Language, " \t\n") {
		r.fail(&pipeline.RenderError{Node: document.KindCodeBlock, Message: fmt.Sprintf("language %q contains whitespace", c.Language)})
		return
	}
	char := byte('`')
	if strings.Contains(c.Language, "`") {
		char = '~'
	}
	fence := strings.Repeat(string(char), max(3, longestRun(c.Text, char)+1))

	r.raw(first + fence + escapeInfo(c.Language) + "\n")
	for _, line := range strings.Split(c.Text, "\n") {
		if line == "" {
			r.raw(strings.TrimRight(rest, " ") + "\n")
			continue
		}
		r.raw(rest + line + "\n")
	}
	r.raw(rest + fence + "\n")
}

// inlines writes inline content. rest prefixes lines opened by hard breaks.
func (r *renderer) inlines(content []document.Inline, mode textMode, rest string) {
	w := inlineWriter{r: r, mode: mode, rest: rest, lineStart: true}
	w.write(trimTrailingBreaks(content))
}

func trimTrailingBreaks(content []document.Inline) []document.Inline {
	for len(content) > 0 {
		if _, ok := content[len(content)-1].(*document.LineBreak); !ok {
			break
		}
		content = content[:len(content)-1]
	}
	return content
}

type inlineWriter struct {
	r         *renderer
	mode      textMode
	rest      string
	lineStart bool
}

func (w *inlineWriter) emit(s string) {
	if s == "" {
		return
	}
	w.r.raw(s)
	w.lineStart = false
}

func (w *inlineWriter) write(content []document.Inline) {
	for _, in := range content {
		switch n := in.(type) {
		case *document.Text:
			w.emit(escapeText(n.Value, w.mode, w.lineStart))
		case *document.Emphasis:
			w.delimited(n.Content, "*")
		case *document.Strong:
			w.strong(n)
		case *document.Code:
			w.code(n.Value)
		case *document.Link:
			w.link(n)
		case *document.LineBreak:
			if w.mode == inHeading {
				w.r.fail(&pipeline.RenderError{Node: document.KindLineBreak, Message: "line break inside heading"})
				return
			}
			w.r.raw("\\\n" + w.rest)
			w.lineStart = true
		default:
			w.r.fail(&pipeline.RenderError{Node: in.Kind(), Message: "unsupported inline"})
		}
	}
}

func (w *inlineWriter) delimited(content []document.Inline, delim string) {
	if len(content) == 0 {
		return
	}
	w.emit(delim)
	w.write(content)
	w.emit(delim)
}

// strong writes **...**. Emphasis touching either edge uses underscores so
// ***x*** keeps meaning emphasis around strong.
func (w *inlineWriter) strong(s *document.Strong) {
	if len(s.Content) == 0 {
		return
	}
	w.emit("**")
	for i, in := range s.Content {
		em, ok := in.(*document.Emphasis)
		if ok && (i == 0 || i == len(s.Content)-1) {
			w.delimited(em.Content, "_")
			continue
		}
		w.write([]document.Inline{in})
	}
	w.emit("**")
}

func (w *inlineWriter) code(value string) {
	value = strings.ReplaceAll(value, "\n", " ")
	if value == "" {
		w.r.fail(&pipeline.RenderError{Node: document.KindCode, Message: "empty code span"})
		return
	}
	ticks := strings.Repeat("`", longestRun(value, '`')+1)
	pad := ""
	if value[0] == '`' || value[len(value)-1] == '`' ||
		(value[0] == ' ' && value[len(value)-1] == ' ' && strings.Trim(value, " ") != "") {
		pad = " "
	}
	w.emit(ticks + pad + value + pad + ticks)
}

func (w *inlineWriter) link(l *document.Link) {
	if form, ok := autolinkForm(l); ok && l.Title == "" {
		w.emit(form)
		return
	}
	w.emit("[")
	w.write(l.Content)
	dest := "](" + escapeDestination(l.Href)
	if l.Title != "" {
		dest += " " + escapeTitle(l.Title)
	}
	w.emit(dest + ")")
}

// autolinkForm returns <url> when the link text is the address itself.
func autolinkForm(l *document.Link) (string, bool) {
	if len(l.Content) != 1 {
		return "", false
	}
	t, ok := l.Content[0].(*document.Text)
	if !ok {
		return "", false
	}
	if t.Value == l.Href && absoluteURI.MatchString(l.Href) {
		return "<" + l.Href + ">", true
	}
	if "mailto:"+t.Value == l.Href && emailAddress.MatchString(t.Value) {
		return "<" + t.Value + ">", true
	}
	return "", false
}
