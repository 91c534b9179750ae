package htmlfmt

import (
	"context"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-docconv/internal/anchor"
	"github.com/alnah/go-docconv/internal/assets"
	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Writer renders HTML that Reader parses back into an equal document.
// A Writer is safe for concurrent use.
type Writer struct {
	envelope *assets.Envelope
	code     *highlighter
}

// NewWriter creates a Writer. A nil envelope disables standalone output.
// highlightStyle names a chroma style; unknown names use chroma's fallback.
func NewWriter(envelope *assets.Envelope, highlightStyle string) (*Writer, error) {
	code, err := newHighlighter(highlightStyle)
	if err != nil {
		return nil, err
	}
	return &Writer{envelope: envelope, code: code}, nil
}

// Capabilities implements pipeline.Writer.
func (w *Writer) Capabilities() pipeline.Capabilities {
	if w.envelope == nil {
		return pipeline.CapHighlight
	}
	return pipeline.CapEnvelope | pipeline.CapHighlight
}

// Write implements pipeline.Writer.
func (w *Writer) Write(ctx context.Context, doc *document.Document, out io.Writer, opts pipeline.WriteOptions) error {
	r := &renderer{ctx: ctx, out: out, ids: headingIDs(doc)}
	if opts.Highlight {
		r.code = w.code
	}

	standalone := opts.Standalone && w.envelope != nil
	if standalone {
		css := []string{opts.CSS}
		if opts.Highlight {
			css = append(css, w.code.css)
		}
		data := assets.NewEnvelopeData(doc.Meta.Title, doc.Meta.Author, doc.Meta.Date, css...)
		r.template(w.envelope.Prelude(r, data))
	}

	r.blocks(doc.Blocks)

	if standalone {
		r.template(w.envelope.Postlude(r))
	}
	return r.err
}

// headingIDs maps every heading to its unique anchor.
func headingIDs(doc *document.Document) map[*document.Heading]string {
	headings := document.Headings(doc)
	ids := make(map[*document.Heading]string, len(headings))
	for i, id := range anchor.Resolve(headings) {
		ids[headings[i]] = id
	}
	return ids
}

// Compile-time interface check.
var _ pipeline.Writer = (*Writer)(nil)

// renderer streams elements to out. The first error sticks; later writes are
// dropped. It is also the io.Writer templates execute into, so write failures
// surface unchanged.
type renderer struct {
	ctx  context.Context
	out  io.Writer
	ids  map[*document.Heading]string
	code *highlighter
	err  error
}

func (r *renderer) Write(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	n, err := r.out.Write(p)
	r.err = err
	return n, err
}

func (r *renderer) raw(s string) {
	if r.err != nil || s == "" {
		return
	}
	_, r.err = io.WriteString(r.out, s)
}

func (r *renderer) text(s string) {
	r.raw(html.EscapeString(s))
}

func (r *renderer) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

// template records a template execution failure that is not a write error.
func (r *renderer) template(err error) {
	if err != nil && r.err == nil {
		r.err = &pipeline.RenderError{Node: "Document", Message: err.Error()}
	}
}

func (r *renderer) blocks(blocks []document.Block) {
	for _, b := range blocks {
		if r.err != nil {
			return
		}
		if err := r.ctx.Err(); err != nil {
			r.fail(err)
			return
		}
		r.block(b)
	}
}

func (r *renderer) block(b document.Block) {
	switch v := b.(type) {
	case *document.Heading:
		if v.Level < 1 || v.Level > 6 {
			r.fail(&pipeline.RenderError{Node: document.KindHeading, Message: "level " + strconv.Itoa(v.Level) + " out of range"})
			return
		}
		level := strconv.Itoa(v.Level)
		r.raw("<h" + level + ` id="`)
		r.text(r.ids[v])
		r.raw(`">`)
		r.inlines(v.Content)
		r.raw("</h" + level + ">\n")
	case *document.Paragraph:
		r.raw("<p>")
		r.inlines(v.Content)
		r.raw("</p>\n")
	case *document.List:
		tag := "ul"
		if v.Ordered {
			tag = "ol"
		}
		r.raw("<" + tag + ">\n")
		for _, item := range v.Items {
			r.item(item)
		}
		r.raw("</" + tag + ">\n")
	case *document.CodeBlock:
		r.codeBlock(v)
	case *document.Quote:
		r.raw("<blockquote>\n")
		r.blocks(v.Body.Blocks)
		r.raw("</blockquote>\n")
	case *document.ThematicBreak:
		r.raw("<hr>\n")
	default:
		r.fail(&pipeline.RenderError{Node: b.Kind(), Message: "unsupported block"})
	}
}

// item writes a list item. A leading paragraph is written bare so tight
// lists stay compact.
func (r *renderer) item(item document.Document) {
	r.raw("<li>")
	rest := item.Blocks
	if len(rest) > 0 {
		if p, ok := rest[0].(*document.Paragraph); ok {
			r.inlines(p.Content)
			rest = rest[1:]
		}
	}
	if len(rest) > 0 {
		r.raw("\n")
		r.blocks(rest)
	}
	r.raw("</li>\n")
}

func (r *renderer) codeBlock(c *document.CodeBlock) {
	if strings.ContainsFunc(c.Language, isSpace) {
		r.fail(&pipeline.RenderError{Node: document.KindCodeBlock, Message: "language contains whitespace"})
		return
	}

	highlight := r.code != nil && c.Text != ""
	if highlight {
		r.raw(`<pre class="` + highlightClass + `">`)
	} else {
		r.raw("<pre>")
	}
	if c.Language != "" {
		r.raw(`<code class="language-`)
		r.text(c.Language)
		r.raw(`">`)
	} else {
		r.raw("<code>")
	}

	text := c.Text + "\n"
	if highlight {
		if err := r.code.format(r, text, c.Language); err != nil {
			r.fail(&pipeline.RenderError{Node: document.KindCodeBlock, Message: err.Error()})
			return
		}
	} else {
		r.text(text)
	}
	r.raw("</code></pre>\n")
}

func (r *renderer) inlines(content []document.Inline) {
	for _, in := range content {
		if r.err != nil {
			return
		}
		switch v := in.(type) {
		case *document.Text:
			r.text(v.Value)
		case *document.Emphasis:
			r.raw("<em>")
			r.inlines(v.Content)
			r.raw("</em>")
		case *document.Strong:
			r.raw("<strong>")
			r.inlines(v.Content)
			r.raw("</strong>")
		case *document.Code:
			r.raw("<code>")
			r.text(v.Value)
			r.raw("</code>")
		case *document.Link:
			r.raw(`<a href="`)
			r.text(v.Href)
			r.raw(`"`)
			if v.Title != "" {
				r.raw(` title="`)
				r.text(v.Title)
				r.raw(`"`)
			}
			r.raw(">")
			r.inlines(v.Content)
			r.raw("</a>")
		case *document.LineBreak:
			r.raw("<br>\n")
		default:
			r.fail(&pipeline.RenderError{Node: in.Kind(), Message: "unsupported inline"})
		}
	}
}
