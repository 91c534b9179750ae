package markdown

import (
	"bytes"
	"html"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-docconv/internal/document"
)

// builder maps a goldmark AST onto the document model.
type builder struct {
	source    []byte
	hardWraps bool
}

func (b *builder) blocks(parent ast.Node) []document.Block {
	var out []document.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		if blk := b.block(n); blk != nil {
			out = append(out, blk)
		}
	}
	return out
}

func (b *builder) block(n ast.Node) document.Block {
	switch n := n.(type) {
	case *ast.Heading:
		h := &document.Heading{Level: n.Level, Content: b.inlines(n)}
		if v, ok := n.AttributeString("id"); ok {
			h.ID = attrString(v)
		}
		return h
	case *ast.Paragraph, *ast.TextBlock:
		content := b.inlines(n)
		if len(content) == 0 {
			return nil
		}
		return &document.Paragraph{Content: content}
	case *ast.List:
		list := &document.List{Ordered: n.IsOrdered()}
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			list.Items = append(list.Items, document.Document{Blocks: b.blocks(item)})
		}
		return list
	case *ast.FencedCodeBlock:
		cb := &document.CodeBlock{Text: b.lines(n.Lines())}
		if lang := n.Language(b.source); lang != nil {
			cb.Language = decode(lang)
		}
		return cb
	case *ast.CodeBlock:
		return &document.CodeBlock{Text: b.lines(n.Lines())}
	case *ast.Blockquote:
		return &document.Quote{Body: document.Document{Blocks: b.blocks(n)}}
	case *ast.ThematicBreak:
		return &document.ThematicBreak{}
	case *ast.HTMLBlock:
		raw := b.lines(n.Lines())
		if n.HasClosure() {
			raw += " " + string(n.ClosureLine.Value(b.source))
		}
		return degradedParagraph(raw)
	default:
		// Blocks contributed by extensions degrade to their text.
		if n.Type() == ast.TypeBlock && n.HasChildren() {
			return degradedParagraph(document.PlainText(b.inlines(n)))
		}
		return nil
	}
}

// degradedParagraph keeps raw markup as literal text.
func degradedParagraph(raw string) document.Block {
	value := strings.Join(strings.Fields(raw), " ")
	if value == "" {
		return nil
	}
	return &document.Paragraph{Content: []document.Inline{&document.Text{Value: value}}}
}

// lines joins block lines and drops the single trailing newline.
func (b *builder) lines(segs *text.Segments) string {
	var buf bytes.Buffer
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		for range seg.Padding {
			buf.WriteByte(' ')
		}
		buf.Write(seg.Value(b.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (b *builder) inlines(parent ast.Node) []document.Inline {
	var out []document.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, b.inline(n)...)
	}
	return tidy(out)
}

func (b *builder) inline(n ast.Node) []document.Inline {
	switch n := n.(type) {
	case *ast.Text:
		var value string
		if n.IsRaw() {
			value = string(n.Segment.Value(b.source))
		} else {
			value = decode(n.Segment.Value(b.source))
		}
		out := []document.Inline{&document.Text{Value: value}}
		switch {
		case n.HardLineBreak(), n.SoftLineBreak() && b.hardWraps:
			out = append(out, &document.LineBreak{})
		case n.SoftLineBreak():
			out = append(out, &document.Text{Value: " "})
		}
		return out
	case *ast.String:
		return []document.Inline{&document.Text{Value: html.UnescapeString(string(n.Value))}}
	case *ast.CodeSpan:
		return []document.Inline{&document.Code{Value: b.codeSpan(n)}}
	case *ast.Emphasis:
		if n.Level >= 2 {
			return []document.Inline{&document.Strong{Content: b.inlines(n)}}
		}
		return []document.Inline{&document.Emphasis{Content: b.inlines(n)}}
	case *ast.Link:
		return []document.Inline{&document.Link{
			Href:    decode(n.Destination),
			Title:   decode(n.Title),
			Content: flattenLinks(b.inlines(n)),
		}}
	case *ast.AutoLink:
		label := string(n.Label(b.source))
		href := string(n.URL(b.source))
		if n.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(href), "mailto:") {
			href = "mailto:" + href
		}
		return []document.Inline{&document.Link{Href: href, Content: []document.Inline{&document.Text{Value: label}}}}
	case *ast.Image:
		return []document.Inline{&document.Text{Value: document.PlainText(b.inlines(n))}}
	case *ast.RawHTML:
		var sb strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			sb.Write(seg.Value(b.source))
		}
		return []document.Inline{&document.Text{Value: strings.Join(strings.Fields(sb.String()), " ")}}
	default:
		return b.inlines(n)
	}
}

func (b *builder) codeSpan(n *ast.CodeSpan) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		var value []byte
		switch c := c.(type) {
		case *ast.Text:
			value = c.Segment.Value(b.source)
		case *ast.String:
			value = c.Value
		}
		if v, ok := bytes.CutSuffix(value, []byte("\n")); ok {
			sb.Write(v)
			sb.WriteByte(' ')
			continue
		}
		sb.Write(value)
	}
	return sb.String()
}

// flattenLinks replaces links nested inside a link by their content.
func flattenLinks(content []document.Inline) []document.Inline {
	out := make([]document.Inline, 0, len(content))
	for _, in := range content {
		switch n := in.(type) {
		case *document.Link:
			out = append(out, flattenLinks(n.Content)...)
		case *document.Emphasis:
			out = append(out, &document.Emphasis{Content: flattenLinks(n.Content)})
		case *document.Strong:
			out = append(out, &document.Strong{Content: flattenLinks(n.Content)})
		default:
			out = append(out, in)
		}
	}
	return tidy(out)
}

// tidy merges adjacent text, drops empty text and trims spaces around line
// breaks so equivalent inputs produce identical trees.
func tidy(content []document.Inline) []document.Inline {
	var out []document.Inline
	for _, in := range content {
		t, ok := in.(*document.Text)
		if !ok {
			if _, isBreak := in.(*document.LineBreak); isBreak && len(out) > 0 {
				if prev, ok := out[len(out)-1].(*document.Text); ok {
					prev.Value = strings.TrimRight(prev.Value, " ")
				}
			}
			out = append(out, in)
			continue
		}
		if len(out) > 0 {
			if prev, ok := out[len(out)-1].(*document.Text); ok {
				prev.Value += t.Value
				continue
			}
			if _, isBreak := out[len(out)-1].(*document.LineBreak); isBreak {
				t = &document.Text{Value: strings.TrimLeft(t.Value, " ")}
			}
		}
		out = append(out, &document.Text{Value: t.Value})
	}

	kept := out[:0]
	for _, in := range out {
		if t, ok := in.(*document.Text); ok && t.Value == "" {
			continue
		}
		kept = append(kept, in)
	}
	return kept
}

// attrString converts a goldmark attribute value to text.
func attrString(v any) string {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case string:
		return x
	default:
		return ""
	}
}
