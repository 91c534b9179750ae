package htmlfmt

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-docconv/internal/document"
)

// role is how an element takes part in the document model.
type role int

const (
	roleInline    role = iota // part of the surrounding paragraph
	roleBlock                 // maps to one block
	roleContainer             // children are lifted into the parent
	roleOpaque                // degrades to a paragraph of its text
	roleSkip                  // never rendered
)

var roles = map[atom.Atom]role{
	atom.H1: roleBlock, atom.H2: roleBlock, atom.H3: roleBlock,
	atom.H4: roleBlock, atom.H5: roleBlock, atom.H6: roleBlock,
	atom.P: roleBlock, atom.Ul: roleBlock, atom.Ol: roleBlock,
	atom.Pre: roleBlock, atom.Blockquote: roleBlock, atom.Hr: roleBlock,

	atom.Div: roleContainer, atom.Section: roleContainer, atom.Article: roleContainer,
	atom.Main: roleContainer, atom.Header: roleContainer, atom.Footer: roleContainer,
	atom.Nav: roleContainer, atom.Aside: roleContainer, atom.Figure: roleContainer,
	atom.Center: roleContainer, atom.Details: roleContainer, atom.Form: roleContainer,
	atom.Fieldset: roleContainer, atom.Body: roleContainer, atom.Li: roleContainer,

	atom.Table: roleOpaque, atom.Dl: roleOpaque, atom.Address: roleOpaque,
	atom.Figcaption: roleOpaque, atom.Summary: roleOpaque, atom.Caption: roleOpaque,
	atom.Legend: roleOpaque, atom.Menu: roleOpaque,

	atom.Head: roleSkip, atom.Script: roleSkip, atom.Style: roleSkip,
	atom.Template: roleSkip, atom.Noscript: roleSkip, atom.Iframe: roleSkip,
	atom.Object: roleSkip, atom.Svg: roleSkip, atom.Canvas: roleSkip,
	atom.Button: roleSkip, atom.Input: roleSkip, atom.Select: roleSkip,
	atom.Textarea: roleSkip,
}

func roleOf(n *html.Node) role {
	switch n.Type {
	case html.TextNode:
		return roleInline
	case html.ElementNode:
		if r, ok := roles[n.DataAtom]; ok {
			return r
		}
		return roleInline
	default:
		return roleSkip
	}
}

// blocks converts the children of parent.
func blocks(parent *html.Node) []document.Block {
	return blocksOf(children(parent))
}

// blocksOf converts sibling nodes. Consecutive inline nodes are gathered into
// one paragraph.
func blocksOf(nodes []*html.Node) []document.Block {
	var out []document.Block
	var run []*html.Node

	flush := func() {
		if len(run) == 0 {
			return
		}
		if content := collapse(inlines(run)); len(content) > 0 {
			out = append(out, &document.Paragraph{Content: content})
		}
		run = nil
	}

	for _, n := range nodes {
		switch roleOf(n) {
		case roleInline:
			run = append(run, n)
		case roleContainer:
			flush()
			out = append(out, blocks(n)...)
		case roleBlock:
			flush()
			if b := block(n); b != nil {
				out = append(out, b)
			}
		case roleOpaque:
			flush()
			if text := collapseText(textContent(n)); text != "" {
				out = append(out, &document.Paragraph{Content: []document.Inline{&document.Text{Value: text}}})
			}
		}
	}
	flush()
	return out
}

func block(n *html.Node) document.Block {
	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return &document.Heading{
			Level:   int(n.Data[1] - '0'),
			ID:      attr(n, "id"),
			Content: collapse(inlines(children(n))),
		}
	case atom.P:
		content := collapse(inlines(children(n)))
		if len(content) == 0 {
			return nil
		}
		return &document.Paragraph{Content: content}
	case atom.Ul, atom.Ol:
		return list(n)
	case atom.Pre:
		return codeBlock(n)
	case atom.Blockquote:
		return &document.Quote{Body: document.Document{Blocks: blocks(n)}}
	case atom.Hr:
		return &document.ThematicBreak{}
	}
	return nil
}

// list maps li children to items. Stray content between items becomes an
// item of its own.
func list(n *html.Node) *document.List {
	l := &document.List{Ordered: n.DataAtom == atom.Ol}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && c.DataAtom == atom.Li:
			l.Items = append(l.Items, document.Document{Blocks: blocks(c)})
		case c.Type == html.TextNode && isBlank(c.Data):
		case roleOf(c) == roleSkip:
		default:
			if b := blocksOf([]*html.Node{c}); len(b) > 0 {
				l.Items = append(l.Items, document.Document{Blocks: b})
			}
		}
	}
	return l
}

// codeBlock reads a pre element, taking the language from a language-* or
// lang-* class on the inner code element or on pre itself.
func codeBlock(n *html.Node) *document.CodeBlock {
	lang := languageOf(n)
	if code := soleElement(n); code != nil && code.DataAtom == atom.Code {
		if l := languageOf(code); l != "" {
			lang = l
		}
	}
	return &document.CodeBlock{
		Text:     strings.TrimSuffix(textContent(n), "\n"),
		Language: lang,
	}
}

func languageOf(n *html.Node) string {
	for _, class := range strings.Fields(attr(n, "class")) {
		for _, prefix := range []string{"language-", "lang-"} {
			if lang, ok := strings.CutPrefix(class, prefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

// soleElement returns the only element child of n when n has no other
// non-blank content.
func soleElement(n *html.Node) *html.Node {
	var found *html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case c.Type == html.ElementNode && found == nil:
			found = c
		case c.Type == html.TextNode && isBlank(c.Data):
		default:
			return nil
		}
	}
	return found
}

func inlines(nodes []*html.Node) []document.Inline {
	var out []document.Inline
	for _, n := range nodes {
		out = append(out, inline(n)...)
	}
	return out
}

func inline(n *html.Node) []document.Inline {
	if n.Type == html.TextNode {
		return []document.Inline{&document.Text{Value: n.Data}}
	}
	if n.Type != html.ElementNode {
		return nil
	}

	switch n.DataAtom {
	case atom.Em, atom.I:
		return []document.Inline{&document.Emphasis{Content: inlines(children(n))}}
	case atom.Strong, atom.B:
		return []document.Inline{&document.Strong{Content: inlines(children(n))}}
	case atom.Code, atom.Kbd, atom.Samp:
		return []document.Inline{&document.Code{Value: strings.ReplaceAll(textContent(n), "\n", " ")}}
	case atom.Br:
		return []document.Inline{&document.LineBreak{}}
	case atom.Img:
		if alt := attr(n, "alt"); alt != "" {
			return []document.Inline{&document.Text{Value: alt}}
		}
		return nil
	case atom.A:
		content := flattenLinks(inlines(children(n)))
		if !hasAttr(n, "href") {
			return content
		}
		return []document.Inline{&document.Link{
			Href:    attr(n, "href"),
			Title:   attr(n, "title"),
			Content: content,
		}}
	}
	if roleOf(n) == roleSkip {
		return nil
	}
	// Unknown inline elements and blocks nested in inline context contribute
	// their children.
	return inlines(children(n))
}

// flattenLinks replaces links nested inside a link with their content.
func flattenLinks(content []document.Inline) []document.Inline {
	out := content[:0:0]
	for _, in := range content {
		switch v := in.(type) {
		case *document.Link:
			out = append(out, flattenLinks(v.Content)...)
		case *document.Emphasis:
			out = append(out, &document.Emphasis{Content: flattenLinks(v.Content)})
		case *document.Strong:
			out = append(out, &document.Strong{Content: flattenLinks(v.Content)})
		default:
			out = append(out, in)
		}
	}
	return out
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// textContent concatenates the text of n's descendants, skipping script-like
// elements.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			sb.WriteString(n.Data)
			return
		case n.Type == html.ElementNode && roleOf(n) == roleSkip:
			return
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			sb.WriteByte('\n')
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, key string) bool {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return true
		}
	}
	return false
}
