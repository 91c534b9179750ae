package document

import "strings"

// WalkFunc is called for each block in document order.
// Returning false skips the children of that block.
type WalkFunc func(b Block) bool

// Walk visits blocks depth-first in document order, descending into list
// items and quote bodies.
func Walk(blocks []Block, fn WalkFunc) {
	for _, b := range blocks {
		if !fn(b) {
			continue
		}
		switch n := b.(type) {
		case *List:
			for i := range n.Items {
				Walk(n.Items[i].Blocks, fn)
			}
		case *Quote:
			Walk(n.Body.Blocks, fn)
		}
	}
}

// Headings returns every heading of the document in document order,
// including headings nested in lists and quotes.
func Headings(doc *Document) []*Heading {
	var out []*Heading
	Walk(doc.Blocks, func(b Block) bool {
		if h, ok := b.(*Heading); ok {
			out = append(out, h)
		}
		return true
	})
	return out
}

// PlainText flattens inline content to its textual value.
// Line breaks become single spaces.
func PlainText(content []Inline) string {
	var sb strings.Builder
	writePlain(&sb, content)
	return sb.String()
}

func writePlain(sb *strings.Builder, content []Inline) {
	for _, in := range content {
		switch n := in.(type) {
		case *Text:
			sb.WriteString(n.Value)
		case *Code:
			sb.WriteString(n.Value)
		case *Emphasis:
			writePlain(sb, n.Content)
		case *Strong:
			writePlain(sb, n.Content)
		case *Link:
			writePlain(sb, n.Content)
		case *LineBreak:
			sb.WriteByte(' ')
		}
	}
}
