package pipeline

import (
	"github.com/alnah/go-docconv/internal/anchor"
	"github.com/alnah/go-docconv/internal/document"
)

// Heading depth bounds for the table of contents.
const (
	MinTOCDepth = 1
	MaxTOCDepth = 6
)

// levelTracker turns heading levels into nesting depths.
// The first heading sits at depth 1 whatever its level, and a jump of several
// levels (h1 -> h4) nests only one step deeper.
type levelTracker struct {
	open []int // levels of the currently open ancestors
}

// next returns the 1-based depth for a heading of the given level.
func (t *levelTracker) next(level int) int {
	for len(t.open) > 0 && t.open[len(t.open)-1] >= level {
		t.open = t.open[:len(t.open)-1]
	}
	t.open = append(t.open, level)
	return len(t.open)
}

// BuildTOC returns a nested list linking to every heading up to maxDepth,
// or nil when there is nothing to link. Anchors come from anchor.Resolve so
// they match the ids a Writer emits.
func BuildTOC(doc *document.Document, maxDepth int) *document.List {
	if maxDepth < MinTOCDepth || maxDepth > MaxTOCDepth {
		maxDepth = MaxTOCDepth
	}

	headings := document.Headings(doc)
	anchors := anchor.Resolve(headings)

	root := &document.List{}
	lists := []*document.List{root}
	var tracker levelTracker

	for i, h := range headings {
		if h.Level > maxDepth {
			continue
		}
		depth := tracker.next(h.Level)

		if depth <= len(lists) {
			lists = lists[:depth]
		} else {
			parent := lists[len(lists)-1]
			last := &parent.Items[len(parent.Items)-1]
			nested := &document.List{}
			last.Blocks = append(last.Blocks, nested)
			lists = append(lists, nested)
		}

		cur := lists[depth-1]
		cur.Items = append(cur.Items, tocItem(anchors[i], document.PlainText(h.Content)))
	}

	if len(root.Items) == 0 {
		return nil
	}
	return root
}

func tocItem(id, text string) document.Document {
	link := &document.Link{Href: "#" + id}
	if text != "" {
		link.Content = []document.Inline{&document.Text{Value: text}}
	}
	return document.Document{Blocks: []document.Block{
		&document.Paragraph{Content: []document.Inline{link}},
	}}
}
