package document

// Equal reports whether two documents are structurally identical.
// Nil and empty slices compare equal.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Meta == b.Meta && blocksEqual(a.Blocks, b.Blocks)
}

func blocksEqual(a, b []Block) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !blockEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func blockEqual(a, b Block) bool {
	switch x := a.(type) {
	case *Heading:
		y, ok := b.(*Heading)
		return ok && x.Level == y.Level && x.ID == y.ID && inlinesEqual(x.Content, y.Content)
	case *Paragraph:
		y, ok := b.(*Paragraph)
		return ok && inlinesEqual(x.Content, y.Content)
	case *List:
		y, ok := b.(*List)
		if !ok || x.Ordered != y.Ordered || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(&x.Items[i], &y.Items[i]) {
				return false
			}
		}
		return true
	case *CodeBlock:
		y, ok := b.(*CodeBlock)
		return ok && *x == *y
	case *Quote:
		y, ok := b.(*Quote)
		return ok && Equal(&x.Body, &y.Body)
	case *ThematicBreak:
		_, ok := b.(*ThematicBreak)
		return ok
	}
	return false
}

func inlinesEqual(a, b []Inline) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !inlineEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func inlineEqual(a, b Inline) bool {
	switch x := a.(type) {
	case *Text:
		y, ok := b.(*Text)
		return ok && x.Value == y.Value
	case *Code:
		y, ok := b.(*Code)
		return ok && x.Value == y.Value
	case *Emphasis:
		y, ok := b.(*Emphasis)
		return ok && inlinesEqual(x.Content, y.Content)
	case *Strong:
		y, ok := b.(*Strong)
		return ok && inlinesEqual(x.Content, y.Content)
	case *Link:
		y, ok := b.(*Link)
		return ok && x.Href == y.Href && x.Title == y.Title && inlinesEqual(x.Content, y.Content)
	case *LineBreak:
		_, ok := b.(*LineBreak)
		return ok
	}
	return false
}
