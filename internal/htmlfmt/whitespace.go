package htmlfmt

import (
	"strings"

	"github.com/alnah/go-docconv/internal/document"
)

// isSpace reports HTML inter-element whitespace. U+00A0 is content.
func isSpace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, isSpace) == ""
}

// collapseText folds whitespace runs into single spaces and trims the ends.
func collapseText(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// collapse applies rendered-whitespace rules to inline content: each
// whitespace run becomes one space, and no space survives at the start or end
// of the content or next to a line break. Empty text and empty emphasis are
// dropped and adjacent text is merged.
func collapse(content []document.Inline) []document.Inline {
	var leaves []document.Inline
	collectLeaves(content, &leaves)

	space := true
	for _, leaf := range leaves {
		switch v := leaf.(type) {
		case *document.Text:
			var sb strings.Builder
			for _, r := range v.Value {
				if !isSpace(r) {
					sb.WriteRune(r)
					space = false
					continue
				}
				if !space {
					sb.WriteByte(' ')
					space = true
				}
			}
			v.Value = sb.String()
		case *document.LineBreak:
			space = true
		default:
			space = false
		}
	}

	trim := true
	for i := len(leaves) - 1; i >= 0; i-- {
		switch v := leaves[i].(type) {
		case *document.Text:
			if trim {
				v.Value = strings.TrimRight(v.Value, " ")
				trim = v.Value == ""
			}
		case *document.LineBreak:
			trim = true
		default:
			trim = false
		}
	}

	return prune(content)
}

func collectLeaves(content []document.Inline, out *[]document.Inline) {
	for _, in := range content {
		switch v := in.(type) {
		case *document.Emphasis:
			collectLeaves(v.Content, out)
		case *document.Strong:
			collectLeaves(v.Content, out)
		case *document.Link:
			collectLeaves(v.Content, out)
		default:
			*out = append(*out, in)
		}
	}
}

func prune(content []document.Inline) []document.Inline {
	var out []document.Inline
	for _, in := range content {
		switch v := in.(type) {
		case *document.Text:
			if v.Value == "" {
				continue
			}
			if n := len(out); n > 0 {
				if prev, ok := out[n-1].(*document.Text); ok {
					prev.Value += v.Value
					continue
				}
			}
		case *document.Emphasis:
			if v.Content = prune(v.Content); len(v.Content) == 0 {
				continue
			}
		case *document.Strong:
			if v.Content = prune(v.Content); len(v.Content) == 0 {
				continue
			}
		case *document.Link:
			v.Content = prune(v.Content)
		}
		out = append(out, in)
	}
	return out
}
