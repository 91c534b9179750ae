package markdown

import (
	"html"
	"regexp"
	"strings"
)

// entityRef matches a named, decimal or hexadecimal character reference at
// the start of a string.
var entityRef = regexp.MustCompile(`^&(?:#[0-9]{1,7}|#[xX][0-9a-fA-F]{1,6}|[A-Za-z][A-Za-z0-9]{1,31});`)

// decode resolves backslash escapes and character references the way
// CommonMark does for text, link destinations, titles and info strings.
// goldmark keeps these raw in the AST and resolves them only when rendering.
func decode(raw []byte) string {
	if !needsDecode(raw) {
		return string(raw)
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		c := raw[i]
		switch {
		case c == '\\' && i+1 < len(raw) && isASCIIPunct(raw[i+1]):
			sb.WriteByte(raw[i+1])
			i += 2
		case c == '&':
			if m := entityRef.Find(raw[i:]); m != nil {
				sb.WriteString(html.UnescapeString(string(m)))
				i += len(m)
				continue
			}
			sb.WriteByte(c)
			i++
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

func needsDecode(raw []byte) bool {
	for _, c := range raw {
		if c == '\\' || c == '&' {
			return true
		}
	}
	return false
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}
