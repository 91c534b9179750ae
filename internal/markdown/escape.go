package markdown

import (
	"regexp"
	"strings"
)

var (
	// orderedMarker matches text that would open an ordered list item.
	orderedMarker = regexp.MustCompile(`^[0-9]{1,9}[.)]`)
	// absoluteURI matches what CommonMark accepts inside <...> autolinks.
	absoluteURI = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]{1,31}:[^\x00-\x20<>]*$`)
	// emailAddress matches what CommonMark accepts as an email autolink.
	emailAddress = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// textMode tells escapeText where the text lands.
type textMode int

const (
	inParagraph textMode = iota
	inHeading
)

// escapeText makes literal text survive a CommonMark parse unchanged.
// lineStart is true when the text begins a line.
func escapeText(s string, mode textMode, lineStart bool) string {
	s = strings.ReplaceAll(s, "\n", " ")

	var sb strings.Builder
	sb.Grow(len(s) + 8)

	if lineStart && mode == inParagraph {
		if m := orderedMarker.FindString(s); m != "" {
			sb.WriteString(m[:len(m)-1])
			sb.WriteByte('\\')
			sb.WriteByte(m[len(m)-1])
			s = s[len(m):]
			lineStart = false
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\', '`', '*', '_', '[', ']', '<':
			sb.WriteByte('\\')
		case '&':
			if entityRef.MatchString(s[i:]) {
				sb.WriteByte('\\')
			}
		case '!':
			if i == len(s)-1 {
				sb.WriteByte('\\')
			}
		case '#':
			if mode == inHeading || (i == 0 && lineStart) {
				sb.WriteByte('\\')
			}
		case '{':
			if mode == inHeading {
				sb.WriteString("&#123;")
				continue
			}
		case '>', '-', '+', '=', '~':
			if i == 0 && lineStart && mode == inParagraph {
				sb.WriteByte('\\')
			}
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// escapeDestination renders a link destination.
func escapeDestination(dest string) string {
	if dest == "" {
		return "<>"
	}
	if strings.ContainsAny(dest, " <>\n\t") || !balancedParens(dest) {
		return "<" + backslashEscape(dest, `\<>`) + ">"
	}
	return backslashEscape(dest, `\()`)
}

// escapeTitle renders a link title in double quotes.
func escapeTitle(title string) string {
	return `"` + backslashEscape(title, `\"`) + `"`
}

// escapeInfo renders a fenced code info string.
func escapeInfo(lang string) string {
	return backslashEscape(lang, `\`)
}

// backslashEscape escapes every byte of special and every '&' that starts a
// character reference.
func backslashEscape(s, special string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if strings.IndexByte(special, c) >= 0 || (c == '&' && entityRef.MatchString(s[i:])) {
			sb.WriteByte('\\')
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func balancedParens(s string) bool {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			cur++
			best = max(best, cur)
			continue
		}
		cur = 0
	}
	return best
}

// simpleID reports whether id can be written as {#id}.
func simpleID(id string) bool {
	for i := 0; i < len(id); i++ {
		c := id[i]
		if c <= ' ' || (c < 0x80 && isASCIIPunct(c) && strings.IndexByte("_-:.", c) < 0) {
			return false
		}
	}
	return id != ""
}
