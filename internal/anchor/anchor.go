// Package anchor derives heading anchor identifiers.
//
// Anchors are lowercase, whitespace becomes a hyphen and everything that is
// not a letter, digit or hyphen is dropped. Collisions are resolved by
// appending -2, -3, ... in document order.
package anchor

import (
	"slices"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alnah/go-docconv/internal/document"
)

// Fallback is used when a heading has no usable characters.
const Fallback = "section"

// Slug converts heading text to an anchor candidate.
func Slug(text string) string {
	// A Caser keeps state between calls, so each call gets its own.
	lower := cases.Lower(language.Und).String(strings.TrimSpace(text))

	var sb strings.Builder
	sb.Grow(len(lower))
	for _, r := range lower {
		switch {
		case unicode.IsSpace(r):
			sb.WriteByte('-')
		case r == '-', unicode.IsLetter(r), unicode.IsDigit(r):
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return Fallback
	}
	return sb.String()
}

// Resolve returns one unique anchor per heading, in the same order.
// Explicit IDs are reserved first so derived anchors never steal them.
func Resolve(headings []*document.Heading) []string {
	used := make(map[string]bool, len(headings))
	out := make([]string, len(headings))

	for i, h := range headings {
		if h.ID != "" && !used[h.ID] {
			used[h.ID] = true
			out[i] = h.ID
		}
	}

	for i, h := range headings {
		if out[i] != "" {
			continue
		}
		base := h.ID
		if base == "" {
			base = Slug(document.PlainText(h.Content))
		}
		out[i] = unique(base, used)
	}
	return out
}

func unique(base string, used map[string]bool) string {
	id := base
	for n := 2; used[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	used[id] = true
	return id
}

// Normalize clears explicit IDs that resolve to the same anchor they would
// get without being explicit. Readers call it so that a document read back
// after rendering compares equal to the original.
//
// Clearing one ID can make an earlier one redundant, so passes repeat until
// none clears anything. The resolved anchors never change.
func Normalize(headings []*document.Heading) {
	want := Resolve(headings)
	for cleared := true; cleared; {
		cleared = false
		for _, h := range headings {
			if h.ID == "" || !derivable(h) {
				continue
			}
			id := h.ID
			h.ID = ""
			if slices.Equal(Resolve(headings), want) {
				cleared = true
			} else {
				h.ID = id
			}
		}
	}
}

// derivable reports whether the heading's ID has the shape a derived anchor
// for its text could take.
func derivable(h *document.Heading) bool {
	base := Slug(document.PlainText(h.Content))
	if h.ID == base {
		return true
	}
	suffix, ok := strings.CutPrefix(h.ID, base+"-")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(suffix)
	return err == nil && n >= 2 && strconv.Itoa(n) == suffix
}
