package htmlfmt

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// unclosedPre returns the byte offset of the first <pre> start tag that has
// no matching end tag. The HTML parser would close it silently at the end of
// input, swallowing the rest of the document into the code block.
func unclosedPre(src []byte) (int, bool) {
	z := html.NewTokenizer(bytes.NewReader(src))
	var open []int
	offset := 0
	for {
		tt := z.Next()
		size := len(z.Raw())
		switch tt {
		case html.ErrorToken:
			if len(open) > 0 {
				return open[0], true
			}
			return 0, false
		case html.StartTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.Pre {
				open = append(open, offset)
			}
		case html.EndTagToken:
			if name, _ := z.TagName(); atom.Lookup(name) == atom.Pre && len(open) > 0 {
				open = open[:len(open)-1]
			}
		}
		offset += size
	}
}
