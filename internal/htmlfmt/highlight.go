package htmlfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used for code highlighting.
const DefaultHighlightStyle = "github"

// highlightClass marks highlighted pre elements; chroma's CSS is scoped to it.
const highlightClass = "chroma"

// highlighter renders code as class-annotated spans. The surrounding pre and
// code elements are written by the caller.
type highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
	css       string
}

func newHighlighter(styleName string) (*highlighter, error) {
	style := styles.Get(styleName)
	formatter := chromahtml.New(
		chromahtml.WithClasses(true),
		chromahtml.PreventSurroundingPre(true),
	)

	var css strings.Builder
	if err := formatter.WriteCSS(&css, style); err != nil {
		return nil, fmt.Errorf("generating highlight CSS for %q: %w", styleName, err)
	}
	return &highlighter{style: style, formatter: formatter, css: css.String()}, nil
}

// format writes code highlighted for lang. Unknown languages are tokenized as
// plain text.
func (h *highlighter) format(w io.Writer, code, lang string) error {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	it, err := chroma.Coalesce(lexer).Tokenise(nil, code)
	if err != nil {
		return err
	}
	return h.formatter.Format(w, h.style, it)
}
