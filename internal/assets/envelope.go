package assets

import (
	"fmt"
	"html/template"
	"io"
	"strings"
)

// Envelope sections every envelope template must define.
const (
	preludeSection  = "prelude"
	postludeSection = "postlude"
)

// EnvelopeData is the data the prelude section is executed with.
type EnvelopeData struct {
	Title  string
	Author string
	Date   string
	Style  template.CSS
}

// NewEnvelopeData builds EnvelopeData, folding the given stylesheets into one
// style block that cannot close its <style> element early.
func NewEnvelopeData(title, author, date string, css ...string) EnvelopeData {
	var b strings.Builder
	for _, c := range css {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(sanitizeCSS(c))
	}
	return EnvelopeData{
		Title:  title,
		Author: author,
		Date:   date,
		Style:  template.CSS(b.String()), // #nosec G203 -- sanitized above
	}
}

// sanitizeCSS escapes "</" so stylesheet text cannot end the style element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// Envelope frames a standalone document. Document content is written between
// the prelude and the postlude by the caller.
type Envelope struct {
	tmpl *template.Template
}

// LoadEnvelope loads and parses the envelope template from loader.
func LoadEnvelope(loader AssetLoader) (*Envelope, error) {
	src, err := loader.LoadTemplate(EnvelopeTemplateName)
	if err != nil {
		return nil, err
	}
	return ParseEnvelope(src)
}

// ParseEnvelope parses envelope template source. The source must define the
// "prelude" and "postlude" templates.
func ParseEnvelope(src string) (*Envelope, error) {
	tmpl, err := template.New(EnvelopeTemplateName).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	for _, section := range []string{preludeSection, postludeSection} {
		if tmpl.Lookup(section) == nil {
			return nil, fmt.Errorf("%w: missing %q section", ErrInvalidTemplate, section)
		}
	}
	return &Envelope{tmpl: tmpl}, nil
}

// Prelude writes the opening part of the page.
func (e *Envelope) Prelude(w io.Writer, data EnvelopeData) error {
	return e.tmpl.ExecuteTemplate(w, preludeSection, data)
}

// Postlude writes the closing part of the page.
func (e *Envelope) Postlude(w io.Writer) error {
	return e.tmpl.ExecuteTemplate(w, postludeSection, nil)
}
