package document

// Document is an ordered sequence of blocks plus optional metadata.
// List items and quote bodies are Documents too; their Meta is always zero.
type Document struct {
	Meta   Meta
	Blocks []Block
}

// Meta carries document-level metadata such as front matter or HTML head fields.
type Meta struct {
	Title  string
	Author string
	Date   string
}

// IsZero reports whether no metadata field is set.
func (m Meta) IsZero() bool {
	return m.Title == "" && m.Author == "" && m.Date == ""
}

// Block is a block-level node.
type Block interface {
	Kind() string
	block()
}

// Inline is an inline-level node.
type Inline interface {
	Kind() string
	inline()
}

// Heading is a section title. Level ranges from 1 to 6.
// ID holds an explicit anchor; empty means the anchor is derived from the text.
type Heading struct {
	Level   int
	ID      string
	Content []Inline
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Content []Inline
}

// List is an ordered or bulleted list. Each item is a nested Document.
type List struct {
	Ordered bool
	Items   []Document
}

// CodeBlock is preformatted text with an optional language tag.
type CodeBlock struct {
	Text     string
	Language string
}

// Quote is a block quotation.
type Quote struct {
	Body Document
}

// ThematicBreak separates sections.
type ThematicBreak struct{}

// Text is literal text.
type Text struct {
	Value string
}

// Emphasis is emphasized inline content.
type Emphasis struct {
	Content []Inline
}

// Strong is strongly emphasized inline content.
type Strong struct {
	Content []Inline
}

// Code is an inline code span.
type Code struct {
	Value string
}

// Link is a hyperlink.
type Link struct {
	Href    string
	Title   string
	Content []Inline
}

// LineBreak is a hard line break.
type LineBreak struct{}

// Node kind names, used in diagnostics.
const (
	KindHeading       = "Heading"
	KindParagraph     = "Paragraph"
	KindList          = "List"
	KindCodeBlock     = "CodeBlock"
	KindQuote         = "Quote"
	KindThematicBreak = "ThematicBreak"
	KindText          = "Text"
	KindEmphasis      = "Emphasis"
	KindStrong        = "Strong"
	KindCode          = "Code"
	KindLink          = "Link"
	KindLineBreak     = "LineBreak"
)

func (*Heading) Kind() string       { return KindHeading }
func (*Paragraph) Kind() string     { return KindParagraph }
func (*List) Kind() string          { return KindList }
func (*CodeBlock) Kind() string     { return KindCodeBlock }
func (*Quote) Kind() string         { return KindQuote }
func (*ThematicBreak) Kind() string { return KindThematicBreak }

func (*Text) Kind() string      { return KindText }
func (*Emphasis) Kind() string  { return KindEmphasis }
func (*Strong) Kind() string    { return KindStrong }
func (*Code) Kind() string      { return KindCode }
func (*Link) Kind() string      { return KindLink }
func (*LineBreak) Kind() string { return KindLineBreak }

func (*Heading) block()       {}
func (*Paragraph) block()     {}
func (*List) block()          {}
func (*CodeBlock) block()     {}
func (*Quote) block()         {}
func (*ThematicBreak) block() {}

func (*Text) inline()      {}
func (*Emphasis) inline()  {}
func (*Strong) inline()    {}
func (*Code) inline()      {}
func (*Link) inline()      {}
func (*LineBreak) inline() {}

// Compile-time interface checks.
var (
	_ Block = (*Heading)(nil)
	_ Block = (*Paragraph)(nil)
	_ Block = (*List)(nil)
	_ Block = (*CodeBlock)(nil)
	_ Block = (*Quote)(nil)
	_ Block = (*ThematicBreak)(nil)

	_ Inline = (*Text)(nil)
	_ Inline = (*Emphasis)(nil)
	_ Inline = (*Strong)(nil)
	_ Inline = (*Code)(nil)
	_ Inline = (*Link)(nil)
	_ Inline = (*LineBreak)(nil)
)
