package markdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Shorthand constructors keep expected trees readable.
func txt(s string) *document.Text { return &document.Text{Value: s} }

func para(in ...document.Inline) *document.Paragraph {
	return &document.Paragraph{Content: in}
}

func head(level int, id string, in ...document.Inline) *document.Heading {
	return &document.Heading{Level: level, ID: id, Content: in}
}

func item(blocks ...document.Block) document.Document {
	return document.Document{Blocks: blocks}
}

func parse(t *testing.T, src string, opts pipeline.ReadOptions) *document.Document {
	t.Helper()
	doc, err := NewReader().Parse(context.Background(), []byte(src), opts)
	if err != nil {
		t.Fatalf("Parse(%q) unexpected error: %v", src, err)
	}
	return doc
}

// ---------------------------------------------------------------------------
// TestReader_Blocks - Block-level mapping
// ---------------------------------------------------------------------------

func TestReader_Blocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []document.Block
	}{
		{
			name: "heading and paragraph",
			src:  "# Title\n\nHello *world*",
			want: []document.Block{
				head(1, "", txt("Title")),
				para(txt("Hello "), &document.Emphasis{Content: []document.Inline{txt("world")}}),
			},
		},
		{
			name: "setext heading",
			src:  "Title\n=====\n\nSub\n---",
			want: []document.Block{head(1, "", txt("Title")), head(2, "", txt("Sub"))},
		},
		{
			name: "explicit heading id",
			src:  "## Title {#custom}",
			want: []document.Block{head(2, "custom", txt("Title"))},
		},
		{
			name: "explicit id equal to derived anchor is implicit",
			src:  "# Title {#title}",
			want: []document.Block{head(1, "", txt("Title"))},
		},
		{
			name: "bullet and ordered lists",
			src:  "- a\n- b\n\n1. x\n2. y",
			want: []document.Block{
				&document.List{Items: []document.Document{item(para(txt("a"))), item(para(txt("b")))}},
				&document.List{Ordered: true, Items: []document.Document{item(para(txt("x"))), item(para(txt("y")))}},
			},
		},
		{
			name: "loose list maps like tight list",
			src:  "- a\n\n- b",
			want: []document.Block{
				&document.List{Items: []document.Document{item(para(txt("a"))), item(para(txt("b")))}},
			},
		},
		{
			name: "nested list",
			src:  "- a\n  - b",
			want: []document.Block{
				&document.List{Items: []document.Document{
					item(para(txt("a")), &document.List{Items: []document.Document{item(para(txt("b")))}}),
				}},
			},
		},
		{
			name: "fenced code",
			src:  "```go\nfmt.Println(1)\n```",
			want: []document.Block{&document.CodeBlock{Text: "fmt.Println(1)", Language: "go"}},
		},
		{
			name: "indented code",
			src:  "    a\n    b",
			want: []document.Block{&document.CodeBlock{Text: "a\nb"}},
		},
		{
			name: "quote",
			src:  "> quoted\n> text",
			want: []document.Block{&document.Quote{Body: item(para(txt("quoted text")))}},
		},
		{
			name: "fence closed by its container",
			src:  "> ```\n> code\n\nafter",
			want: []document.Block{
				&document.Quote{Body: item(&document.CodeBlock{Text: "code"})},
				para(txt("after")),
			},
		},
		{
			name: "thematic break",
			src:  "a\n\n***\n\nb",
			want: []document.Block{para(txt("a")), &document.ThematicBreak{}, para(txt("b"))},
		},
		{
			name: "html block degrades to text",
			src:  "<div>\nhi\n</div>",
			want: []document.Block{para(txt("<div> hi </div>"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parse(t, tt.src, pipeline.ReadOptions{})
			if diff := cmp.Diff(tt.want, got.Blocks); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReader_Inlines - Inline-level mapping
// ---------------------------------------------------------------------------

func TestReader_Inlines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		opts pipeline.ReadOptions
		want []document.Inline
	}{
		{
			name: "code strong and link",
			src:  "`code` **bold** [link](http://x \"T\")",
			want: []document.Inline{
				&document.Code{Value: "code"},
				txt(" "),
				&document.Strong{Content: []document.Inline{txt("bold")}},
				txt(" "),
				&document.Link{Href: "http://x", Title: "T", Content: []document.Inline{txt("link")}},
			},
		},
		{
			name: "soft break becomes space",
			src:  "a\nb",
			want: []document.Inline{txt("a b")},
		},
		{
			name: "backslash hard break",
			src:  "a\\\nb",
			want: []document.Inline{txt("a"), &document.LineBreak{}, txt("b")},
		},
		{
			name: "trailing spaces hard break",
			src:  "a  \nb",
			want: []document.Inline{txt("a"), &document.LineBreak{}, txt("b")},
		},
		{
			name: "escapes and entities",
			src:  "\\*not\\* &amp; &copy;",
			want: []document.Inline{txt("*not* & ©")},
		},
		{
			name: "inline html degrades to text",
			src:  "a <b>x</b>",
			want: []document.Inline{txt("a <b>x</b>")},
		},
		{
			name: "image becomes alt text",
			src:  "see ![alt text](img.png)",
			want: []document.Inline{txt("see alt text")},
		},
		{
			name: "autolink",
			src:  "<https://example.com>",
			want: []document.Inline{&document.Link{Href: "https://example.com", Content: []document.Inline{txt("https://example.com")}}},
		},
		{
			name: "email autolink",
			src:  "<me@example.com>",
			want: []document.Inline{&document.Link{Href: "mailto:me@example.com", Content: []document.Inline{txt("me@example.com")}}},
		},
		{
			name: "code span with backtick",
			src:  "`` a`b ``",
			want: []document.Inline{&document.Code{Value: "a`b"}},
		},
		{
			name: "link destination escapes",
			src:  `[x](/a\_b?c=1&amp;d=2)`,
			want: []document.Inline{&document.Link{Href: "/a_b?c=1&d=2", Content: []document.Inline{txt("x")}}},
		},
		{
			name: "linkify extension",
			src:  "see https://example.com now",
			opts: pipeline.ReadOptions{Autolink: true},
			want: []document.Inline{
				txt("see "),
				&document.Link{Href: "https://example.com", Content: []document.Inline{txt("https://example.com")}},
				txt(" now"),
			},
		},
		{
			name: "without linkify urls stay text",
			src:  "see https://example.com now",
			want: []document.Inline{txt("see https://example.com now")},
		},
		{
			name: "typographer extension",
			src:  `"quoted" -- dash`,
			opts: pipeline.ReadOptions{Typographer: true},
			want: []document.Inline{txt("“quoted” – dash")},
		},
		{
			name: "hard line breaks extension",
			src:  "a\nb",
			opts: pipeline.ReadOptions{HardLineBreaks: true},
			want: []document.Inline{txt("a"), &document.LineBreak{}, txt("b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parse(t, tt.src, tt.opts)
			if len(got.Blocks) != 1 {
				t.Fatalf("Parse(%q) returned %d blocks, want 1", tt.src, len(got.Blocks))
			}
			p, ok := got.Blocks[0].(*document.Paragraph)
			if !ok {
				t.Fatalf("Parse(%q) block is %s, want Paragraph", tt.src, got.Blocks[0].Kind())
			}
			if diff := cmp.Diff(tt.want, p.Content); diff != "" {
				t.Errorf("Parse(%q) mismatch (-want +got):\n%s", tt.src, diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReader_FrontMatter - YAML metadata
// ---------------------------------------------------------------------------

func TestReader_FrontMatter(t *testing.T) {
	t.Parallel()

	t.Run("mapped to meta", func(t *testing.T) {
		t.Parallel()

		got := parse(t, "---\ntitle: Doc\nauthor: Ada\ndate: \"2024-05-01\"\n---\n# A\n", pipeline.ReadOptions{})
		want := document.Meta{Title: "Doc", Author: "Ada", Date: "2024-05-01"}
		if got.Meta != want {
			t.Errorf("Meta = %+v, want %+v", got.Meta, want)
		}
		if len(got.Blocks) != 1 {
			t.Errorf("got %d blocks, want 1", len(got.Blocks))
		}
	})

	t.Run("unclosed delimiter is markdown", func(t *testing.T) {
		t.Parallel()

		got := parse(t, "---\nplain text", pipeline.ReadOptions{})
		if !got.Meta.IsZero() {
			t.Errorf("Meta = %+v, want zero", got.Meta)
		}
		if len(got.Blocks) == 0 {
			t.Error("body should be parsed as markdown")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := NewReader().Parse(context.Background(), []byte("---\ntitle: [\n---\n"), pipeline.ReadOptions{})
		if !errors.Is(err, pipeline.ErrParse) {
			t.Fatalf("Parse() error = %v, want ErrParse", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestReader_Errors - Structural failures
// ---------------------------------------------------------------------------

func TestReader_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantLine int
	}{
		{"unterminated fence", "intro\n\n```go\ncode", 3},
		{"unterminated fence after front matter", "---\ntitle: x\n---\n\n~~~\nx\n", 5},
		{"fence opener at end of input", "```", 1},
		{"invalid utf-8", "ok\n\xff", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewReader().Parse(context.Background(), []byte(tt.src), pipeline.ReadOptions{})
			var pe *pipeline.ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse(%q) error = %v, want *ParseError", tt.src, err)
			}
			if pe.Pos.Line != tt.wantLine {
				t.Errorf("ParseError line = %d, want %d", pe.Pos.Line, tt.wantLine)
			}
		})
	}
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	doc, err := NewReader().Read(context.Background(), strings.NewReader("# A\r\n\r\ntext\r\n"), pipeline.ReadOptions{})
	if err != nil {
		t.Fatalf("Read() unexpected error: %v", err)
	}
	want := []document.Block{head(1, "", txt("A")), para(txt("text"))}
	if diff := cmp.Diff(want, doc.Blocks); diff != "" {
		t.Errorf("Read() mismatch (-want +got):\n%s", diff)
	}
}

func TestReader_Deterministic(t *testing.T) {
	t.Parallel()

	src := "# A\n\n- x *y* `z`\n- [l](u)\n\n> q\n\n```\nc\n```\n# A\n"
	r := NewReader()
	first, err := r.Parse(context.Background(), []byte(src), pipeline.ReadOptions{})
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	for range 5 {
		again, err := r.Parse(context.Background(), []byte(src), pipeline.ReadOptions{})
		if err != nil {
			t.Fatalf("Parse() unexpected error: %v", err)
		}
		if !document.Equal(first, again) {
			t.Fatalf("Parse() is not deterministic:\n%s", cmp.Diff(first, again))
		}
	}
}
