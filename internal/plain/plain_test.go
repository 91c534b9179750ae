package plain

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

func txt(s string) *document.Text { return &document.Text{Value: s} }

func para(in ...document.Inline) *document.Paragraph {
	return &document.Paragraph{Content: in}
}

func item(blocks ...document.Block) document.Document {
	return document.Document{Blocks: blocks}
}

func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  *document.Document
		want string
	}{
		{
			name: "headings and paragraphs",
			doc: &document.Document{Blocks: []document.Block{
				&document.Heading{Level: 1, Content: []document.Inline{txt("Title")}},
				para(txt("Hello "), &document.Emphasis{Content: []document.Inline{txt("world")}}),
				&document.Heading{Level: 2, Content: []document.Inline{txt("Go")}},
			}},
			want: "Title\n=====\n\nHello world\n\nGo\n---\n",
		},
		{
			name: "title from metadata",
			doc: &document.Document{
				Meta:   document.Meta{Title: "Doc"},
				Blocks: []document.Block{para(txt("x"))},
			},
			want: "Doc\n===\n\nx\n",
		},
		{
			name: "lists",
			doc: &document.Document{Blocks: []document.Block{
				&document.List{Items: []document.Document{
					item(para(txt("a"))),
					item(para(txt("b")), &document.List{Ordered: true, Items: []document.Document{item(para(txt("c")))}}),
					item(),
				}},
			}},
			want: "- a\n- b\n\n  1. c\n-\n",
		},
		{
			name: "code and quote",
			doc: &document.Document{Blocks: []document.Block{
				&document.CodeBlock{Text: "x := 1\n\ny := 2", Language: "go"},
				&document.Quote{Body: document.Document{Blocks: []document.Block{para(txt("q1")), para(txt("q2"))}}},
				&document.ThematicBreak{},
			}},
			want: "    x := 1\n\n    y := 2\n\n> q1\n>\n> q2\n\n----------\n",
		},
		{
			name: "inline content",
			doc: &document.Document{Blocks: []document.Block{para(
				&document.Link{Href: "https://go.dev", Content: []document.Inline{txt("Go")}},
				txt(" "),
				&document.Link{Href: "https://go.dev", Content: []document.Inline{txt("https://go.dev")}},
				txt(" "),
				&document.Code{Value: "x"},
				&document.LineBreak{},
				&document.Strong{Content: []document.Inline{txt("end")}},
			)}},
			want: "Go <https://go.dev> https://go.dev x\nend\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			if err := NewWriter().Write(context.Background(), tt.doc, &buf, pipeline.WriteOptions{}); err != nil {
				t.Fatalf("Write() unexpected error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Write() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestWriter_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter().Write(ctx, &document.Document{Blocks: []document.Block{para(txt("x"))}}, &buf, pipeline.WriteOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Write() error = %v, want context.Canceled", err)
	}
}

func TestWriter_Capabilities(t *testing.T) {
	t.Parallel()

	if got := NewWriter().Capabilities(); got != 0 {
		t.Errorf("Capabilities() = %v, want 0", got)
	}
}
