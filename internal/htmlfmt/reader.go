package htmlfmt

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-docconv/internal/anchor"
	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Reader parses HTML documents and fragments. It has no syntax extensions.
type Reader struct{}

// NewReader creates a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Extensions implements pipeline.Reader.
func (r *Reader) Extensions() pipeline.ReadOptions {
	return pipeline.ReadOptions{}
}

// Read implements pipeline.Reader.
func (r *Reader) Read(ctx context.Context, in io.Reader, _ pipeline.ReadOptions) (*document.Document, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return r.Parse(ctx, raw)
}

// Parse converts an in-memory HTML source.
func (r *Reader) Parse(ctx context.Context, raw []byte) (*document.Document, error) {
	src, err := pipeline.Prepare(raw)
	if err != nil {
		return nil, err
	}
	if offset, ok := unclosedPre(src); ok {
		return nil, &pipeline.ParseError{
			Message: "unterminated <pre> element",
			Pos:     pipeline.PositionAt(src, offset),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dom, err := goquery.NewDocumentFromReader(bytes.NewReader(src))
	if err != nil {
		return nil, &pipeline.ParseError{Message: err.Error()}
	}

	doc := &document.Document{Meta: readMeta(dom)}
	if body := dom.Find("body").First(); body.Length() > 0 {
		doc.Blocks = blocks(body.Nodes[0])
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	anchor.Normalize(document.Headings(doc))
	return doc, nil
}

// readMeta collects the title and the author and date meta tags.
func readMeta(dom *goquery.Document) document.Meta {
	head := dom.Find("head")
	return document.Meta{
		Title:  collapseText(head.Find("title").First().Text()),
		Author: metaContent(head, "author"),
		Date:   metaContent(head, "date"),
	}
}

func metaContent(head *goquery.Selection, name string) string {
	var content string
	head.Find("meta[name]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr("name", ""), name) {
			return true
		}
		content = strings.TrimSpace(s.AttrOr("content", ""))
		return false
	})
	return content
}

// Compile-time interface check.
var _ pipeline.Reader = (*Reader)(nil)
