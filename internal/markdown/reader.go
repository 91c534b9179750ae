package markdown

import (
	"context"
	"io"

	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-docconv/internal/anchor"
	"github.com/alnah/go-docconv/internal/document"
	"github.com/alnah/go-docconv/internal/pipeline"
)

// Inline parser priorities used by goldmark's own extenders.
const (
	linkifyPriority     = 999
	typographerPriority = 9999
)

// Reader parses CommonMark. Heading attributes ({#id}) are always enabled;
// autolinks and typographic replacements are opt-in via ReadOptions.
//
// One goldmark parser is compiled per extension combination when the Reader
// is created; parsing itself keeps all state in a per-call context, so a
// Reader is safe for concurrent use.
type Reader struct {
	parsers [4]parser.Parser
}

// NewReader compiles the parser tables.
func NewReader() *Reader {
	r := &Reader{}
	for i := range r.parsers {
		r.parsers[i] = newParser(i&1 != 0, i&2 != 0)
	}
	return r
}

func newParser(linkify, typographer bool) parser.Parser {
	inlines := parser.DefaultInlineParsers()
	if linkify {
		inlines = append(inlines, util.Prioritized(extension.NewLinkifyParser(), linkifyPriority))
	}
	if typographer {
		inlines = append(inlines, util.Prioritized(extension.NewTypographerParser(), typographerPriority))
	}
	return parser.NewParser(
		parser.WithBlockParsers(blockParsers()...),
		parser.WithInlineParsers(inlines...),
		parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		parser.WithAttribute(),
	)
}

func (r *Reader) parserFor(opts pipeline.ReadOptions) parser.Parser {
	i := 0
	if opts.Autolink {
		i |= 1
	}
	if opts.Typographer {
		i |= 2
	}
	return r.parsers[i]
}

// Extensions implements pipeline.Reader.
func (r *Reader) Extensions() pipeline.ReadOptions {
	return pipeline.ReadOptions{Autolink: true, Typographer: true, HardLineBreaks: true}
}

// Read implements pipeline.Reader.
func (r *Reader) Read(ctx context.Context, in io.Reader, opts pipeline.ReadOptions) (*document.Document, error) {
	raw, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	return r.Parse(ctx, raw, opts)
}

// Parse converts an in-memory Markdown source.
func (r *Reader) Parse(ctx context.Context, raw []byte, opts pipeline.ReadOptions) (*document.Document, error) {
	src, err := pipeline.Prepare(raw)
	if err != nil {
		return nil, err
	}

	meta, body, bodyOffset, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pc := parser.NewContext()
	root := r.parserFor(opts).Parse(text.NewReader(body), parser.WithContext(pc))
	if offset, ok := unterminatedFence(pc); ok {
		return nil, &pipeline.ParseError{
			Message: "unterminated code fence",
			Pos:     pipeline.PositionAt(src, bodyOffset+offset),
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := &builder{source: body, hardWraps: opts.HardLineBreaks}
	doc := &document.Document{Meta: meta, Blocks: b.blocks(root)}
	anchor.Normalize(document.Headings(doc))
	return doc, nil
}

// Compile-time interface check.
var _ pipeline.Reader = (*Reader)(nil)
