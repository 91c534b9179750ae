package pipeline

import (
	"context"

	"github.com/alnah/go-docconv/internal/document"
)

// TransformOptions selects the structural transforms to apply.
type TransformOptions struct {
	TOC      bool
	TOCDepth int
}

// Transform is one structural rewrite of a document.
type Transform interface {
	Name() string
	Apply(ctx context.Context, doc *document.Document) error
}

// TOCTransform prepends a table of contents as the first block.
type TOCTransform struct {
	MaxDepth int
}

// Name implements Transform.
func (t *TOCTransform) Name() string { return "toc" }

// Apply implements Transform.
func (t *TOCTransform) Apply(ctx context.Context, doc *document.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	toc := BuildTOC(doc, t.MaxDepth)
	if toc == nil {
		return nil
	}
	doc.Blocks = append([]document.Block{toc}, doc.Blocks...)
	return nil
}

// Compile-time interface check.
var _ Transform = (*TOCTransform)(nil)

// Transforms returns the transforms selected by opts in execution order.
// Order is fixed regardless of how the options were requested.
func Transforms(opts TransformOptions) []Transform {
	var out []Transform
	if opts.TOC {
		out = append(out, &TOCTransform{MaxDepth: opts.TOCDepth})
	}
	return out
}

// ApplyTransforms runs every selected transform on doc in order.
func ApplyTransforms(ctx context.Context, doc *document.Document, opts TransformOptions) error {
	for _, t := range Transforms(opts) {
		if err := t.Apply(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}
