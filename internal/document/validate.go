package document

import (
	"errors"
	"fmt"
)

// ErrInvalidNode is returned when a tree violates a structural invariant.
var ErrInvalidNode = errors.New("invalid node")

// NodeError describes which node broke an invariant.
type NodeError struct {
	Kind   string
	Reason string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidNode).
func (e *NodeError) Unwrap() error {
	return ErrInvalidNode
}

// Validate checks the structural invariants of a tree: no nil nodes and
// heading levels within 1..6.
func Validate(doc *Document) error {
	return validateBlocks(doc.Blocks)
}

func validateBlocks(blocks []Block) error {
	for _, b := range blocks {
		if err := validateBlock(b); err != nil {
			return err
		}
	}
	return nil
}

func validateBlock(b Block) error {
	switch n := b.(type) {
	case nil:
		return &NodeError{Kind: "Block", Reason: "nil block"}
	case *Heading:
		if n.Level < 1 || n.Level > 6 {
			return &NodeError{Kind: KindHeading, Reason: fmt.Sprintf("level %d out of range 1..6", n.Level)}
		}
		return validateInlines(n.Content)
	case *Paragraph:
		return validateInlines(n.Content)
	case *List:
		for i := range n.Items {
			if err := validateBlocks(n.Items[i].Blocks); err != nil {
				return err
			}
		}
	case *Quote:
		return validateBlocks(n.Body.Blocks)
	case *CodeBlock, *ThematicBreak:
	default:
		return &NodeError{Kind: b.Kind(), Reason: "unknown block"}
	}
	return nil
}

func validateInlines(content []Inline) error {
	for _, in := range content {
		switch n := in.(type) {
		case nil:
			return &NodeError{Kind: "Inline", Reason: "nil inline"}
		case *Emphasis:
			if err := validateInlines(n.Content); err != nil {
				return err
			}
		case *Strong:
			if err := validateInlines(n.Content); err != nil {
				return err
			}
		case *Link:
			if err := validateInlines(n.Content); err != nil {
				return err
			}
		case *Text, *Code, *LineBreak:
		default:
			return &NodeError{Kind: in.Kind(), Reason: "unknown inline"}
		}
	}
	return nil
}
