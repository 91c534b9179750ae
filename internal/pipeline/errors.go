package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for stage failures.
var (
	ErrParse  = errors.New("parse error")
	ErrRender = errors.New("render error")
)

// Position locates a parse failure. Zero fields are unknown.
// Line and Column are 1-based, Offset is a 0-based byte offset.
type Position struct {
	Line   int
	Column int
	Offset int
}

// IsZero reports whether no coordinate is known.
func (p Position) IsZero() bool {
	return p.Line == 0 && p.Column == 0 && p.Offset == 0
}

func (p Position) String() string {
	switch {
	case p.Line > 0 && p.Column > 0:
		return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
	case p.Line > 0:
		return fmt.Sprintf("line %d", p.Line)
	default:
		return fmt.Sprintf("offset %d", p.Offset)
	}
}

// ParseError reports malformed input.
type ParseError struct {
	Message string
	Pos     Position
}

func (e *ParseError) Error() string {
	if e.Pos.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, e.Pos)
}

// Unwrap allows errors.Is(err, ErrParse).
func (e *ParseError) Unwrap() error {
	return ErrParse
}

// RenderError reports a node the target format cannot express.
type RenderError struct {
	Node    string // offending node kind
	Message string
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%s: %s", e.Node, e.Message)
}

// Unwrap allows errors.Is(err, ErrRender).
func (e *RenderError) Unwrap() error {
	return ErrRender
}

// PositionAt converts a byte offset in src to a line/column position.
// Columns count bytes, starting at 1.
func PositionAt(src []byte, offset int) Position {
	offset = max(0, min(offset, len(src)))
	line, col := 1, 1
	for _, b := range src[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return Position{Line: line, Column: col, Offset: offset}
}
