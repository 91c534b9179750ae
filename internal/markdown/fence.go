package markdown

import (
	"reflect"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

var fenceKey = parser.NewContextKey()

// fenceState records, for one parse, where code fences open and whether they
// were closed by a matching fence.
type fenceState struct {
	openers      map[ast.Node]int
	closed       map[ast.Node]bool
	unterminated int // opener offset of the first fence left open at end of input, or -1
}

func fenceStateOf(pc parser.Context) *fenceState {
	if v, ok := pc.Get(fenceKey).(*fenceState); ok {
		return v
	}
	s := &fenceState{
		openers:      make(map[ast.Node]int),
		closed:       make(map[ast.Node]bool),
		unterminated: -1,
	}
	pc.Set(fenceKey, s)
	return s
}

// strictFence wraps goldmark's fenced code parser and flags fences still open
// when the input ends. Fences closed by their container stay valid.
type strictFence struct {
	parser.BlockParser
}

func (f strictFence) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	_, seg := reader.PeekLine()
	node, state := f.BlockParser.Open(parent, reader, pc)
	if node != nil {
		fenceStateOf(pc).openers[node] = seg.Start
	}
	return node, state
}

func (f strictFence) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	state := f.BlockParser.Continue(node, reader, pc)
	if state&parser.Close != 0 {
		fenceStateOf(pc).closed[node] = true
	}
	return state
}

func (f strictFence) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	s := fenceStateOf(pc)
	if !s.closed[node] && s.unterminated < 0 {
		if line, _ := reader.PeekLine(); line == nil {
			s.unterminated = s.openers[node]
		}
	}
	f.BlockParser.Close(node, reader, pc)
}

// unterminatedFence returns the opener offset of a fence left open at end of
// input, if any.
func unterminatedFence(pc parser.Context) (int, bool) {
	s, ok := pc.Get(fenceKey).(*fenceState)
	if !ok || s.unterminated < 0 {
		return 0, false
	}
	return s.unterminated, true
}

// blockParsers returns goldmark's default block parsers with the fenced code
// parser replaced by strictFence.
func blockParsers() []util.PrioritizedValue {
	fencedType := reflect.TypeOf(parser.NewFencedCodeBlockParser())
	defaults := parser.DefaultBlockParsers()
	out := make([]util.PrioritizedValue, 0, len(defaults))
	for _, v := range defaults {
		if bp, ok := v.Value.(parser.BlockParser); ok && reflect.TypeOf(bp) == fencedType {
			v = util.Prioritized(strictFence{BlockParser: bp}, v.Priority)
		}
		out = append(out, v)
	}
	return out
}
