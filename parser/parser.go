// Package parser compiles an Extended-Regex (ERE-style) pattern string into
// the ast.Node tree defined by spec.md §3 and §4.1.
//
// Parsing uses an explicit stack carrying completed *ast.Node values and two
// virtual marker tokens, '(' and '|', rather than recursive descent, so that
// folding a concatenation or collapsing an alternation is a simple
// stack-slice operation with no recursion depth tied to pattern nesting.
package parser

import (
	"bytes"
	"fmt"

	"github.com/corejit/rejit/ast"
)

// marker is a virtual stack token; it is never a valid *ast.Node so the two
// representations never collide inside the stack slice.
type marker byte

const (
	markOpen marker = '('
	markAlt  marker = '|'
)

type parser struct {
	pattern []byte
	pos     int
	stack   []interface{} // *ast.Node or marker

	// openLiteral is the MultipleChar node at the top of stack still
	// eligible to receive more appended bytes, or nil.
	openLiteral *ast.Node
}

// Parse compiles pattern into a regexp tree. The returned *ast.Node is the
// tree's root; indexer.Index must run on it before lister.Build.
func Parse(pattern string) (*ast.Node, error) {
	p := &parser{pattern: []byte(pattern)}
	for p.pos < len(p.pattern) {
		if err := p.step(); err != nil {
			return nil, err
		}
	}
	if err := p.foldConcat(); err != nil {
		return nil, err
	}
	// The stack now holds the top-level alternatives: node ('|' node)*.
	var alts []*ast.Node
	for i, it := range p.stack {
		if m, ok := it.(marker); ok && m == markOpen {
			return nil, errUnmatchedParen(p.pos)
		}
		n, isNode := it.(*ast.Node)
		if isNode != (i%2 == 0) {
			return nil, &ParserError{Index: p.pos, Kind: Expected, Message: "an expression on each side of '|'"}
		}
		if isNode {
			alts = append(alts, n)
		}
	}
	if len(p.stack)%2 == 0 {
		return nil, &ParserError{Index: p.pos, Kind: Expected, Message: "a single expression"}
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return ast.NewAlternation(alts...), nil
}

func (p *parser) push(n *ast.Node) {
	p.stack = append(p.stack, n)
	p.openLiteral = nil
}

func (p *parser) pushLiteralByte(b byte) {
	retro := p.isRepetitionStart(p.pos)
	if p.openLiteral != nil && !retro && len(p.openLiteral.Chars) < ast.MaxNodeLen {
		p.openLiteral.Chars = append(p.openLiteral.Chars, b)
		if len(p.openLiteral.Chars) == ast.MaxNodeLen {
			p.openLiteral = nil
		}
		return
	}
	n := ast.NewLiteral([]byte{b})
	p.stack = append(p.stack, n)
	if retro {
		p.openLiteral = nil
	} else {
		p.openLiteral = n
	}
}

func (p *parser) step() error {
	start := p.pos
	b := p.pattern[p.pos]
	switch b {
	case '.':
		p.pos++
		p.push(ast.NewPeriod())
	case '[':
		n, err := p.parseBracket()
		if err != nil {
			return err
		}
		p.push(n)
	case '^':
		p.pos++
		p.push(ast.NewStartOfLine())
	case '$':
		p.pos++
		p.push(ast.NewEndOfLine())
	case '(':
		p.pos++
		p.stack = append(p.stack, markOpen)
		p.openLiteral = nil
	case ')':
		p.pos++
		if err := p.closeGroup(start); err != nil {
			return err
		}
	case '|':
		p.pos++
		if err := p.foldConcat(); err != nil {
			return err
		}
		p.stack = append(p.stack, markAlt)
		p.openLiteral = nil
	case '*':
		p.pos++
		return p.applyRepetition(start, 0, ast.Unbounded)
	case '+':
		p.pos++
		return p.applyRepetition(start, 1, ast.Unbounded)
	case '?':
		p.pos++
		return p.applyRepetition(start, 0, 1)
	case '{':
		min, max, err := p.parseRepetitionBounds()
		if err != nil {
			return err
		}
		return p.applyRepetition(start, min, max)
	case '\\':
		return p.parseEscape()
	default:
		p.pos++
		p.pushLiteralByte(b)
	}
	return nil
}

// foldConcat collapses every *ast.Node atop the stack, back to the last
// marker (or the bottom of the stack), into a single node via
// ast.NewConcatenation, and pushes that single node back.
func (p *parser) foldConcat() error {
	i := len(p.stack)
	for i > 0 {
		if _, ok := p.stack[i-1].(marker); ok {
			break
		}
		i--
	}
	nodes := p.stack[i:]
	if len(nodes) == 0 {
		return nil
	}
	collected := make([]*ast.Node, len(nodes))
	for j, n := range nodes {
		collected[j] = n.(*ast.Node)
	}
	folded := ast.NewConcatenation(collected...)
	p.stack = append(p.stack[:i], folded)
	p.openLiteral = nil
	return nil
}

// closeGroup folds the current concatenation, then collapses every
// alternative (separated by markAlt markers) back to and including the
// matching markOpen.
func (p *parser) closeGroup(errPos int) error {
	if err := p.foldConcat(); err != nil {
		return err
	}
	var alts []*ast.Node
	for {
		if len(p.stack) == 0 {
			return errUnmatchedParen(errPos)
		}
		top := p.stack[len(p.stack)-1]
		switch v := top.(type) {
		case *ast.Node:
			alts = append([]*ast.Node{v}, alts...)
			p.stack = p.stack[:len(p.stack)-1]
		case marker:
			if v == markAlt {
				p.stack = p.stack[:len(p.stack)-1]
				continue
			}
			// markOpen: consume it and stop.
			p.stack = p.stack[:len(p.stack)-1]
			var result *ast.Node
			if len(alts) == 1 {
				result = alts[0]
			} else {
				result = ast.NewAlternation(alts...)
			}
			p.push(result)
			return nil
		}
	}
}

func (p *parser) applyRepetition(opPos, min, max int) error {
	if err := p.requireTopNode(opPos); err != nil {
		return err
	}
	if min > max && max != ast.Unbounded {
		return errInvalidRepetition(opPos, min, max, "min exceeds max")
	}
	top := p.stack[len(p.stack)-1].(*ast.Node)
	p.stack = p.stack[:len(p.stack)-1]
	rep := expandRepetition(top, min, max)
	p.push(rep)
	return nil
}

func (p *parser) requireTopNode(pos int) error {
	if len(p.stack) == 0 {
		return errUnexpected(pos, p.pattern[pos])
	}
	if _, ok := p.stack[len(p.stack)-1].(*ast.Node); !ok {
		return errUnexpected(pos, p.pattern[pos])
	}
	return nil
}

// expandRepetition implements spec.md §4.1's parse-time optimization: for
// X{m,n} where X is a MultipleChar and m > 1, expand into the literal X
// repeated m times (split by ast.NewLiteral into MaxNodeLen-sized
// MultipleChar nodes) plus, if m < n, a trailing
// Repetition(X, 0, n-m). This lets later stages index each atom separately
// and keeps long literal runs as a single scannable block wherever possible.
func expandRepetition(child *ast.Node, min, max int) *ast.Node {
	if child.Kind != ast.MultipleChar || min <= 1 {
		return ast.NewRepetition(child, min, max)
	}
	copies := []*ast.Node{ast.NewLiteral(bytes.Repeat(child.Chars, min))}
	if max == ast.Unbounded {
		copies = append(copies, ast.NewRepetition(ast.NewLiteral(append([]byte(nil), child.Chars...)), 0, ast.Unbounded))
		return ast.NewConcatenation(copies...)
	}
	if max == min {
		return ast.NewConcatenation(copies...)
	}
	copies = append(copies, ast.NewRepetition(ast.NewLiteral(append([]byte(nil), child.Chars...)), 0, max-min))
	return ast.NewConcatenation(copies...)
}

// isRepetitionStart reports whether a retroactive operator (*, +, ?, or a
// well-formed {...} repetition) begins at pos, without consuming input.
func (p *parser) isRepetitionStart(pos int) bool {
	if pos >= len(p.pattern) {
		return false
	}
	switch p.pattern[pos] {
	case '*', '+', '?':
		return true
	case '{':
		save := p.pos
		p.pos = pos
		_, _, err := p.parseRepetitionBounds()
		p.pos = save
		return err == nil
	default:
		return false
	}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseRepetitionBounds parses {m}, {m,}, {,n}, or {m,n} starting at the
// current '{'. On success it leaves p.pos just past the closing '}'.
func (p *parser) parseRepetitionBounds() (min, max int, err error) {
	start := p.pos
	i := p.pos + 1
	digits := func() (int, bool) {
		j := i
		for j < len(p.pattern) && isDigit(p.pattern[j]) {
			j++
		}
		if j == i {
			return 0, false
		}
		n := 0
		for _, c := range p.pattern[i:j] {
			n = n*10 + int(c-'0')
		}
		i = j
		return n, true
	}

	minVal, hasMin := digits()
	maxVal := ast.Unbounded
	hasMax := false
	if i < len(p.pattern) && p.pattern[i] == ',' {
		i++
		maxVal, hasMax = digits()
	} else {
		maxVal = minVal
		hasMax = hasMin
	}
	if !hasMin && !hasMax {
		return 0, 0, errExpected(start, "a number inside '{...}'")
	}
	if !hasMin {
		minVal = 0
	}
	if i >= len(p.pattern) || p.pattern[i] != '}' {
		return 0, 0, errExpected(i, "'}'")
	}
	i++
	finalMax := ast.Unbounded
	if hasMax {
		finalMax = maxVal
	}
	if hasMax && minVal > finalMax {
		return 0, 0, errInvalidRepetition(start, minVal, finalMax, "min exceeds max")
	}
	p.pos = i
	return minVal, finalMax, nil
}

func (p *parser) parseEscape() error {
	start := p.pos
	if p.pos+1 >= len(p.pattern) {
		return errExpected(start, "a character after '\\'")
	}
	c := p.pattern[p.pos+1]
	switch c {
	case '(', ')', '{', '}', '[', ']', '|', '*', '+', '?', '^', '$', '\\', '.':
		p.pos += 2
		p.pushLiteralByte(c)
		return nil
	case 'n':
		p.pos += 2
		p.pushLiteralByte('\n')
		return nil
	case 'r':
		p.pos += 2
		p.pushLiteralByte('\r')
		return nil
	case 't':
		p.pos += 2
		p.pushLiteralByte('\t')
		return nil
	case 'd':
		p.pos += 2
		p.push(digitBracket(false))
		return nil
	case 'D':
		p.pos += 2
		p.push(digitBracket(true))
		return nil
	case 's':
		p.pos += 2
		p.push(spaceBracket(false))
		return nil
	case 'S':
		p.pos += 2
		p.push(spaceBracket(true))
		return nil
	case 'x':
		if p.pos+3 >= len(p.pattern) {
			return errExpected(start, "two hex digits after '\\x'")
		}
		hi, ok1 := hexDigit(p.pattern[p.pos+2])
		lo, ok2 := hexDigit(p.pattern[p.pos+3])
		if !ok1 || !ok2 {
			return errExpected(start, "two hex digits after '\\x'")
		}
		p.pos += 4
		p.pushLiteralByte(byte(hi<<4 | lo))
		return nil
	default:
		return errUnsupported(start, fmt.Sprintf("escape \\%c", c))
	}
}

func hexDigit(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

func digitBracket(negated bool) *ast.Node {
	return ast.NewBracket(nil, []ast.ByteRange{{Lo: '0', Hi: '9'}}, negated)
}

func spaceBracket(negated bool) *ast.Node {
	return ast.NewBracket([]byte{' ', '\t'}, nil, negated)
}
