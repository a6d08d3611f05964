// Package lister flattens an indexed regexp tree into the matching list and
// control list the simulator consumes, lowering Repetition nodes into
// concatenations of copies plus ε-transitions along the way, per spec.md
// §4.3.
package lister

import (
	"github.com/corejit/rejit/ast"
	"github.com/corejit/rejit/indexer"
)

type listerState struct {
	info *ast.RegexpInfo
}

// Build walks info.Root, populating info.Matching and info.Control.
// info.EntryState/ExitState/LastState/MaxMatchLength must already be set
// (by the caller, immediately after indexer.Index) before calling Build,
// since lowering continues state numbering from info.LastState.
func Build(info *ast.RegexpInfo) {
	l := &listerState{info: info}
	l.walk(info.Root)
}

func (l *listerState) walk(n *ast.Node) {
	switch n.Kind {
	case ast.MultipleChar, ast.Period, ast.Bracket:
		l.info.Matching = append(l.info.Matching, n)
	case ast.StartOfLine, ast.EndOfLine:
		l.info.Control = append(l.info.Control, n)
	case ast.Epsilon:
		l.info.Control = append(l.info.Control, n)
	case ast.Concatenation, ast.Alternation:
		for _, ch := range n.Children {
			l.walk(ch)
		}
	case ast.Repetition:
		l.lowerRepetition(n)
	}
}

func (l *listerState) emitEpsilon(entry, exit int) {
	if entry == exit {
		return
	}
	e := ast.NewEpsilon(entry, exit)
	l.info.Adopt(e)
	l.info.Control = append(l.info.Control, e)
}

// buildCopies returns `count` occurrences of child chained in sequence:
// copies[0] is child itself (already indexed by the indexer's minimal
// Repetition handling), and copies[1:] are deep copies re-indexed
// continuing from info.LastState, each joined to the previous copy's exit
// by an ε-edge. It does not list them; the caller walks
// each copy afterward so nested repetitions inside child lower correctly
// too (e.g. "(a.){2,3}{2,3}").
func (l *listerState) buildCopies(child *ast.Node, count int) []*ast.Node {
	copies := make([]*ast.Node, count)
	copies[0] = child
	for i := 1; i < count; i++ {
		c := ast.DeepCopy(child)
		l.info.LastState = indexer.IndexFrom(c, l.info.LastState+1)
		l.emitEpsilon(copies[i-1].ExitState, c.EntryState)
		l.info.Adopt(c)
		copies[i] = c
	}
	return copies
}

// lowerRepetition implements spec.md §4.3's three cases.
func (l *listerState) lowerRepetition(rep *ast.Node) {
	entry, exit := rep.EntryState, rep.ExitState
	min, max := rep.Min, rep.Max

	if min == 0 && max == 0 {
		// Pure bypass: the child is built but never listed, so it is
		// provably unreachable (spec.md §9, confirmed intentional).
		l.emitEpsilon(entry, exit)
		return
	}

	if max == ast.Unbounded {
		count := min
		if count == 0 {
			count = 1
		}
		copies := l.buildCopies(rep.Child, count)
		for _, c := range copies {
			l.walk(c)
		}
		insideEntry := copies[0].EntryState
		insideExit := copies[len(copies)-1].ExitState

		// Loop back-edge: inverted (entry, exit) marks it as a loop per
		// spec.md §3's invariant note.
		l.emitEpsilon(insideExit, insideEntry) // back edge: entry field = insideExit (larger), exit field = insideEntry
		if min == 0 {
			l.emitEpsilon(entry, exit)       // bypass: skip the loop entirely
			l.emitEpsilon(entry, insideEntry) // enter the loop
		}
		l.emitEpsilon(insideExit, exit) // leave the loop after any iteration
		return
	}

	// Finite max >= 1: concatenation of max copies with an early-exit
	// option after each copy at or beyond position max(m,1).
	count := max
	copies := l.buildCopies(rep.Child, count)
	for _, c := range copies {
		l.walk(c)
	}
	boundaryStart := min
	if boundaryStart < 1 {
		boundaryStart = 1
	}
	for i := boundaryStart; i <= count; i++ {
		l.emitEpsilon(copies[i-1].ExitState, exit)
	}
	if min == 0 {
		l.emitEpsilon(entry, exit)
	}
}
