// Package indexer assigns NFA state numbers to a parsed regexp tree,
// per spec.md §4.2.
//
// Every node's EntryState/ExitState is assigned exactly once, is
// non-negative, and satisfies ExitState >= EntryState, matching the
// invariant in spec.md §3 (ε back-edges, synthesized later by the lister,
// are the sole exception).
package indexer

import "github.com/corejit/rejit/ast"

// Index walks root depth-first assigning state numbers starting at 0 and
// returns the highest state number used (the tree's global exit state,
// which is also RegexpInfo.LastState before any lowering runs).
func Index(root *ast.Node) int {
	return IndexFrom(root, 0)
}

// IndexFrom indexes root with states starting at start, returning the next
// free state number after it. The lister uses this to continue numbering
// when it lowers a Repetition into extra concatenated copies.
func IndexFrom(root *ast.Node, start int) int {
	return indexNode(root, start)
}

func indexNode(n *ast.Node, cur int) int {
	switch n.Kind {
	case ast.MultipleChar, ast.Period, ast.Bracket, ast.StartOfLine, ast.EndOfLine:
		n.EntryState = cur
		n.ExitState = cur + 1
		return n.ExitState

	case ast.Concatenation:
		if len(n.Children) == 0 {
			n.EntryState, n.ExitState = cur, cur
			return cur
		}
		entry := cur
		for _, ch := range n.Children {
			cur = indexNode(ch, cur)
		}
		n.EntryState = entry
		n.ExitState = cur
		return cur

	case ast.Alternation:
		return indexAlternation(n, cur)

	case ast.Repetition:
		// Minimal handling here: index only the child's own occurrence.
		// The lister replaces/expands this node's subtree entirely during
		// lowering and re-indexes whatever it builds, per spec.md §4.2/§4.3.
		//
		// The repetition's own ExitState must be a state distinct from the
		// child's exit: childExit is also the "after exactly one copy"
		// boundary, and for min>=2 that boundary is reached without having
		// satisfied the minimum. Aliasing the two let a single copy of a
		// grouped/non-literal child (e.g. "(a.){2}") satisfy the whole
		// repetition. Minting a fresh state here means the lister's
		// early-exit epsilons (wired only for copies >= min) are the sole
		// path into it.
		childExit := indexNode(n.Child, cur)
		n.EntryState = n.Child.EntryState
		n.ExitState = childExit + 1
		return n.ExitState

	default:
		// Epsilon: synthesized only, never presented to Index.
		return cur
	}
}

// indexAlternation gives every child the same EntryState (so the matching
// list's natural "if entry-slot occupied" fan-out implements the OR without
// an explicit split instruction), then unifies every child's ExitState to
// the single largest exit state any branch produced — reusing that state
// rather than minting a fresh join id, per spec.md §4.2's "post-processing
// decrement/increment of last".
func indexAlternation(n *ast.Node, cur int) int {
	entry := cur
	maxExit := cur
	childExits := make([]int, len(n.Children))
	for i, ch := range n.Children {
		childExits[i] = indexNode(ch, entry)
		if childExits[i] > maxExit {
			maxExit = childExits[i]
		}
	}
	for _, ch := range n.Children {
		ch.ExitState = maxExit
	}
	n.EntryState = entry
	n.ExitState = maxExit
	return maxExit
}
