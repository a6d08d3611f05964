package fastforward

import "github.com/corejit/rejit/ast"

// NodeScore approximates an anchor's selectivity: a longer literal skips
// faster (higher score), Period matches nearly anything (negative score),
// and Bracket/StartOfLine/EndOfLine score from a small static table, per
// spec.md §4.4.
func NodeScore(n *ast.Node) int {
	switch n.Kind {
	case ast.MultipleChar:
		return len(n.Chars) * 10
	case ast.Period:
		return -1000
	case ast.Bracket:
		return bracketScore(n)
	case ast.StartOfLine, ast.EndOfLine:
		return 2
	default:
		return 0
	}
}

func bracketScore(n *ast.Node) int {
	size := len(n.BracketChars)
	for _, r := range n.BracketRanges {
		size += int(r.Hi-r.Lo) + 1
	}
	if n.Negated {
		size = 256 - size
	}
	switch {
	case size <= 2:
		return 8
	case size <= 8:
		return 4
	case size <= 32:
		return 1
	default:
		return -50
	}
}

// Score sums the NodeScore of an anchor set. compiler.Compile compares it
// against Config.MinAnchorScore before adopting the set.
func Score(anchors []*ast.Node) int {
	total := 0
	for _, n := range anchors {
		total += NodeScore(n)
	}
	return total
}
