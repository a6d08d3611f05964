// Package fastforward selects, for a regexp tree, a set of "anchor"
// sub-patterns that any match must contain, so a scanner can skip input
// positions that cannot possibly begin a match (spec.md §4.4).
package fastforward

import (
	"github.com/corejit/rejit/ast"
	"github.com/corejit/rejit/fastforward/suffixtree"
)

// Config controls finder limits, mirroring the teacher's
// literal.ExtractorConfig shape (MaxLiterals/MaxLiteralLen/MaxClassSize)
// adapted to this module's own tree.
type Config struct {
	MaxAnchors            int
	MaxAnchorLen          int
	EnableSuffixReduction bool
}

// DefaultConfig returns sane limits for the finder.
func DefaultConfig() Config {
	return Config{MaxAnchors: 16, MaxAnchorLen: ast.MaxNodeLen, EnableSuffixReduction: true}
}

// Find selects anchors for root per the per-node-type table in spec.md
// §4.4. ok is false when no anchor set could be guaranteed (e.g. the whole
// pattern is optional), meaning the caller must fall back to scanning every
// position. reduced reports whether the suffix-tree common-prefix reduction
// (reduceAlternation) fired anywhere in the tree, for Stats().
func Find(root *ast.Node, cfg Config) (anchors []*ast.Node, ok bool, reduced bool) {
	var reductions int
	anchors, ok = find(root, cfg, &reductions)
	return anchors, ok, reductions > 0
}

func find(n *ast.Node, cfg Config, reductions *int) ([]*ast.Node, bool) {
	switch n.Kind {
	case ast.MultipleChar, ast.Period, ast.Bracket, ast.StartOfLine, ast.EndOfLine:
		return []*ast.Node{n}, true

	case ast.Alternation:
		return findAlternation(n, cfg, reductions)

	case ast.Concatenation:
		return findConcatenation(n, cfg, reductions)

	case ast.Repetition:
		if n.Min >= 1 {
			return find(n.Child, cfg, reductions)
		}
		return nil, false

	default: // Epsilon
		return nil, false
	}
}

func findAlternation(n *ast.Node, cfg Config, reductions *int) ([]*ast.Node, bool) {
	var union []*ast.Node
	allLiterals := true
	var literals [][]byte
	for _, ch := range n.Children {
		childAnchors, ok := find(ch, cfg, reductions)
		if !ok {
			return nil, false
		}
		union = append(union, childAnchors...)
		if ch.Kind != ast.MultipleChar {
			allLiterals = false
		} else {
			literals = append(literals, ch.Chars)
		}
	}

	if cfg.EnableSuffixReduction && allLiterals && len(literals) >= 2 {
		if reduced, ok := reduceAlternation(literals, union, cfg); ok {
			*reductions++
			return []*ast.Node{reduced}, true
		}
	}
	return capAnchors(union, cfg), true
}

// findConcatenation anchors only on the first child. A scanner's job is to
// advance `from` to a position that is provably <= the true match begin
// (spec.md §4.4); that only holds for an anchor whose own match is
// guaranteed to start exactly where the concatenation starts. Every child
// after the first can sit at a variable — often unbounded, e.g. "a+bcde"'s
// "bcde" — offset from the concatenation's start, so picking the
// highest-scoring child regardless of position (as this used to do) could
// fast-forward past the true, earlier match start. Restricting to the first
// child gives up some scanning selectivity but keeps every anchor
// prefix-reachable, which is the correctness property the scanner and
// Program.advance depend on.
func findConcatenation(n *ast.Node, cfg Config, reductions *int) ([]*ast.Node, bool) {
	if len(n.Children) == 0 {
		return nil, false
	}
	anchors, ok := find(n.Children[0], cfg, reductions)
	if !ok {
		return nil, false
	}
	return capAnchors(anchors, cfg), true
}

func capAnchors(anchors []*ast.Node, cfg Config) []*ast.Node {
	max := cfg.MaxAnchors
	if max <= 0 || len(anchors) <= max {
		return anchors
	}
	return anchors[:max]
}

// reduceAlternation implements spec.md §4.4's suffix-tree-based common
// substring reducer: when every literal alternative shares a common
// substring that is worth scanning for on its own, it replaces the union
// with a single anchor.
//
// Unlike the source design, this module does not splice "linking" nodes
// into the matching/control lists to reconnect each original's entry/exit
// through the reduced anchor: the simulator already matches every original
// alternative directly via the ordinary matching list built by lister.Build,
// so the reduced anchor here is purely a fast-forward scanning hint (find a
// candidate window containing the common substring, then let the simulator
// verify it exactly as it would have without the reduction). This keeps the
// anchor selection isolated from tree structure, matching this module's
// separation between ast (the tree lister/indexer/simulator need) and
// fastforward (a pure hint).
//
// The reduction is only adopted when the common substring is also a common
// *prefix* of every literal. A substring sitting elsewhere (mid-string or
// a common suffix) would need a backward NFA pass from its occurrence to
// recover the true match begin — this module has no such pass (see
// Program.advance and findConcatenation's matching restriction), so
// fast-forwarding straight to it could skip over an earlier, valid match.
// A common-prefix substring carries no such risk: it starts exactly where
// every original branch's own match would have started.
//
// Because the reduced anchor's length is bounded by the shortest original
// literal, comparing its score against the *sum* of the originals (as a
// literal reading of spec.md's wording would) can never pass for two or
// more branches. Comparing against the weakest individual branch instead
// gives a real, reachable threshold: the reduction fires exactly when the
// shortest branch is itself a common prefix of every other branch, which
// means scanning for that one prefix is never less selective than scanning
// for the weakest original branch alone would have been.
func reduceAlternation(literals [][]byte, original []*ast.Node, cfg Config) (*ast.Node, bool) {
	sub, ok := suffixtree.LongestCommonSubstring(literals)
	if !ok || len(sub) == 0 {
		return nil, false
	}
	if !isCommonPrefix(sub, literals) {
		return nil, false
	}
	if len(sub) > cfg.MaxAnchorLen {
		sub = sub[:cfg.MaxAnchorLen]
	}
	reduced := ast.NewLiteral(sub)
	if NodeScore(reduced) < minNodeScore(original) {
		return nil, false
	}
	return reduced, true
}

func isCommonPrefix(sub []byte, literals [][]byte) bool {
	for _, lit := range literals {
		if !hasBytePrefix(lit, sub) {
			return false
		}
	}
	return true
}

func hasBytePrefix(s, prefix []byte) bool {
	if len(s) < len(prefix) {
		return false
	}
	for i := range prefix {
		if s[i] != prefix[i] {
			return false
		}
	}
	return true
}

func minNodeScore(nodes []*ast.Node) int {
	if len(nodes) == 0 {
		return 0
	}
	min := NodeScore(nodes[0])
	for _, n := range nodes[1:] {
		if s := NodeScore(n); s < min {
			min = s
		}
	}
	return min
}
