package compiler

import (
	"github.com/corejit/rejit/ast"
	"github.com/corejit/rejit/simd"

	"github.com/coregx/ahocorasick"
)

// scanner reports the next position at or after from where a match could
// possibly start, or ok=false if no such position exists in text[from:].
type scanner func(text []byte, from int) (next int, ok bool)

// buildScanner selects a scanning strategy for a set of anchors chosen by
// fastforward.Find, per spec.md §4.5's scanner table: a single short
// literal goes straight to simd.Index; two literals are each searched with
// simd.Index and the earliest hit wins; three or more literals go to
// Aho-Corasick (this module's wiring of github.com/coregx/ahocorasick,
// grounded on the teacher's meta.Engine.findAhoCorasick); any anchor set
// containing a non-literal (a Bracket/Period/line anchor) is left
// unscanned, since those anchors either cannot be searched for directly
// (Period) or are cheap enough to check per-position without a dedicated
// scan (a single Bracket anchor already gets evaluated every position by
// the simulator regardless).
//
// This is a deliberate simplification from a fully general scanner that
// would also skip ahead on Bracket/StartOfLine/EndOfLine anchors: doing so
// would need a per-anchor-kind scan primitive beyond what simd and
// ahocorasick provide here, and the fallback (scan every position) is
// still correct, only less selective.
func buildScanner(anchors []*ast.Node) scanner {
	literals := make([][]byte, 0, len(anchors))
	for _, a := range anchors {
		if a.Kind != ast.MultipleChar {
			return nil
		}
		literals = append(literals, a.Chars)
	}
	if len(literals) == 0 {
		return nil
	}

	if len(literals) == 1 {
		lit := literals[0]
		return func(text []byte, from int) (int, bool) {
			idx := simd.Index(text[from:], lit)
			if idx < 0 {
				return 0, false
			}
			return from + idx, true
		}
	}

	if len(literals) < 3 {
		return func(text []byte, from int) (int, bool) {
			best := -1
			for _, lit := range literals {
				idx := simd.Index(text[from:], lit)
				if idx >= 0 && (best == -1 || idx < best) {
					best = idx
				}
			}
			if best == -1 {
				return 0, false
			}
			return from + best, true
		}
	}

	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err != nil {
		// Fall back to the pairwise simd scan above rather than failing
		// compilation outright: the scanner is an optimization, not a
		// correctness requirement.
		return func(text []byte, from int) (int, bool) {
			best := -1
			for _, lit := range literals {
				idx := simd.Index(text[from:], lit)
				if idx >= 0 && (best == -1 || idx < best) {
					best = idx
				}
			}
			if best == -1 {
				return 0, false
			}
			return from + best, true
		}
	}

	return func(text []byte, from int) (int, bool) {
		m := auto.Find(text[from:], 0)
		if m == nil {
			return 0, false
		}
		return from + m.Start, true
	}
}
