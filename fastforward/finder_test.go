package fastforward

import (
	"testing"

	"github.com/corejit/rejit/ast"
	"github.com/corejit/rejit/indexer"
)

func TestFindConcatenationAnchorsOnFirstChild(t *testing.T) {
	// Even though "longer" scores higher, only the first child's match is
	// guaranteed to start where the concatenation starts; anchoring on a
	// later child could skip past an earlier valid match (see
	// findConcatenation's doc comment).
	root := ast.NewConcatenation(ast.NewLiteral([]byte("ab")), ast.NewPeriod(), ast.NewLiteral([]byte("longer")))
	indexer.Index(root)

	anchors, ok, _ := Find(root, DefaultConfig())
	if !ok {
		t.Fatal("Find returned ok=false")
	}
	if len(anchors) != 1 || anchors[0].Kind != ast.MultipleChar || string(anchors[0].Chars) != "ab" {
		t.Errorf("anchors = %v, want the single literal \"ab\" (the first child)", anchors)
	}
}

func TestFindConcatenationFirstChildOptionalFails(t *testing.T) {
	// The first child is optional (min=0), so no prefix position is
	// guaranteed; the whole concatenation must report no anchor rather than
	// fall through to a later, non-prefix-safe child.
	root := ast.NewConcatenation(
		ast.NewRepetition(ast.NewLiteral([]byte("x")), 0, ast.Unbounded),
		ast.NewLiteral([]byte("needle")),
	)
	indexer.Index(root)

	_, ok, _ := Find(root, DefaultConfig())
	if ok {
		t.Error("Find should fail when the first child is optional")
	}
}

func TestFindAlternationCommonPrefixReduction(t *testing.T) {
	// "cat" is itself a common prefix of all three branches and is not
	// shorter than the weakest original branch's own anchor, so the
	// reduction should fire here (unlike TestFindAlternationUnionOfLiterals).
	root := ast.NewAlternation(
		ast.NewLiteral([]byte("cat")),
		ast.NewLiteral([]byte("category")),
		ast.NewLiteral([]byte("catalog")),
	)
	indexer.Index(root)

	anchors, ok, reduced := Find(root, DefaultConfig())
	if !ok {
		t.Fatal("Find returned ok=false")
	}
	if len(anchors) != 1 || anchors[0].Kind != ast.MultipleChar || string(anchors[0].Chars) != "cat" {
		t.Errorf("anchors = %v, want the single reduced literal \"cat\"", anchors)
	}
	if !reduced {
		t.Error("reduced = false, want true")
	}
}

func TestFindOptionalRepetitionFails(t *testing.T) {
	root := ast.NewRepetition(ast.NewLiteral([]byte("x")), 0, ast.Unbounded)
	indexer.Index(root)

	_, ok, _ := Find(root, DefaultConfig())
	if ok {
		t.Error("Find should fail for an optional (min=0) repetition: no byte is guaranteed")
	}
}

func TestFindRequiredRepetitionSucceeds(t *testing.T) {
	root := ast.NewRepetition(ast.NewLiteral([]byte("x")), 1, ast.Unbounded)
	indexer.Index(root)

	anchors, ok, _ := Find(root, DefaultConfig())
	if !ok || len(anchors) != 1 {
		t.Fatalf("Find = %v, %v; want one anchor", anchors, ok)
	}
}

func TestScoreOrdering(t *testing.T) {
	lit := ast.NewLiteral([]byte("hello"))
	period := ast.NewPeriod()
	if NodeScore(lit) <= NodeScore(period) {
		t.Errorf("literal score %d should exceed period score %d", NodeScore(lit), NodeScore(period))
	}
}

func TestFindAlternationUnionOfLiterals(t *testing.T) {
	// "prefix_" is a common prefix of all three branches, but at 7 bytes it
	// scores lower than the weakest original branch's own 10-byte literal
	// anchor, so reduceAlternation's cost-based threshold rejects it and
	// every branch's literal should still appear as its own anchor.
	root := ast.NewAlternation(
		ast.NewLiteral([]byte("prefix_one")),
		ast.NewLiteral([]byte("prefix_two")),
		ast.NewLiteral([]byte("prefix_six")),
	)
	indexer.Index(root)

	anchors, ok, reduced := Find(root, DefaultConfig())
	if !ok {
		t.Fatal("Find returned ok=false")
	}
	if len(anchors) != 3 {
		t.Fatalf("anchors = %v, want the 3 original literals", anchors)
	}
	if reduced {
		t.Error("reduced = true, want false")
	}
}
