package lister

import (
	"testing"

	"github.com/corejit/rejit/ast"
	"github.com/corejit/rejit/indexer"
)

func build(root *ast.Node) *ast.RegexpInfo {
	info := ast.NewRegexpInfo(root)
	info.LastState = indexer.Index(root)
	info.EntryState = root.EntryState
	info.ExitState = root.ExitState
	info.MaxMatchLength = root.MaxMatchLength()
	Build(info)
	return info
}

func TestBuildSimpleLiteralListsItself(t *testing.T) {
	lit := ast.NewLiteral([]byte("ab"))
	info := build(lit)
	if len(info.Matching) != 1 || info.Matching[0] != lit {
		t.Fatalf("Matching = %v, want [lit]", info.Matching)
	}
	if len(info.Control) != 0 {
		t.Fatalf("Control = %v, want empty", info.Control)
	}
}

func TestBuildZeroZeroRepetitionBypasses(t *testing.T) {
	child := ast.NewLiteral([]byte("x"))
	rep := ast.NewRepetition(child, 0, 0)
	info := build(rep)

	// The child must never be walked: it is structurally unreachable.
	for _, m := range info.Matching {
		if m == child {
			t.Fatalf("Matching contains the {0,0} child, want it unreachable")
		}
	}
	if len(info.Control) == 0 {
		t.Fatalf("Control is empty, want at least the bypass epsilon")
	}
	found := false
	for _, c := range info.Control {
		if c.Kind == ast.Epsilon && c.EntryState == rep.EntryState && c.ExitState == rep.ExitState {
			found = true
		}
	}
	if !found {
		t.Errorf("no bypass epsilon from %d to %d in Control", rep.EntryState, rep.ExitState)
	}
}

func TestBuildUnboundedRepetitionHasBackEdge(t *testing.T) {
	child := ast.NewLiteral([]byte("a"))
	rep := ast.NewRepetition(child, 1, ast.Unbounded)
	info := build(rep)

	backEdge := false
	for _, c := range info.Control {
		if c.Kind == ast.Epsilon && c.EntryState > c.ExitState {
			backEdge = true
		}
	}
	if !backEdge {
		t.Error("no inverted (entry > exit) back-edge epsilon found for unbounded repetition")
	}
}

func TestBuildBoundedRepetitionBuildsCopies(t *testing.T) {
	child := ast.NewLiteral([]byte("a"))
	rep := ast.NewRepetition(child, 1, 3)
	info := build(rep)

	count := 0
	for _, m := range info.Matching {
		if m.Kind == ast.MultipleChar && string(m.Chars) == "a" {
			count++
		}
	}
	if count != 3 {
		t.Errorf("found %d literal copies in Matching, want 3", count)
	}
}
