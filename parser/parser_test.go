package parser

import (
	"testing"

	"github.com/corejit/rejit/ast"
)

func TestParseValid(t *testing.T) {
	patterns := []string{
		"hello",
		"a|b|c",
		"a*", "a+", "a?",
		"a{2,4}", "a{3}", "a{2,}",
		"(ab)+",
		"[a-z]+",
		"[[:digit:]]+",
		"[^a-z]",
		`\d+\s*\S*`,
		"^abc$",
		`a\.b`,
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			if _, err := Parse(p); err != nil {
				t.Errorf("Parse(%q) unexpected error: %v", p, err)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	patterns := []string{
		"(abc",
		"abc)",
		"abc|",
		"|abc",
		"a{4,2}",
		"a{",
		"*abc",
		"[a-z",
		`\`,
		`\q`,
	}
	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			if _, err := Parse(p); err == nil {
				t.Errorf("Parse(%q) expected error, got none", p)
			}
		})
	}
}

func TestParseAlternationStructure(t *testing.T) {
	root, err := Parse("cat|dog")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != ast.Alternation {
		t.Fatalf("root kind = %v, want Alternation", root.Kind)
	}
	if len(root.Children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(root.Children))
	}
}

func TestParseLiteralRunMerges(t *testing.T) {
	root, err := Parse("abc")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != ast.MultipleChar {
		t.Fatalf("root kind = %v, want MultipleChar", root.Kind)
	}
	if string(root.Chars) != "abc" {
		t.Errorf("Chars = %q, want %q", root.Chars, "abc")
	}
}

func TestParseRepetitionRetroactiveBreak(t *testing.T) {
	// "ab*" must not merge 'b' and the '*' operator into one literal run:
	// '*' should apply only to 'b'.
	root, err := Parse("ab*")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if root.Kind != ast.Concatenation || len(root.Children) != 2 {
		t.Fatalf("root = %+v, want a 2-child Concatenation", root)
	}
	if root.Children[0].Kind != ast.MultipleChar || string(root.Children[0].Chars) != "a" {
		t.Errorf("first child = %+v, want literal \"a\"", root.Children[0])
	}
	if root.Children[1].Kind != ast.Repetition {
		t.Errorf("second child kind = %v, want Repetition", root.Children[1].Kind)
	}
}
