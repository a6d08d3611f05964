package compiler

import "github.com/corejit/rejit/ast"

// validateNodeLen walks n and reports whether every MultipleChar node's
// literal run is at most maxLen, stopping at the first one that exceeds it. ast.MaxNodeLen already bounds every node the
// parser itself produces (NewLiteral splits longer runs into a
// Concatenation), so this only ever rejects when a caller's Config.MaxNodeLen
// tightens that structural default further.
func validateNodeLen(n *ast.Node, maxLen int) bool {
	switch n.Kind {
	case ast.MultipleChar:
		return len(n.Chars) <= maxLen
	case ast.Concatenation, ast.Alternation:
		for _, ch := range n.Children {
			if !validateNodeLen(ch, maxLen) {
				return false
			}
		}
		return true
	case ast.Repetition:
		return validateNodeLen(n.Child, maxLen)
	default:
		return true
	}
}

// estimateCodeBytes sizes the code buffer a real native-code Emitter would
// need for info, standing in for the per-node instruction counts such an
// Emitter would produce. The in-process simulator never consults this
// estimate to run a search; it only gates Config.MaxCodeBytes and sizes the
// execmem reservation Compile makes so that package is genuinely exercised
// outside of its own tests.
func estimateCodeBytes(info *ast.RegexpInfo) int {
	return len(info.Matching)*16 + len(info.Control)*8
}
