package compiler

// Config controls compilation limits and feature toggles, mirroring the
// teacher's nfa.CompilerConfig / meta.Config shape (a plain struct of
// tunables with a DefaultConfig constructor) adapted to this module's own
// pipeline stages.
type Config struct {
	// MaxStates bounds the number of NFA states a compiled program may use
	// (indexer.Index's highest assigned state number). Compilation fails
	// with ErrStateBudget if exceeded.
	MaxStates int

	// MaxNodeLen bounds the byte length of any single MultipleChar literal
	// node (ast.MaxNodeLen is the structural default; this field lets a
	// caller tighten it further).
	MaxNodeLen int

	// MaxCodeBytes bounds the code buffer Compile reserves through execmem,
	// sized by estimateCodeBytes. Compilation fails with ErrCodeBudget if
	// the estimate exceeds it.
	MaxCodeBytes int

	// EnableFastForward toggles anchor-based scan skipping (spec.md §4.4).
	// Disabling it forces every search to start the simulator at every
	// position, useful for differential testing against a known-correct
	// path.
	EnableFastForward bool

	// EnableSuffixReduction toggles the suffix-tree common-substring
	// reduction within fastforward.Find for literal alternations.
	EnableSuffixReduction bool

	// MaxAnchors bounds how many anchor nodes fastforward.Find returns.
	MaxAnchors int

	// MaxAnchorLen bounds the byte length of an anchor literal synthesized
	// by suffix reduction; literal anchors taken directly from the pattern
	// are not truncated.
	MaxAnchorLen int

	// MinAnchorScore rejects an anchor set whose fastforward.Score is below
	// this threshold, falling back to scanning every position rather than
	// skipping on a poorly selective anchor (e.g. a Period or a wide
	// Bracket).
	MinAnchorScore int

	// Debug, when true, makes Program.Explain() return a description of
	// the compiled plan; otherwise Explain returns "". Stats are collected
	// either way.
	Debug bool
}

// DefaultConfig returns the limits used when a caller does not supply one.
func DefaultConfig() Config {
	return Config{
		MaxStates:             1 << 16,
		MaxNodeLen:            64,
		MaxCodeBytes:          1 << 20,
		EnableFastForward:     true,
		EnableSuffixReduction: true,
		MaxAnchors:            16,
		MaxAnchorLen:          64,
		MinAnchorScore:        1,
		Debug:                 false,
	}
}
