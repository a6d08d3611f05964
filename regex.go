// Package rejit implements a POSIX extended regular expression (ERE)
// matcher built around an NFA state-ring simulation with fast-forward
// scanning, instead of the Thompson-NFA-plus-DFA-cache approach most Go
// regex packages use.
//
// rejit does not support capture groups: it reports match boundaries for
// four match modes (Full, Anywhere, First, All), following POSIX
// leftmost-longest semantics rather than Perl's leftmost-first.
//
// Basic usage:
//
//	re, err := rejit.Compile(`[0-9]+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if re.MatchString("order 42") {
//	    fmt.Println("contains a number")
//	}
//
//	m, ok := re.FindString("order 42")
//	fmt.Println(m, ok) // 42 true
//
// Custom limits:
//
//	config := rejit.DefaultConfig()
//	config.MaxAnchors = 4
//	re, err := rejit.CompileWithConfig(`foo|bar|baz`, config)
package rejit

import (
	"github.com/corejit/rejit/compiler"
)

// Config controls compilation limits and feature toggles. See
// compiler.Config for field documentation.
type Config = compiler.Config

// DefaultConfig returns the limits used by Compile and MustCompile.
func DefaultConfig() Config {
	return compiler.DefaultConfig()
}

// Match is a matched byte range [Begin, End) within a searched text.
type Match = compiler.Match

// Regex is a compiled pattern, safe for concurrent use by multiple
// goroutines: every search builds its own simulator.Ring (see
// compiler.Program), so no mutable state is shared across calls.
type Regex struct {
	prog *compiler.Program
}

// Compile compiles pattern with DefaultConfig. Syntax is POSIX ERE:
// ., *, +, ?, |, (), [], ^, $, and bounded repetition {m,n}.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with custom limits.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	prog, err := compiler.Compile(pattern, config)
	if err != nil {
		return nil, err
	}
	return &Regex{prog: prog}, nil
}

// MustCompile compiles pattern with DefaultConfig and panics on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rejit: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern the Regex was compiled from.
func (r *Regex) String() string { return r.prog.Pattern() }

// Stats returns the Regex's running fast-forward/simulator counters.
func (r *Regex) Stats() *compiler.Stats { return r.prog.Stats() }

// MatchFull reports whether text matches the pattern in its entirety.
func (r *Regex) MatchFull(text []byte) bool {
	_, ok := r.prog.Full(text)
	return ok
}

// MatchAnywhere reports whether the pattern matches any substring of text.
func (r *Regex) MatchAnywhere(text []byte) bool {
	return r.prog.Anywhere(text)
}

// MatchString reports whether the pattern matches any substring of s.
func (r *Regex) MatchString(s string) bool {
	return r.MatchAnywhere([]byte(s))
}

// Find returns the leftmost (POSIX leftmost-longest) match in text.
func (r *Regex) Find(text []byte) (Match, bool) {
	return r.prog.First(text)
}

// FindString returns the text of the leftmost match in s, and whether one
// was found.
func (r *Regex) FindString(s string) (string, bool) {
	m, ok := r.Find([]byte(s))
	if !ok {
		return "", false
	}
	return s[m.Begin:m.End], true
}

// FindAll returns every non-overlapping match in text, left to right.
func (r *Regex) FindAll(text []byte) []Match {
	return r.prog.All(text)
}

// FindAllString returns the text of every non-overlapping match in s.
func (r *Regex) FindAllString(s string) []string {
	matches := r.FindAll([]byte(s))
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = s[m.Begin:m.End]
	}
	return out
}
