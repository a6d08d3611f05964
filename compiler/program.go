// Package compiler drives the pipeline from a parsed tree to a runnable
// Program: indexing, lowering, fast-forward anchor selection, and the
// compiled-code handles a real native-code Emitter would produce (spec.md
// §3, §9). It is the package that owns the per-mode compiled artifacts
// spec.md's RegexpInfo describes, since ast deliberately does not (see
// ast.RegexpInfo's doc comment).
package compiler

import (
	"fmt"
	"sync/atomic"

	"github.com/corejit/rejit/ast"
	"github.com/corejit/rejit/execmem"
	"github.com/corejit/rejit/fastforward"
	"github.com/corejit/rejit/indexer"
	"github.com/corejit/rejit/lister"
	"github.com/corejit/rejit/parser"
	"github.com/corejit/rejit/simulator"
)

// Match is a single match's half-open byte range [Begin, End) in the
// searched text.
type Match struct {
	Begin, End int
}

// Stats holds atomic counters observable while a Program runs searches
// concurrently, mirroring the teacher's meta.Engine stats block (plain
// uint64 counters bumped with sync/atomic, no logging library involved).
type Stats struct {
	fastForwardHits         uint64
	fastForwardSkippedBytes uint64
	simulatorSteps          uint64
	suffixReductionApplied  uint64
}

func (s *Stats) FastForwardHits() uint64         { return atomic.LoadUint64(&s.fastForwardHits) }
func (s *Stats) FastForwardSkippedBytes() uint64 { return atomic.LoadUint64(&s.fastForwardSkippedBytes) }
func (s *Stats) SimulatorSteps() uint64          { return atomic.LoadUint64(&s.simulatorSteps) }
func (s *Stats) SuffixReductionApplied() uint64  { return atomic.LoadUint64(&s.suffixReductionApplied) }

// Program is a compiled pattern: an indexed/lowered ast.RegexpInfo plus the
// fast-forward scanner and simulation driver built for it. A Program is
// immutable after Compile returns and safe for concurrent use by multiple
// goroutines, since simulator.New builds a fresh, unshared Ring per search.
type Program struct {
	pattern string
	info    *ast.RegexpInfo
	config  Config
	scan    scanner // nil if no fast-forward scanner was selected
	code    execmem.Executable
	stats   Stats
}

// Compile parses, indexes, lowers, and selects a fast-forward scanner for
// pattern, in that order — the same sequence spec.md §3 lists for building
// a RegexpInfo, split across the parser/indexer/lister/fastforward
// packages this module factors the teacher's monolithic nfa.Compiler into.
func Compile(pattern string, config Config) (*Program, error) {
	root, err := parser.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	info := ast.NewRegexpInfo(root)
	info.LastState = indexer.Index(root)
	info.EntryState = root.EntryState
	info.ExitState = root.ExitState
	info.MaxMatchLength = root.MaxMatchLength()

	if config.MaxStates > 0 && info.LastState+1 > config.MaxStates {
		return nil, &CompileError{Pattern: pattern, Err: ErrStateBudget}
	}
	if config.MaxNodeLen > 0 && !validateNodeLen(root, config.MaxNodeLen) {
		return nil, &CompileError{Pattern: pattern, Err: ErrNodeLen}
	}

	lister.Build(info)

	codeSize := estimateCodeBytes(info)
	if config.MaxCodeBytes > 0 && codeSize > config.MaxCodeBytes {
		return nil, &CompileError{Pattern: pattern, Err: ErrCodeBudget}
	}
	buf, err := execmem.Default.Reserve(codeSize)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	// No Emitter produces real machine code yet (see execmem's package
	// doc), so the reserved buffer is written with a zeroed placeholder
	// sized to the estimate; this exercises the reserve/write/commit path
	// a future native-code backend would use without pretending to run it.
	if err := buf.Write(make([]byte, codeSize)); err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	code, err := buf.Commit()
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: ErrMemoryProtection}
	}

	p := &Program{pattern: pattern, info: info, config: config, code: code}

	if config.EnableFastForward {
		ffCfg := fastforward.Config{
			MaxAnchors:            config.MaxAnchors,
			MaxAnchorLen:          config.MaxAnchorLen,
			EnableSuffixReduction: config.EnableSuffixReduction,
		}
		if anchors, ok, reduced := fastforward.Find(root, ffCfg); ok {
			if fastforward.Score(anchors) >= config.MinAnchorScore {
				info.FastForward = anchors
				p.scan = buildScanner(anchors)
				if reduced {
					atomic.AddUint64(&p.stats.suffixReductionApplied, 1)
				}
			}
		}
	}

	return p, nil
}

// MustCompile is like Compile but panics on error, matching the
// regexp.MustCompile convention the rest of the Go ecosystem expects.
func MustCompile(pattern string, config Config) *Program {
	p, err := Compile(pattern, config)
	if err != nil {
		panic(err)
	}
	return p
}

// Stats returns the program's running counters.
func (p *Program) Stats() *Stats { return &p.stats }

// Pattern returns the source pattern the Program was compiled from.
func (p *Program) Pattern() string { return p.pattern }

// CodeBytes returns the size of the execmem-reserved code buffer backing
// this Program. It is a budget/diagnostic figure, not a real machine-code
// size: no Emitter currently populates the buffer with anything the CPU
// could run.
func (p *Program) CodeBytes() int { return p.code.Len() }

// Explain returns a human-readable description of the strategy Compile
// chose for this pattern — state count, whether a fast-forward scanner was
// selected and with how many anchors, and the reserved code-buffer size.
// It returns "" unless Config.Debug was set, so that building the string
// never costs anything on a hot compile path that doesn't ask for it.
func (p *Program) Explain() string {
	if !p.config.Debug {
		return ""
	}
	scanner := "none"
	if p.scan != nil {
		scanner = fmt.Sprintf("%d anchors", len(p.info.FastForward))
	}
	return fmt.Sprintf("pattern=%q states=%d fastforward=%s codeBytes=%d",
		p.pattern, p.info.LastState+1, scanner, p.code.Len())
}

func (p *Program) newSimulator() *simulator.Simulator {
	return simulator.New(p.info)
}

// Full reports whether text matches the pattern in its entirety (an
// implicit ^...$ anchor at both ends).
func (p *Program) Full(text []byte) (Match, bool) {
	sim := p.newSimulator()
	var found Match
	ok := false
	steps := sim.Search(text, 0, true, func(begin, end int) bool {
		if begin == 0 && end == len(text) {
			found = Match{Begin: begin, End: end}
			ok = true
			return true
		}
		return false
	})
	atomic.AddUint64(&p.stats.simulatorSteps, uint64(steps))
	return found, ok
}

// Anywhere reports whether the pattern matches any substring of text.
func (p *Program) Anywhere(text []byte) bool {
	_, ok := p.First(text)
	return ok
}

// First returns the leftmost (and, among matches starting there,
// longest — spec.md's leftmost-longest POSIX semantics) match in text, or
// ok=false if none exists.
func (p *Program) First(text []byte) (Match, bool) {
	from := 0
	if p.scan != nil {
		next, ok := p.advance(text, from)
		if !ok {
			return Match{}, false
		}
		from = next
	}

	sim := p.newSimulator()
	var found Match
	ok := false
	steps := sim.Search(text, from, false, func(begin, end int) bool {
		// POSIX leftmost-longest: a smaller begin always wins regardless of
		// length; for a fixed begin, later (longer) ends win. Search never
		// stops early so every candidate for the winning begin is seen —
		// the ring's "older wins" rule (spec.md §4.5) only arbitrates
		// between threads occupying the very same slot, not across the
		// whole run, so the longest-match comparison has to happen here.
		if !ok || begin < found.Begin || (begin == found.Begin && end > found.End) {
			found = Match{Begin: begin, End: end}
			ok = true
		}
		return false
	})
	atomic.AddUint64(&p.stats.simulatorSteps, uint64(steps))
	return found, ok
}

// All returns every non-overlapping match in text, left to right. Per the
// empty-match policy this module settled on (SPEC_FULL.md Open Questions):
// at most one empty match is reported per position, and never immediately
// after a non-empty match that ended there.
func (p *Program) All(text []byte) []Match {
	var matches []Match
	from := 0
	lastMatchEnd := -1

	for from <= len(text) {
		start := from
		if p.scan != nil {
			next, ok := p.advance(text, start)
			if !ok {
				break
			}
			start = next
		}

		sim := p.newSimulator()
		var m Match
		found := false
		steps := sim.Search(text, start, false, func(begin, end int) bool {
			if begin == end && begin == lastMatchEnd {
				return false
			}
			if !found || begin < m.Begin || (begin == m.Begin && end > m.End) {
				m = Match{Begin: begin, End: end}
				found = true
			}
			return false
		})
		atomic.AddUint64(&p.stats.simulatorSteps, uint64(steps))

		if !found {
			break
		}
		matches = append(matches, m)
		lastMatchEnd = m.End
		if m.End == m.Begin {
			from = m.End + 1
		} else {
			from = m.End
		}
	}
	return matches
}

// advance uses the compiled fast-forward scanner to skip to the next
// position that could possibly begin a match, bumping Stats accordingly.
// ok is false if no remaining candidate exists in text[from:].
func (p *Program) advance(text []byte, from int) (int, bool) {
	if from >= len(text) {
		return 0, false
	}
	next, ok := p.scan(text, from)
	if !ok {
		atomic.AddUint64(&p.stats.fastForwardSkippedBytes, uint64(len(text)-from))
		return 0, false
	}
	atomic.AddUint64(&p.stats.fastForwardHits, 1)
	atomic.AddUint64(&p.stats.fastForwardSkippedBytes, uint64(next-from))
	return next, true
}
