package simulator

import "github.com/corejit/rejit/ast"

// Simulator runs the per-character NFA simulation loop of spec.md §4.5
// against one RegexpInfo's matching and control lists. A Simulator is cheap
// to construct and is built fresh per search so that state from one
// invocation never leaks into the next (spec.md §5: the ring and time
// summary are per-invocation scratch).
type Simulator struct {
	info *ast.RegexpInfo
	ring *Ring
}

// New builds a Simulator sized for info's ring depth and state count.
func New(info *ast.RegexpInfo) *Simulator {
	return &Simulator{
		info: info,
		ring: NewRing(info.RingDepth(), info.LastState+1),
	}
}

// OnMatch is invoked every time the global exit state becomes occupied at
// absolute position `end`, with the match's source position `begin`. It
// returns whether the search should stop immediately.
type OnMatch func(begin, end int) (stop bool)

// Search runs the simulator over text starting at character position from.
//
//   - If anchored is true, a thread is seeded into the global entry state
//     only once, at position `from` (used for Program.Full and as the
//     building block for anchored sub-searches).
//   - If anchored is false, a fresh thread is seeded into the global entry
//     state at every position from `from` onward, implementing unanchored
//     search (used for Anywhere/First/All).
//
// Search returns the number of character positions it stepped through,
// for Stats() bookkeeping.
func (s *Simulator) Search(text []byte, from int, anchored bool, onMatch OnMatch) int {
	info := s.info
	ring := s.ring
	depth := len(ring.rowCount)
	steps := 0

	for now := from; now <= len(text); now++ {
		steps++
		row := now % depth

		if now == from || !anchored {
			ring.Set(row, info.EntryState, now)
		}

		s.propagateControl(row, now, text)

		if src, ok := ring.Get(row, info.ExitState); ok {
			if onMatch(src, now) {
				ring.ClearRow(row)
				return steps
			}
		}

		if now < len(text) {
			s.propagateMatching(row, now, text)
		}

		ring.ClearRow(row)

		if anchored && !ring.Summary().AnyLive() {
			break
		}
	}
	return steps
}

// propagateControl runs StartOfLine/EndOfLine/Epsilon nodes in the control
// list to a fixpoint within the same time row, since zero-width transitions
// may chain (e.g. "^$" on an empty line). Bounded to len(Control)+1 passes:
// a pass that makes no change stops the loop; any other pass occupied a
// slot or replaced a slot's source with an older one.
func (s *Simulator) propagateControl(row, now int, text []byte) {
	info := s.info
	ring := s.ring

	var prevByte byte
	hasPrev := now > 0
	if hasPrev {
		prevByte = text[now-1]
	}
	var curByte byte
	hasCur := now < len(text)
	if hasCur {
		curByte = text[now]
	}
	atStart := now == 0
	atEnd := now == len(text)

	startOfLine := atStart || (hasPrev && (prevByte == '\n' || prevByte == '\r'))
	endOfLine := atEnd || (hasCur && (curByte == '\n' || curByte == '\r'))

	limit := len(info.Control) + 1
	for pass := 0; pass < limit; pass++ {
		changed := false
		for _, c := range info.Control {
			switch c.Kind {
			case ast.Epsilon:
				if src, ok := ring.Get(row, c.EntryState); ok {
					if ring.SetIfOlder(row, c.ExitState, src) {
						changed = true
					}
				}
			case ast.StartOfLine:
				if startOfLine {
					if src, ok := ring.Get(row, c.EntryState); ok {
						if ring.SetIfOlder(row, c.ExitState, src) {
							changed = true
						}
					}
				}
			case ast.EndOfLine:
				if endOfLine {
					if src, ok := ring.Get(row, c.EntryState); ok {
						if ring.SetIfOlder(row, c.ExitState, src) {
							changed = true
						}
					}
				}
			}
		}
		if !changed {
			return
		}
	}
}

// propagateMatching evaluates every consuming node in list order (spec.md
// §4.5 step 2), writing successful matches into the ring row `len(node's
// match) steps` in the future.
func (s *Simulator) propagateMatching(row, now int, text []byte) {
	info := s.info
	ring := s.ring
	depth := len(ring.rowCount)

	for _, n := range info.Matching {
		src, ok := ring.Get(row, n.EntryState)
		if !ok {
			continue
		}
		switch n.Kind {
		case ast.MultipleChar:
			l := len(n.Chars)
			if now+l > len(text) {
				continue
			}
			if !bytesEqual(text[now:now+l], n.Chars) {
				continue
			}
			target := (now + l) % depth
			ring.SetIfOlder(target, n.ExitState, src)
		case ast.Period:
			target := (now + 1) % depth
			ring.SetIfOlder(target, n.ExitState, src)
		case ast.Bracket:
			if n.MatchesByte(text[now]) {
				target := (now + 1) % depth
				ring.SetIfOlder(target, n.ExitState, src)
			}
		}
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
