package replacement

import "github.com/sarchlab/pagesim/internal/memory"

// Clock implements second-chance replacement: starting at the hand, any
// frame whose referenced bit is set has it cleared and is skipped; the
// first frame found with the bit already clear is evicted, and the hand
// advances past it (spec.md §4.3).
type Clock struct {
	n    int
	hand int
}

// NewClock returns a Clock policy over n frames.
func NewClock(n int) *Clock {
	return &Clock{n: n}
}

// SelectVictim scans from the hand, clearing referenced bits until it finds
// an unreferenced frame.
func (p *Clock) SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int {
	for {
		if !view.Referenced(p.hand) {
			victim := p.hand
			p.hand = (p.hand + 1) % p.n
			return victim
		}
		view.ClearReferenced(p.hand)
		p.hand = (p.hand + 1) % p.n
	}
}

// ResetAge is a no-op for Clock.
func (p *Clock) ResetAge(frameIdx int) {}
