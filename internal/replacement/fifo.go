package replacement

import "github.com/sarchlab/pagesim/internal/memory"

// FIFO evicts the frame that has been occupied longest, tracked purely by a
// circular hand over the frame table — no per-frame bookkeeping beyond the
// hand itself (spec.md §4.3).
type FIFO struct {
	n    int
	hand int
}

// NewFIFO returns a FIFO policy over n frames, hand starting at 0.
func NewFIFO(n int) *FIFO {
	return &FIFO{n: n}
}

// SelectVictim returns frame[hand] and advances the hand by one.
func (p *FIFO) SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int {
	victim := p.hand
	p.hand = (p.hand + 1) % p.n
	return victim
}

// ResetAge is a no-op for FIFO.
func (p *FIFO) ResetAge(frameIdx int) {}
