package replacement

import "github.com/sarchlab/pagesim/internal/memory"

// NRU (not-recently-used) periodically ages out every frame's referenced
// bit, then ranks frames by the 2-bit (referenced, modified) class and picks
// the lowest-ranked one seen in a single scan starting at the hand
// (spec.md §4.3).
type NRU struct {
	n         int
	hand      int
	lastReset uint64
}

// NewNRU returns an NRU policy over n frames.
func NewNRU(n int) *NRU {
	return &NRU{n: n}
}

// SelectVictim ages reference bits every 10 instructions, then returns the
// lowest-class frame found in one sweep from the hand. The hand always
// advances by exactly one, regardless of which frame was chosen, matching
// the reference tool's observed behavior (spec.md §9 Open Questions).
func (p *NRU) SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int {
	if instCount-p.lastReset >= 10 {
		for i := range frames {
			if frames[i].ProcID != memory.FreeProcID {
				view.ClearReferenced(i)
			}
		}
		p.lastReset = instCount
	}

	startHand := p.hand
	bestFrame := -1
	bestClass := 4

	for i := 0; i < p.n; i++ {
		idx := (startHand + i) % p.n
		if frames[idx].ProcID == memory.FreeProcID {
			continue
		}

		class := 0
		if view.Referenced(idx) {
			class |= 2
		}
		if view.Modified(idx) {
			class |= 1
		}

		if class < bestClass {
			bestClass = class
			bestFrame = idx
			if bestClass == 0 {
				break
			}
		}
	}

	p.hand = (startHand + 1) % p.n
	return bestFrame
}

// ResetAge is a no-op for NRU.
func (p *NRU) ResetAge(frameIdx int) {}
