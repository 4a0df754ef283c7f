package replacement

import "github.com/sarchlab/pagesim/internal/memory"

// Aging approximates least-recently-used via a per-frame shift register:
// each invocation shifts every occupied frame's age right by one bit and,
// if its referenced bit is set, sets the age's high bit and clears the
// reference bit. The frame with the smallest resulting age is evicted
// (spec.md §4.3).
//
// Age is tracked in a private array rather than on memory.Frame (which also
// carries an Age field per the data model in spec.md §3) because ResetAge
// is invoked by the fault handler with only a frame index, not the frame
// table itself; keeping the authoritative counter here avoids requiring
// every policy to hold a reference to frames it doesn't own.
type Aging struct {
	n    int
	hand int
	age  []uint32
}

// NewAging returns an Aging policy over n frames, all ages starting at 0.
func NewAging(n int) *Aging {
	return &Aging{n: n, age: make([]uint32, n)}
}

// SelectVictim ages every occupied frame once, then evicts the frame with
// the smallest resulting age (ties broken by scan order from the hand).
func (p *Aging) SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int {
	startHand := p.hand
	bestFrame := -1
	var bestAge uint32

	for i := 0; i < p.n; i++ {
		idx := (startHand + i) % p.n
		if frames[idx].ProcID == memory.FreeProcID {
			continue
		}

		p.age[idx] >>= 1
		if view.Referenced(idx) {
			p.age[idx] |= 0x80000000
			view.ClearReferenced(idx)
		}

		if bestFrame == -1 || p.age[idx] < bestAge {
			bestFrame = idx
			bestAge = p.age[idx]
		}
	}

	p.age[bestFrame] = 0
	p.hand = (bestFrame + 1) % p.n
	return bestFrame
}

// ResetAge zeros frameIdx's age counter, called by the fault handler right
// after the frame is filled with a newly faulted-in page.
func (p *Aging) ResetAge(frameIdx int) {
	p.age[frameIdx] = 0
}
