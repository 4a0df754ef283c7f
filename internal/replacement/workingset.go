package replacement

import "github.com/sarchlab/pagesim/internal/memory"

// TauInstructions is the working-set window: a frame not referenced within
// the last TauInstructions instructions is immediately evictable
// (spec.md §4.3, §6).
const TauInstructions = 49

// WorkingSet evicts the first frame, scanning from the hand, whose page is
// outside the working-set window, falling back to the least-recently-used
// frame if no frame has aged past the window during the scan.
type WorkingSet struct {
	n    int
	hand int
}

// NewWorkingSet returns a WorkingSet policy over n frames.
func NewWorkingSet(n int) *WorkingSet {
	return &WorkingSet{n: n}
}

// SelectVictim scans from the hand: referenced frames have their LastUsed
// stamped to instCount and their reference bit cleared; the first
// unreferenced frame idle for more than TauInstructions instructions is
// returned immediately; otherwise the least-recently-used frame seen during
// the scan is returned once the scan completes.
func (p *WorkingSet) SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int {
	startHand := p.hand
	candidate := -1
	var candidateLastUsed uint64

	for i := 0; i < p.n; i++ {
		idx := (startHand + i) % p.n
		if frames[idx].ProcID == memory.FreeProcID {
			continue
		}

		if view.Referenced(idx) {
			frames[idx].LastUsed = instCount
			view.ClearReferenced(idx)
			continue
		}

		if instCount-frames[idx].LastUsed > TauInstructions {
			p.hand = (idx + 1) % p.n
			return idx
		}

		if candidate == -1 || frames[idx].LastUsed < candidateLastUsed {
			candidate = idx
			candidateLastUsed = frames[idx].LastUsed
		}
	}

	// Every frame was referenced and has just been stamped with instCount,
	// so all tie for least recently used; the first in scan order wins.
	if candidate == -1 {
		candidate = startHand
	}

	p.hand = (candidate + 1) % p.n
	return candidate
}

// ResetAge is a no-op for WorkingSet.
func (p *WorkingSet) ResetAge(frameIdx int) {}
