package engine

import (
	"github.com/sarchlab/pagesim/internal/memory"
	"github.com/sarchlab/pagesim/internal/replacement"
)

// allocator hands out frame indices for a page fault to fill: the head of
// the free list while one is available, otherwise whatever frame the
// replacement policy names (spec.md §4.1). It does not evict anything
// itself — that is the fault handler's job, since eviction needs to emit
// events and update the occupant's PTE.
type allocator struct {
	free   *memory.FreeList
	policy replacement.Policy
	frames []memory.Frame
	view   replacement.PageView
}

func newAllocator(frames []memory.Frame, free *memory.FreeList, policy replacement.Policy, view replacement.PageView) *allocator {
	return &allocator{free: free, policy: policy, frames: frames, view: view}
}

// allocate returns the index of a frame to fill, preferring a free frame
// and falling back to the replacement policy once the free list is empty.
func (a *allocator) allocate(instCount uint64) int {
	if !a.free.Empty() {
		return a.free.Pop()
	}
	return a.policy.SelectVictim(a.frames, a.view, instCount)
}
