// Package replacement implements the paging simulator's pluggable
// page-replacement policies.
//
// The shared Policy interface is grounded on the teacher's VictimFinder
// (mem/cache/internal/tagging/victimfinder.go): a one-method strategy
// interface that a cache's directory calls when it needs to name a block to
// evict. This package generalizes that shape from a set-associative cache
// directory (which picks among the Ways of one Set) to a flat frame table
// (which picks among all N frames), and adds the optional ResetAge hook the
// spec requires for Aging. The teacher's tagArrayImpl (tags.go) LRU-queue
// bookkeeping (rebuilding a slice on every Visit) is not reused here: this
// simulator's frames are a single flat array rather than a set-associative
// cache, so there is no per-set LRU queue to maintain — each policy instead
// tracks exactly the state spec.md §4.3 calls for (a hand, a random offset,
// a last-reset tick, or a per-frame age), rebuilt from scratch.
package replacement

import "github.com/sarchlab/pagesim/internal/memory"

//go:generate mockgen -destination "mockreplacement/mock_policy.go" -package mockreplacement github.com/sarchlab/pagesim/internal/replacement Policy

// PageView lets a policy read and clear the reference/modified bits that
// live on the PTE occupying a frame, without the replacement package
// depending on the process table directly. The fault handler supplies this
// over the frame table it owns.
type PageView interface {
	Referenced(frameIdx int) bool
	Modified(frameIdx int) bool
	ClearReferenced(frameIdx int)
}

// Policy selects a victim frame among the N frames in frames[], all of
// which are occupied whenever SelectVictim is called (the allocator only
// consults the policy once its free list is empty — spec.md §4.1, §4.3).
// Implementations touch PTEs only through PageView.ClearReferenced, which
// Clock, NRU, Aging and Working Set use to age out reference bits as part of
// victim selection; the only write to frames[] is Working Set stamping
// LastUsed. The fault handler performs the actual eviction afterward.
type Policy interface {
	// SelectVictim returns the index of the frame to evict. instCount is
	// the global instruction counter at the moment of the call, needed by
	// NRU and Working Set.
	SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int

	// ResetAge is called by the fault handler right after a frame has been
	// (re)filled with a new page. It is a no-op for every policy except
	// Aging.
	ResetAge(frameIdx int)
}

// New returns the Policy named by algo, one of the spec's algorithm
// characters {f,r,c,e,a,w}, sized for n frames. randPath is only consulted
// for algo == 'r'.
func New(algo byte, n int, randPath string) (Policy, error) {
	switch algo {
	case 'f':
		return NewFIFO(n), nil
	case 'r':
		return NewRandom(n, randPath)
	case 'c':
		return NewClock(n), nil
	case 'e':
		return NewNRU(n), nil
	case 'a':
		return NewAging(n), nil
	case 'w':
		return NewWorkingSet(n), nil
	default:
		return nil, unknownAlgoError(algo)
	}
}

type unknownAlgoError byte

func (e unknownAlgoError) Error() string {
	return "unknown replacement algorithm: " + string(rune(e))
}
