// Adapted from the teacher's pageTableImpl (mem/vm/pagetable.go): there, a
// page table was a map[PID]*processTable, each processTable a
// container/list.List plus a map[uint64]*list.Element for O(1) lookup by
// virtual address, guarded by a sync.Mutex because multiple akita components
// could touch it concurrently across simulated time.
//
// This simulator's page table is Process.PageTable, a fixed [MaxVPages]PTE
// array: the spec fixes the table size at exactly 64 entries per process, so
// a vpage is already a direct array index and the map/list/mutex machinery
// has no job left to do (§5: the simulator is single-threaded). What
// survives from the teacher's design is the doubly-linked free list
// (container/list), reused in frame.go for the frame allocator's free queue,
// and the present/absent walk pattern used here to implement process exit
// and page-table dumps.
package memory

// ForEachPresent calls fn for every present PTE in the process's page table,
// in increasing vpage order, passing the vpage and the current PTE value.
func (p *Process) ForEachPresent(fn func(vpage int, pte PTE)) {
	for vpage := 0; vpage < MaxVPages; vpage++ {
		pte := p.PageTable[vpage]
		if pte.Present() {
			fn(vpage, pte)
		}
	}
}

// ResidentCount returns the number of present PTEs in the process's page
// table, equal to the number of frames it currently occupies.
func (p *Process) ResidentCount() int {
	n := 0
	p.ForEachPresent(func(int, PTE) { n++ })
	return n
}
