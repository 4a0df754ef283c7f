package memory

// MaxVPages is the fixed size of every process's page table.
const MaxVPages = 64

// MaxFrames is the largest frame count the simulator accepts via -f.
const MaxFrames = 128

// Process is a simulated process: an index-based identity, a fixed-size page
// table, the VMAs describing its legal address space, and the nine
// lifetime counters the final summary reports.
type Process struct {
	PID       int
	VMAs      []VMA
	PageTable [MaxVPages]PTE

	Unmaps   uint64
	Maps     uint64
	Ins      uint64
	Outs     uint64
	FIns     uint64
	FOuts    uint64
	Zeros    uint64
	SegV     uint64
	SegProt  uint64
}

// NewProcess returns a Process with the given id and VMAs, an all-zero page
// table and all counters at zero.
func NewProcess(pid int, vmas []VMA) *Process {
	return &Process{PID: pid, VMAs: vmas}
}

// FindVMA returns the VMA covering vpage in this process, if any.
func (p *Process) FindVMA(vpage int) (VMA, bool) {
	return FindVMA(p.VMAs, vpage)
}
