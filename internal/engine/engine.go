// Package engine implements the paging simulator's fault handler and
// translator: address translation, fault handling, frame allocation, and
// the per-instruction cost/counter accounting spec.md §4.2 specifies.
//
// This is grounded on the teacher's mmu.Comp (mem/vm/mmu/mmu.go): both are
// a state machine that, given a virtual address and a process, walks a
// page table, decides hit vs. fault, and on a fault asks something else
// (there, a migration controller; here, a replacement policy) to name a
// resolution. The teacher's version is cycle-driven and asynchronous
// (Tick, in-flight transactions, a migration queue drained over many
// cycles) because akita models request latency; this simulator is
// instruction-serial with no latency model (spec.md §5), so an instruction
// resolves to completion within a single Step call and there is no
// transaction queue to walk.
package engine

import (
	"fmt"

	"github.com/sarchlab/pagesim/internal/memory"
	"github.com/sarchlab/pagesim/internal/replacement"
	"github.com/sarchlab/pagesim/internal/trace"
)

// Engine owns every process, the frame table, the free list, the
// replacement policy, and the global counters for one simulation run.
type Engine struct {
	Processes []*memory.Process
	Frames    []memory.Frame

	InstCount    uint64
	CtxSwitches  uint64
	ProcessExits uint64
	Cost         uint64

	current *memory.Process

	free      *memory.FreeList
	policy    replacement.Policy
	allocator *allocator
	view      *frameView
	sink      trace.Sink
}

// New builds an Engine for the given processes and frame count, with the
// named replacement policy already constructed by the caller. sink may be
// trace.Multi(nil) to discard all trace output.
func New(processes []*memory.Process, numFrames int, policy replacement.Policy, sink trace.Sink) *Engine {
	frames := memory.NewFrameTable(numFrames)
	free := memory.NewFreeList(numFrames)
	view := &frameView{frames: frames, processes: processes}

	return &Engine{
		Processes: processes,
		Frames:    frames,
		free:      free,
		policy:    policy,
		allocator: newAllocator(frames, free, policy, view),
		view:      view,
		sink:      sink,
	}
}

// CurrentPID returns the id of the current process, or -1 if none is set.
func (e *Engine) CurrentPID() int {
	if e.current == nil {
		return -1
	}
	return e.current.PID
}

// Step executes one instruction, mutating processes, frames, counters and
// cost, and emitting the instruction trace line plus any paging events to
// the engine's sink.
func (e *Engine) Step(inst Instruction) error {
	e.sink.Instruction(trace.Instruction{Index: e.InstCount, Op: inst.Op, Value: inst.Value})

	switch inst.Op {
	case 'c':
		e.contextSwitch(int(inst.Value))
	case 'e':
		e.exit(int(inst.Value))
	case 'r', 'w':
		if e.current == nil {
			return fmt.Errorf("instruction %d: %c %d with no current process", e.InstCount, inst.Op, inst.Value)
		}
		e.reference(int(inst.Value), inst.Op)
	default:
		return fmt.Errorf("instruction %d: unknown opcode %q", e.InstCount, inst.Op)
	}

	e.InstCount++
	return nil
}

// contextSwitch handles a `c N` instruction (spec.md §4.2).
func (e *Engine) contextSwitch(pid int) {
	target := e.Processes[pid]

	if e.current != target && (e.current != nil || e.CtxSwitches == 0) {
		e.CtxSwitches++
		e.Cost += costCtxSwitch
	}

	e.current = target
}

// exit handles an `e N` instruction (spec.md §4.2): every present page of
// the exiting process is unmapped, any file-mapped dirty page is written
// back, its frame returns to the free list, and its PTE is fully cleared.
func (e *Engine) exit(pid int) {
	proc := e.Processes[pid]

	proc.ForEachPresent(func(vpage int, pte memory.PTE) {
		e.emit(trace.OpUnmap, pid, vpage, 0)
		proc.Unmaps++
		e.Cost += costUnmap

		if pte.Modified() && pte.FileMapped() {
			e.emit(trace.OpFout, pid, vpage, 0)
			proc.FOuts++
			e.Cost += costFout
		}

		frameIdx := pte.Frame()
		e.Frames[frameIdx] = memory.Frame{ProcID: memory.FreeProcID, VPage: -1}
		e.free.Push(frameIdx)

		proc.PageTable[vpage] = pte.Cleared()
	})

	e.ProcessExits++
	e.Cost += costExit

	if e.current == proc {
		e.current = nil
	}
}

// reference handles an `r V` / `w V` instruction (spec.md §4.2).
func (e *Engine) reference(vpage int, op byte) {
	pte := e.current.PageTable[vpage]

	if !pte.Present() {
		var ok bool
		pte, ok = e.fault(vpage, op, pte)
		if !ok {
			e.Cost += costRefHit
			return
		}
	}

	pte = pte.WithReferenced(true)

	if op == 'w' {
		if pte.WriteProtect() {
			// A write-protection violation never dirties the page, even
			// when the page is also file-mapped (spec.md §8 scenario 5).
			e.emit(trace.OpSegProt, e.current.PID, vpage, 0)
			e.current.SegProt++
			e.Cost += costSegProt
		} else {
			pte = pte.WithModified(true)
		}
	} else if pte.FileMapped() {
		pte = pte.WithModified(true)
	}

	e.current.PageTable[vpage] = pte
	e.Cost += costRefHit
}

// fault resolves a page fault for vpage on the current process. It returns
// the PTE as it stands once the page is mapped in, and ok=false if the
// reference was a SEGV (in which case the PTE is left unchanged and the
// caller must not fall through to Case B).
func (e *Engine) fault(vpage int, op byte, pte memory.PTE) (memory.PTE, bool) {
	vma, found := e.current.FindVMA(vpage)
	if !found {
		e.emit(trace.OpSegV, e.current.PID, vpage, 0)
		e.current.SegV++
		e.Cost += costSegV
		return pte, false
	}

	f := e.allocator.allocate(e.InstCount)
	e.evict(f)

	switch {
	case vma.FileMapped:
		e.emit(trace.OpFin, e.current.PID, vpage, 0)
		e.current.FIns++
		e.Cost += costFin
	case pte.PagedOut():
		e.emit(trace.OpIn, e.current.PID, vpage, 0)
		e.current.Ins++
		e.Cost += costIn
	default:
		e.emit(trace.OpZero, e.current.PID, vpage, 0)
		e.current.Zeros++
		e.Cost += costZero
	}

	e.emit(trace.OpMap, e.current.PID, vpage, f)
	e.current.Maps++
	e.Cost += costMap

	pte = pte.WithPresent(true).WithFrame(f).
		WithWriteProtect(vma.WriteProtected).
		WithFileMapped(vma.FileMapped).
		WithReferenced(true)

	e.Frames[f] = memory.Frame{ProcID: e.current.PID, VPage: vpage, LastUsed: e.InstCount}
	e.policy.ResetAge(f)

	return pte, true
}

// evict frees frame f's current occupant, if any, emitting UNMAP and
// (OUT or FOUT, as appropriate) and updating the occupant's counters and
// PTE. The frame itself is left ready for the caller to fill with the new
// page; it is never pushed onto the free list here (spec.md §4.2 step 3).
func (e *Engine) evict(f int) {
	frame := e.Frames[f]
	if frame.ProcID == memory.FreeProcID {
		return
	}

	oldProc := e.Processes[frame.ProcID]
	oldPTE := oldProc.PageTable[frame.VPage]

	e.emit(trace.OpUnmap, frame.ProcID, frame.VPage, 0)
	oldProc.Unmaps++
	e.Cost += costUnmap

	if oldPTE.Modified() {
		if oldPTE.FileMapped() {
			e.emit(trace.OpFout, frame.ProcID, frame.VPage, 0)
			oldProc.FOuts++
			e.Cost += costFout
		} else {
			e.emit(trace.OpOut, frame.ProcID, frame.VPage, 0)
			oldProc.Outs++
			e.Cost += costOut
			oldPTE = oldPTE.WithPagedOut(true)
		}
	}

	oldProc.PageTable[frame.VPage] = oldPTE.Evicted()
}

func (e *Engine) emit(op trace.Op, pid, vpage, frame int) {
	e.sink.Event(trace.Event{InstCount: e.InstCount, Op: op, PID: pid, VPage: vpage, Frame: frame})
}
