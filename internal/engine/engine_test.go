package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/internal/engine"
	"github.com/sarchlab/pagesim/internal/memory"
	"github.com/sarchlab/pagesim/internal/replacement"
	"github.com/sarchlab/pagesim/internal/trace"
)

// recordingSink captures every instruction/event it is given, for
// assertions against the exact sequence the fault handler produced.
type recordingSink struct {
	events []trace.Event
}

func (s *recordingSink) Instruction(trace.Instruction) {}
func (s *recordingSink) Event(e trace.Event)           { s.events = append(s.events, e) }

func (s *recordingSink) ops() []trace.Op {
	ops := make([]trace.Op, len(s.events))
	for i, e := range s.events {
		ops[i] = e.Op
	}
	return ops
}

var _ = Describe("Engine", func() {
	var sink *recordingSink

	BeforeEach(func() {
		sink = &recordingSink{}
	})

	Context("scenario 1: sequential faults into a fresh VMA then eviction", func() {
		It("ZEROs and MAPs the first four pages, then evicts on the fifth", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 7}}),
			}
			e := engine.New(procs, 4, replacement.NewFIFO(4), sink)

			run(e, []engine.Instruction{
				{Op: 'c', Value: 0},
				{Op: 'r', Value: 0},
				{Op: 'r', Value: 1},
				{Op: 'r', Value: 2},
				{Op: 'r', Value: 3},
				{Op: 'r', Value: 4},
			})

			Expect(sink.ops()).To(Equal([]trace.Op{
				trace.OpZero, trace.OpMap,
				trace.OpZero, trace.OpMap,
				trace.OpZero, trace.OpMap,
				trace.OpZero, trace.OpMap,
				trace.OpUnmap, trace.OpZero, trace.OpMap, // FIFO evicts frame 0 (vpage 0)
			}))
			Expect(procs[0].Maps).To(Equal(uint64(5)))
			Expect(procs[0].Unmaps).To(Equal(uint64(1)))
			Expect(procs[0].PageTable[0].Present()).To(BeFalse())
			Expect(procs[0].PageTable[4].Present()).To(BeTrue())
		})
	})

	Context("scenario 5: write to a write-protected, file-mapped page", func() {
		It("emits SEGPROT and does not set modified", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{
					{StartVPage: 0, EndVPage: 0, WriteProtected: true, FileMapped: true},
				}),
			}
			e := engine.New(procs, 4, replacement.NewFIFO(4), sink)

			run(e, []engine.Instruction{
				{Op: 'c', Value: 0},
				{Op: 'w', Value: 0}, // fault in: FIN + MAP, then SEGPROT, no modified
			})

			Expect(sink.ops()).To(Equal([]trace.Op{trace.OpFin, trace.OpMap, trace.OpSegProt}))
			Expect(procs[0].PageTable[0].Modified()).To(BeFalse())
			Expect(procs[0].SegProt).To(Equal(uint64(1)))
		})
	})

	Context("scenario 6: exit of a process holding a modified file-mapped page", func() {
		It("emits UNMAP then FOUT and frees the frame", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{
					{StartVPage: 0, EndVPage: 0, FileMapped: true},
				}),
			}
			e := engine.New(procs, 1, replacement.NewFIFO(1), sink)

			run(e, []engine.Instruction{
				{Op: 'c', Value: 0},
				{Op: 'w', Value: 0}, // FIN, MAP, then modified via file-mapped write
				{Op: 'e', Value: 0},
			})

			Expect(procs[0].PageTable[0].Modified()).To(BeFalse()) // cleared by exit
			Expect(sink.ops()[len(sink.ops())-2:]).To(Equal([]trace.Op{trace.OpUnmap, trace.OpFout}))
			Expect(procs[0].Unmaps).To(Equal(uint64(1)))
			Expect(procs[0].FOuts).To(Equal(uint64(1)))
		})
	})

	Context("reference outside every VMA", func() {
		It("emits exactly one SEGV and leaves the PTE unchanged", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 3}}),
			}
			e := engine.New(procs, 2, replacement.NewFIFO(2), sink)

			run(e, []engine.Instruction{
				{Op: 'c', Value: 0},
				{Op: 'r', Value: 10},
			})

			Expect(sink.ops()).To(Equal([]trace.Op{trace.OpSegV}))
			Expect(procs[0].SegV).To(Equal(uint64(1)))
			Expect(procs[0].PageTable[10]).To(Equal(memory.PTE(0)))
		})
	})

	Context("dirty, non-file-mapped eviction", func() {
		It("emits OUT and marks the evicted page paged-out", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 1}}),
			}
			e := engine.New(procs, 1, replacement.NewFIFO(1), sink)

			run(e, []engine.Instruction{
				{Op: 'c', Value: 0},
				{Op: 'w', Value: 0}, // ZERO, MAP, dirty
				{Op: 'r', Value: 1}, // evicts vpage 0: dirty, anon -> OUT
			})

			Expect(sink.ops()).To(Equal([]trace.Op{
				trace.OpZero, trace.OpMap,
				trace.OpUnmap, trace.OpOut, trace.OpZero, trace.OpMap,
			}))
			Expect(procs[0].PageTable[0].PagedOut()).To(BeTrue())
			Expect(procs[0].Outs).To(Equal(uint64(1)))
		})

		It("emits IN on a later fault-in of a paged-out page", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 1}}),
			}
			e := engine.New(procs, 1, replacement.NewFIFO(1), sink)

			run(e, []engine.Instruction{
				{Op: 'c', Value: 0},
				{Op: 'w', Value: 0}, // ZERO, MAP, dirty
				{Op: 'r', Value: 1}, // evicts 0 -> OUT, faults in 1 -> ZERO
				{Op: 'r', Value: 0}, // evicts 1, faults in 0 again -> IN (paged out)
			})

			Expect(sink.ops()[len(sink.ops())-3:]).To(Equal([]trace.Op{
				trace.OpUnmap, trace.OpIn, trace.OpMap,
			}))
			Expect(procs[0].Ins).To(Equal(uint64(1)))
		})
	})

	Context("context switches", func() {
		It("counts the very first switch", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, nil),
			}
			e := engine.New(procs, 1, replacement.NewFIFO(1), sink)

			Expect(e.Step(engine.Instruction{Op: 'c', Value: 0})).To(Succeed())

			Expect(e.CtxSwitches).To(Equal(uint64(1)))
			Expect(e.CurrentPID()).To(Equal(0))
		})

		It("does not recount switching to the same process", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, nil),
			}
			e := engine.New(procs, 1, replacement.NewFIFO(1), sink)

			Expect(e.Step(engine.Instruction{Op: 'c', Value: 0})).To(Succeed())
			Expect(e.Step(engine.Instruction{Op: 'c', Value: 0})).To(Succeed())

			Expect(e.CtxSwitches).To(Equal(uint64(1)))
		})
	})

	Context("cost accounting", func() {
		It("is monotone non-decreasing and matches the cost table for a SEGV", func() {
			procs := []*memory.Process{
				memory.NewProcess(0, []memory.VMA{{StartVPage: 0, EndVPage: 0}}),
			}
			e := engine.New(procs, 1, replacement.NewFIFO(1), sink)

			Expect(e.Step(engine.Instruction{Op: 'c', Value: 0})).To(Succeed())
			before := e.Cost
			Expect(e.Step(engine.Instruction{Op: 'r', Value: 5})).To(Succeed())

			Expect(e.Cost - before).To(Equal(uint64(444 + 1)))
		})
	})
})

func run(e *engine.Engine, insts []engine.Instruction) {
	for _, inst := range insts {
		Expect(e.Step(inst)).To(Succeed())
	}
}
