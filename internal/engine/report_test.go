package engine_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/pagesim/internal/engine"
	"github.com/sarchlab/pagesim/internal/memory"
)

var _ = Describe("Reporting", func() {
	It("formats a page table with present, paged-out, and unused pages", func() {
		p := memory.NewProcess(0, nil)
		p.PageTable[0] = memory.PTE(0).WithPresent(true).WithFrame(1).WithReferenced(true)
		p.PageTable[1] = memory.PTE(0).WithPagedOut(true)

		line := engine.FormatPageTable(p)

		Expect(line).To(ContainSubstring("PT[0]: "))
		Expect(line).To(ContainSubstring("0:R--"))
		Expect(line).To(ContainSubstring("# "))
	})

	It("formats a frame table with free and occupied frames", func() {
		frames := []memory.Frame{
			{ProcID: memory.FreeProcID, VPage: -1},
			{ProcID: 2, VPage: 7},
		}

		Expect(engine.FormatFrameTable(frames)).To(Equal("FT: * 2:7\n"))
	})

	It("formats the exact PROC and TOTALCOST summary lines", func() {
		procs := []*memory.Process{memory.NewProcess(0, nil)}
		procs[0].Unmaps = 1
		procs[0].Maps = 2

		e := engine.New(procs, 1, nil, nil)
		e.InstCount = 10
		e.CtxSwitches = 1
		e.ProcessExits = 0
		e.Cost = 500

		Expect(e.FormatSummary()).To(Equal(
			"PROC[0]: U=1 M=2 I=0 O=0 FI=0 FO=0 Z=0 SV=0 SP=0\n" +
				"TOTALCOST 10 1 0 500 4\n"))
	})
})
