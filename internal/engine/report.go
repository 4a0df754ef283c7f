package engine

import (
	"fmt"
	"strings"

	"github.com/sarchlab/pagesim/internal/memory"
)

// FormatPageTable renders one process's page table the way spec.md §4.4's
// x/y/P options print it: a present page shows "<vpage>:RMS" with a dash
// in place of any unset bit; an absent page that has a paged-out swap
// location shows "#", otherwise "*".
func FormatPageTable(p *memory.Process) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PT[%d]: ", p.PID)

	for vpage := 0; vpage < memory.MaxVPages; vpage++ {
		pte := p.PageTable[vpage]
		if pte.Present() {
			fmt.Fprintf(&b, "%d:%c%c%c ", vpage,
				bitChar(pte.Referenced(), 'R'),
				bitChar(pte.Modified(), 'M'),
				bitChar(pte.PagedOut(), 'S'))
		} else if pte.PagedOut() {
			b.WriteString("# ")
		} else {
			b.WriteString("* ")
		}
	}

	b.WriteString("\n")
	return b.String()
}

func bitChar(set bool, c byte) byte {
	if set {
		return c
	}
	return '-'
}

// FormatFrameTable renders the frame table the way spec.md §4.4's f/F
// options print it: "*" for a free frame, "pid:vpage" for an occupied one.
func FormatFrameTable(frames []memory.Frame) string {
	var b strings.Builder
	b.WriteString("FT:")

	for _, f := range frames {
		if f.ProcID == memory.FreeProcID {
			b.WriteString(" *")
		} else {
			fmt.Fprintf(&b, " %d:%d", f.ProcID, f.VPage)
		}
	}

	b.WriteString("\n")
	return b.String()
}

// FormatSummary renders spec.md §6's exact per-process and TOTALCOST
// summary lines, which the -oS option requires byte-for-byte.
func (e *Engine) FormatSummary() string {
	var b strings.Builder

	for _, p := range e.Processes {
		fmt.Fprintf(&b, "PROC[%d]: U=%d M=%d I=%d O=%d FI=%d FO=%d Z=%d SV=%d SP=%d\n",
			p.PID, p.Unmaps, p.Maps, p.Ins, p.Outs, p.FIns, p.FOuts, p.Zeros, p.SegV, p.SegProt)
	}

	fmt.Fprintf(&b, "TOTALCOST %d %d %d %d %d\n",
		e.InstCount, e.CtxSwitches, e.ProcessExits, e.Cost, memory.PTESize)

	return b.String()
}
