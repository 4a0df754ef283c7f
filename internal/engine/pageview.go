package engine

import "github.com/sarchlab/pagesim/internal/memory"

// frameView implements replacement.PageView over the engine's own frame and
// process tables, so replacement policies can read and clear the
// referenced/modified bits belonging to whatever page currently occupies a
// frame without depending on the process table type directly.
type frameView struct {
	frames    []memory.Frame
	processes []*memory.Process
}

func (v *frameView) pte(frameIdx int) (proc *memory.Process, vpage int) {
	f := v.frames[frameIdx]
	return v.processes[f.ProcID], f.VPage
}

// Referenced reports the referenced bit of the page occupying frameIdx.
func (v *frameView) Referenced(frameIdx int) bool {
	proc, vpage := v.pte(frameIdx)
	return proc.PageTable[vpage].Referenced()
}

// Modified reports the modified bit of the page occupying frameIdx.
func (v *frameView) Modified(frameIdx int) bool {
	proc, vpage := v.pte(frameIdx)
	return proc.PageTable[vpage].Modified()
}

// ClearReferenced clears the referenced bit of the page occupying frameIdx.
func (v *frameView) ClearReferenced(frameIdx int) {
	proc, vpage := v.pte(frameIdx)
	proc.PageTable[vpage] = proc.PageTable[vpage].WithReferenced(false)
}
