package trace

import (
	"bufio"
	"fmt"
	"io"
)

// Stdout writes the byte-exact trace lines spec.md §4.2/§6 requires for the
// -oO option: "<inst>: ==> <op> <value>" before each instruction, then one
// line per paging event. Only UNMAP and MAP carry arguments; every other
// event name is printed bare, matching the reference tool's format.
type Stdout struct {
	w *bufio.Writer
}

// NewStdout wraps w for buffered line writing. Callers must call Flush when
// the run completes.
func NewStdout(w io.Writer) *Stdout {
	return &Stdout{w: bufio.NewWriter(w)}
}

// Instruction prints the "<inst>: ==> <op> <value>" trace line.
func (s *Stdout) Instruction(i Instruction) {
	fmt.Fprintf(s.w, "%d: ==> %c %d\n", i.Index, i.Op, i.Value)
}

// Event prints one paging-event line.
func (s *Stdout) Event(e Event) {
	switch e.Op {
	case OpUnmap:
		fmt.Fprintf(s.w, "UNMAP %d:%d\n", e.PID, e.VPage)
	case OpMap:
		fmt.Fprintf(s.w, "MAP %d\n", e.Frame)
	default:
		fmt.Fprintf(s.w, "%s\n", e.Op)
	}
}

// Flush writes any buffered output to the underlying writer.
func (s *Stdout) Flush() error {
	return s.w.Flush()
}
