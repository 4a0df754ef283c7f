// Adapted from the teacher's JSONTracer (tracing/jsontracer.go): same
// streaming-JSON-array shape (write "[\n", one comma-separated object per
// event, "\n]" at exit via atexit) but for a flat Event record rather than
// an in-flight Task keyed by ID with a start/end pair to reconcile.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// JSON streams paging events out as a JSON array, one object per event, as
// they arrive.
type JSON struct {
	w         io.Writer
	lock      sync.Mutex
	firstLine bool
}

// NewJSON creates pagesim_trace_<xid>.json and opens the array.
func NewJSON() *JSON {
	filename := "pagesim_trace_" + xid.New().String() + ".json"
	f, err := os.Create(filename)
	if err != nil {
		panic(err)
	}
	fmt.Fprintf(os.Stderr, "Recording trace in %s\n", filename)

	if _, err := f.Write([]byte("[\n")); err != nil {
		panic(err)
	}

	j := &JSON{w: f, firstLine: true}
	atexit.Register(func() { j.finish(f) })

	return j
}

// Instruction is a no-op: the JSON sink only records paging events.
func (j *JSON) Instruction(Instruction) {}

// Event appends e to the JSON array.
func (j *JSON) Event(e Event) {
	j.lock.Lock()
	defer j.lock.Unlock()

	if j.firstLine {
		j.firstLine = false
	} else if _, err := j.w.Write([]byte(",\n")); err != nil {
		panic(err)
	}

	b, err := json.Marshal(e)
	if err != nil {
		panic(err)
	}
	if _, err := j.w.Write(b); err != nil {
		panic(err)
	}
}

func (j *JSON) finish(f *os.File) {
	if _, err := j.w.Write([]byte("\n]")); err != nil {
		panic(err)
	}
	f.Close()
}
