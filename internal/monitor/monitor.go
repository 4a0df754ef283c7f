// Package monitor is pagesim's optional, post-run HTTP dashboard
// (SPEC_FULL.md §3). It is adapted from the teacher's live
// simulation-control server (monitoring/monitor.go): the routing and
// profile-capture machinery is kept, but since pagesim's core finishes
// running before this package is ever touched, there is nothing left to
// pause, continue, or tick. What remains is read-only inspection of the
// finished Engine, serialized directly with encoding/json rather than the
// teacher's goseth-based generic field walker (dropped, see DESIGN.md).
package monitor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/pagesim/internal/config"
	"github.com/sarchlab/pagesim/internal/engine"
)

// Serve starts the dashboard and blocks until the process is interrupted.
// It is only ever called after driver.Run has returned, so it never
// reintroduces concurrency into the instruction-serial core: e is already
// finished and is only read from here on.
func Serve(cfg config.Config, e *engine.Engine) error {
	m := &server{engine: e}

	r := mux.NewRouter()
	r.HandleFunc("/api/summary", m.summary)
	r.HandleFunc("/api/processes", m.processes)
	r.HandleFunc("/api/frames", m.frames)
	r.HandleFunc("/api/progress", m.progress)
	r.HandleFunc("/api/resource", m.resource)
	r.HandleFunc("/api/profile", m.collectProfile)

	actualAddr := ":0"
	if cfg.MonitorPort > 1000 {
		actualAddr = ":" + strconv.Itoa(cfg.MonitorPort)
	}

	listener, err := net.Listen("tcp", actualAddr)
	if err != nil {
		return fmt.Errorf("starting monitor listener: %w", err)
	}

	port := listener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://localhost:%d", port)
	fmt.Fprintf(os.Stderr, "pagesim: monitoring finished run at %s\n", url)

	if cfg.OpenBrowser {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "pagesim: could not open browser: %v\n", err)
		}
	}

	return http.Serve(listener, r)
}

// PrintRSS writes the host process's actual resident set size to w, for
// the --diag flag's side-by-side comparison against the simulator's own
// simulated frame accounting.
func PrintRSS(w *os.File) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		fmt.Fprintf(w, "pagesim: diag: could not read process info: %v\n", err)
		return
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		fmt.Fprintf(w, "pagesim: diag: could not read memory info: %v\n", err)
		return
	}

	fmt.Fprintf(w, "pagesim: diag: host RSS=%d bytes (simulated frames are not real memory)\n", mem.RSS)
}

type server struct {
	engine *engine.Engine
}

func (s *server) summary(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.engine.FormatSummary())
}

type processView struct {
	PID       int    `json:"pid"`
	Unmaps    uint64 `json:"unmaps"`
	Maps      uint64 `json:"maps"`
	Ins       uint64 `json:"ins"`
	Outs      uint64 `json:"outs"`
	FIns      uint64 `json:"fins"`
	FOuts     uint64 `json:"fouts"`
	Zeros     uint64 `json:"zeros"`
	SegV      uint64 `json:"segvs"`
	SegProt   uint64 `json:"segprots"`
	PageTable string `json:"page_table"`
}

func (s *server) processes(w http.ResponseWriter, _ *http.Request) {
	views := make([]processView, len(s.engine.Processes))
	for i, p := range s.engine.Processes {
		views[i] = processView{
			PID: i, Unmaps: p.Unmaps, Maps: p.Maps, Ins: p.Ins, Outs: p.Outs,
			FIns: p.FIns, FOuts: p.FOuts, Zeros: p.Zeros, SegV: p.SegV, SegProt: p.SegProt,
			PageTable: engine.FormatPageTable(p),
		}
	}

	writeJSON(w, views)
}

func (s *server) frames(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.engine.Frames)
}

// progressView reports how much of the instruction stream the engine
// actually executed. Unlike the teacher's ProgressBar, this has no
// in-progress/finished split and no mutex: the core runs to completion
// synchronously before the monitor ever starts, so "finished" is always
// the engine's final InstCount by the time anyone can query this.
type progressView struct {
	InstructionsExecuted uint64 `json:"instructions_executed"`
	ContextSwitches      uint64 `json:"context_switches"`
	ProcessExits         uint64 `json:"process_exits"`
}

func (s *server) progress(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, progressView{
		InstructionsExecuted: s.engine.InstCount,
		ContextSwitches:      s.engine.CtxSwitches,
		ProcessExits:         s.engine.ProcessExits,
	})
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (s *server) resource(w http.ResponseWriter, _ *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if dieOnErr(w, err) {
		return
	}

	cpuPercent, err := p.CPUPercent()
	if dieOnErr(w, err) {
		return
	}

	memInfo, err := p.MemoryInfo()
	if dieOnErr(w, err) {
		return
	}

	writeJSON(w, resourceRsp{CPUPercent: cpuPercent, MemorySize: memInfo.RSS})
}

func (s *server) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	if err := pprof.StartCPUProfile(buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	time.Sleep(time.Second)
	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	if dieOnErr(w, err) {
		return
	}

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		log.Printf("pagesim: monitor: failed to encode response: %v", err)
	}
}

func dieOnErr(w http.ResponseWriter, err error) bool {
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return true
	}
	return false
}
