// Package driver implements the simulator's driver (spec.md §4.4): it
// loads an input file, builds the replacement policy and engine, iterates
// the instruction stream, and emits the optional per-instruction and final
// dumps the -o option string selects.
package driver

import (
	"fmt"
	"io"

	"github.com/sarchlab/pagesim/internal/config"
	"github.com/sarchlab/pagesim/internal/engine"
	"github.com/sarchlab/pagesim/internal/loader"
	"github.com/sarchlab/pagesim/internal/replacement"
	"github.com/sarchlab/pagesim/internal/trace"
)

// Result is everything a caller (the CLI, or the optional monitor
// dashboard) might want to inspect once a run has finished.
type Result struct {
	Engine *engine.Engine
}

// flushable sinks need an explicit flush once the run completes, since
// several buffer events rather than writing them immediately.
type flushable interface {
	Flush()
}

// closable sinks own a resource (a file, a database connection) that must
// be released once the run completes.
type closable interface {
	Close() error
}

// Run loads cfg.InputFile, simulates its instruction stream under cfg's
// replacement algorithm and frame count, and writes every dump the -o
// option string requests to w. It returns the finished Engine so a caller
// can inspect final state (e.g. the optional monitor dashboard).
func Run(cfg config.Config, w io.Writer) (*Result, error) {
	in, err := loader.LoadInput(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}

	policy, err := replacement.New(cfg.Algo, cfg.NumFrames, cfg.RandFile)
	if err != nil {
		return nil, fmt.Errorf("building replacement policy: %w", err)
	}

	sinks, cleanup, err := buildSinks(cfg, w)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	e := engine.New(in.Processes, cfg.NumFrames, policy, sinks)

	for _, inst := range in.Instructions {
		if err := e.Step(inst); err != nil {
			return nil, fmt.Errorf("executing instruction %d: %w", e.InstCount, err)
		}
		emitPerInstructionDumps(cfg, w, e)
	}

	emitFinalDumps(cfg, w, e)

	return &Result{Engine: e}, nil
}

func emitPerInstructionDumps(cfg config.Config, w io.Writer, e *engine.Engine) {
	if cfg.HasOption('x') && e.CurrentPID() >= 0 {
		fmt.Fprint(w, engine.FormatPageTable(e.Processes[e.CurrentPID()]))
	}
	if cfg.HasOption('y') {
		for _, p := range e.Processes {
			fmt.Fprint(w, engine.FormatPageTable(p))
		}
	}
	if cfg.HasOption('f') {
		fmt.Fprint(w, engine.FormatFrameTable(e.Frames))
	}
}

func emitFinalDumps(cfg config.Config, w io.Writer, e *engine.Engine) {
	if cfg.HasOption('P') {
		for _, p := range e.Processes {
			fmt.Fprint(w, engine.FormatPageTable(p))
		}
	}
	if cfg.HasOption('F') {
		fmt.Fprint(w, engine.FormatFrameTable(e.Frames))
	}
	if cfg.HasOption('S') {
		fmt.Fprint(w, e.FormatSummary())
	}
}

// buildSinks assembles the trace.Sink stack from the -o option string: the
// byte-exact stdout trace (O), and the pagesim-specific persistent event
// sinks (C: CSV, J: JSON, D: SQLite) described in SPEC_FULL.md §4.
func buildSinks(cfg config.Config, w io.Writer) (trace.Multi, func(), error) {
	var sinks trace.Multi
	var flushers []flushable
	var closers []closable

	if cfg.HasOption('O') {
		s := trace.NewStdout(w)
		sinks = append(sinks, s)
		flushers = append(flushers, flusherFunc(func() { s.Flush() }))
	}
	if cfg.HasOption('C') {
		s := trace.NewCSV("")
		s.Init()
		sinks = append(sinks, s)
		flushers = append(flushers, s)
	}
	if cfg.HasOption('J') {
		sinks = append(sinks, trace.NewJSON())
	}
	if cfg.HasOption('D') {
		s := trace.NewSQLite("")
		if err := s.Init(); err != nil {
			return nil, nil, fmt.Errorf("initializing sqlite trace sink: %w", err)
		}
		sinks = append(sinks, s)
		closers = append(closers, s)
	}

	cleanup := func() {
		for _, f := range flushers {
			f.Flush()
		}
		for _, c := range closers {
			c.Close()
		}
	}

	return sinks, cleanup, nil
}

type flusherFunc func()

func (f flusherFunc) Flush() { f() }
