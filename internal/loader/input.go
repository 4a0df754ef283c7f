// Package loader reads the simulator's input file: the process/VMA
// description followed by the instruction stream (spec.md §6 "Input file
// format"), returned as processes plus the driver's stream of
// engine.Instruction values. The random file is read by the replacement
// package.
//
// Grounded on the teacher's config-loading conventions (godotenv-style
// plain-text, line-oriented parsing) but there is no teacher file reading
// this exact shape; the closest analogue is vm.PageTable's construction
// from a fixed record layout, generalized here to a whitespace-delimited
// text format read line by line.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/internal/engine"
	"github.com/sarchlab/pagesim/internal/memory"
)

// Input is the parsed contents of an input file: one Process per
// described process (VMAs attached, page table all-zero) and the ordered
// instruction stream that follows.
type Input struct {
	Processes    []*memory.Process
	Instructions []engine.Instruction
}

// commentLineReader scans non-comment, non-blank lines one at a time.
// A line is a comment if its first character is '#'; spec.md §6 is explicit
// that only the first character marks a comment, so trailing "# ..." on a
// data line is NOT a comment and would corrupt parsing if present (the
// input format simply never puts one there).
type commentLineReader struct {
	scanner *bufio.Scanner
}

func newCommentLineReader(r io.Reader) *commentLineReader {
	return &commentLineReader{scanner: bufio.NewScanner(r)}
}

// next returns the next non-comment, non-blank line, or "", false at EOF.
func (c *commentLineReader) next() (string, bool) {
	for c.scanner.Scan() {
		line := c.scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '#' {
			continue
		}
		return line, true
	}
	return "", false
}

// LoadInput reads and parses the input file at path.
func LoadInput(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	r := newCommentLineReader(f)

	numProcesses, err := nextInt(r, "process count")
	if err != nil {
		return nil, err
	}

	processes := make([]*memory.Process, numProcesses)
	for pid := 0; pid < numProcesses; pid++ {
		numVMAs, err := nextInt(r, fmt.Sprintf("VMA count for process %d", pid))
		if err != nil {
			return nil, err
		}

		vmas := make([]memory.VMA, numVMAs)
		for i := 0; i < numVMAs; i++ {
			line, ok := r.next()
			if !ok {
				return nil, fmt.Errorf("unexpected EOF reading VMA %d of process %d", i, pid)
			}
			vma, err := parseVMA(line)
			if err != nil {
				return nil, fmt.Errorf("process %d, VMA %d: %w", pid, i, err)
			}
			vmas[i] = vma
		}

		processes[pid] = memory.NewProcess(pid, vmas)
	}

	var instructions []engine.Instruction
	for {
		line, ok := r.next()
		if !ok {
			break
		}
		inst, err := parseInstruction(line)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, inst)
	}

	return &Input{Processes: processes, Instructions: instructions}, nil
}

func nextInt(r *commentLineReader, what string) (int, error) {
	line, ok := r.next()
	if !ok {
		return 0, fmt.Errorf("unexpected EOF reading %s", what)
	}
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", what, err)
	}
	return n, nil
}

func parseVMA(line string) (memory.VMA, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return memory.VMA{}, fmt.Errorf("expected 4 fields, got %d: %q", len(fields), line)
	}

	ints := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return memory.VMA{}, fmt.Errorf("field %d: %w", i, err)
		}
		ints[i] = v
	}

	return memory.VMA{
		StartVPage:     ints[0],
		EndVPage:       ints[1],
		WriteProtected: ints[2] != 0,
		FileMapped:     ints[3] != 0,
	}, nil
}

func parseInstruction(line string) (engine.Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return engine.Instruction{}, fmt.Errorf("expected 2 fields, got %d: %q", len(fields), line)
	}
	if len(fields[0]) != 1 {
		return engine.Instruction{}, fmt.Errorf("invalid opcode %q", fields[0])
	}

	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return engine.Instruction{}, fmt.Errorf("parsing instruction value: %w", err)
	}

	op := fields[0][0]
	switch op {
	case 'c', 'e', 'r', 'w':
	default:
		return engine.Instruction{}, fmt.Errorf("unknown opcode %q", fields[0])
	}

	return engine.Instruction{Op: op, Value: int32(value)}, nil
}
