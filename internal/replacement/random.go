package replacement

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/pagesim/internal/memory"
)

// Random evicts frame[r % n] for the next value r drawn from a pre-loaded
// ring of integers read from a file (spec.md §4.3, §6). The stream wraps
// around to its start on exhaustion, so the same random file always
// reproduces the same eviction sequence regardless of run length.
type Random struct {
	n      int
	values []int32
	ofs    int
}

// loadRandomFile reads a random file: a first line giving a count (read but
// not otherwise validated against the number of remaining lines) followed by
// one signed integer per line.
func loadRandomFile(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening random file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("random file %s is empty", path)
	}

	var values []int32
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseInt(line, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("parsing random value %q: %w", line, err)
		}
		values = append(values, int32(v))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading random file: %w", err)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("random file %s has no values", path)
	}

	return values, nil
}

// NewRandom returns a Random policy over n frames, fed from randPath.
func NewRandom(n int, randPath string) (*Random, error) {
	values, err := loadRandomFile(randPath)
	if err != nil {
		return nil, err
	}
	return &Random{n: n, values: values}, nil
}

// SelectVictim consumes the next random value, wrapping the stream, and
// returns frame[value % n].
func (p *Random) SelectVictim(frames []memory.Frame, view PageView, instCount uint64) int {
	v := p.values[p.ofs]
	p.ofs = (p.ofs + 1) % len(p.values)

	r := int(v) % p.n
	if r < 0 {
		r += p.n
	}
	return r
}

// ResetAge is a no-op for Random.
func (p *Random) ResetAge(frameIdx int) {}
