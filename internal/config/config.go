// Package config holds the simulator's run configuration, assembled from
// an optional .env file (via godotenv, matching the teacher's own
// config-loading dependency) and command-line flags (parsed in
// cmd/pagesim with cobra/pflag, which is where the glued short-flag
// grammar -f16/-ac/-oOPFS spec.md §6 requires actually gets parsed).
package config

import (
	"fmt"
	"strings"
)

// Algorithms maps the spec's single-character algorithm flags to their
// names; Validate uses it to recognise the flag and the --diag banner
// prints the name.
var Algorithms = map[byte]string{
	'f': "FIFO",
	'r': "Random",
	'c': "Clock",
	'e': "NRU",
	'a': "Aging",
	'w': "WorkingSet",
}

// Config is the fully resolved set of options for one simulation run.
type Config struct {
	NumFrames int
	Algo      byte
	Options   string
	InputFile string
	RandFile  string

	// Monitor starts the optional post-run HTTP dashboard
	// (SPEC_FULL.md §3) once the deterministic core has produced a result.
	Monitor     bool
	MonitorPort int
	OpenBrowser bool

	// Diag prints one line of host RSS next to the simulator's own frame
	// accounting (SPEC_FULL.md §4), making explicit that no real memory is
	// allocated for simulated pages.
	Diag bool
}

// HasOption reports whether opt (one of O P F S x y f, plus the
// pagesim-specific C, J and D) was passed to -o.
func (c Config) HasOption(opt byte) bool {
	return strings.IndexByte(c.Options, opt) >= 0
}

// Validate checks the fields spec.md §6 constrains: frame count in
// [1,MAX_FRAMES] and a recognized algorithm character.
func (c Config) Validate(maxFrames int) error {
	if c.NumFrames < 1 || c.NumFrames > maxFrames {
		return fmt.Errorf("frame count must be in [1,%d], got %d", maxFrames, c.NumFrames)
	}
	if _, ok := Algorithms[c.Algo]; !ok {
		return fmt.Errorf("unknown algorithm %q (must be one of f,r,c,e,a,w)", string(c.Algo))
	}
	if c.InputFile == "" {
		return fmt.Errorf("missing input file")
	}
	if c.RandFile == "" {
		return fmt.Errorf("missing random file")
	}
	return nil
}
