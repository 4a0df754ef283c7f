package main

import (
	"fmt"
	"os"

	"github.com/tebeka/atexit"

	"github.com/sarchlab/pagesim/internal/config"
	"github.com/sarchlab/pagesim/internal/driver"
	"github.com/sarchlab/pagesim/internal/memory"
	"github.com/sarchlab/pagesim/internal/monitor"
)

func main() {
	Execute()
	// Run the trace sinks' atexit hooks (closing the JSON array, closing
	// the CSV file) before exiting.
	atexit.Exit(0)
}

// runSimulation validates cfg, runs the deterministic core against stdout,
// and optionally serves the post-run monitor dashboard.
func runSimulation(cfg config.Config) error {
	if err := cfg.Validate(memory.MaxFrames); err != nil {
		return fmt.Errorf("pagesim: %w", err)
	}

	if cfg.Diag {
		printDiagBanner(cfg)
	}

	result, err := driver.Run(cfg, os.Stdout)
	if err != nil {
		return fmt.Errorf("pagesim: %w", err)
	}

	if cfg.Diag {
		monitor.PrintRSS(os.Stderr)
	}

	if cfg.Monitor {
		return monitor.Serve(cfg, result.Engine)
	}

	return nil
}

func printDiagBanner(cfg config.Config) {
	fmt.Fprintf(os.Stderr, "pagesim: frames=%d algo=%s options=%q\n",
		cfg.NumFrames, config.Algorithms[cfg.Algo], cfg.Options)
}
