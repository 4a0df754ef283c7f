// Package main is pagesim's command-line entry point: a single root
// command, in the shape of the teacher's own CLI (akita/cmd/root.go),
// built on cobra/pflag so the spec's glued short-flag grammar
// (-f16 -ac -oOPFS) parses the way POSIX getopt would, without a
// hand-rolled flag parser.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/pagesim/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "pagesim -f<frames> -a<algo> [-o<opts>] <inputfile> <randomfile>",
	Short: "pagesim simulates a demand-paging virtual memory subsystem.",
	Long: "pagesim replays a trace of context switches, memory references, " +
		"and process exits against a pluggable page-replacement policy, " +
		"producing the exact paging-event sequence and final cost accounting.",
	Args: cobra.ExactArgs(2),
	RunE: runRoot,
}

var (
	flagFrames      int
	flagAlgo        string
	flagOptions     string
	flagEnvFile     string
	flagMonitor     bool
	flagMonitorPort int
	flagOpenBrowser bool
	flagDiag        bool
)

func init() {
	flags := rootCmd.Flags()
	flags.IntVarP(&flagFrames, "frames", "f", 0, "number of physical frames (1..128)")
	flags.StringVarP(&flagAlgo, "algo", "a", "", "replacement algorithm: f r c e a w")
	flags.StringVarP(&flagOptions, "options", "o", "", "output options: O P F S x y f, plus C/J/D trace sinks")
	flags.StringVar(&flagEnvFile, "envfile", "", "optional .env file overriding defaults for frames/algo/options")
	flags.BoolVar(&flagMonitor, "monitor", false, "serve a read-only dashboard of the finished run over HTTP")
	flags.IntVar(&flagMonitorPort, "monitor-port", 0, "port for --monitor (0 picks a random port)")
	flags.BoolVar(&flagOpenBrowser, "open", false, "open the monitor dashboard in a browser once it starts")
	flags.BoolVar(&flagDiag, "diag", false, "print host RSS next to the simulator's own frame accounting")
}

func loadDotEnv() {
	path := flagEnvFile
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "pagesim: warning: failed to load %s: %v\n", path, err)
		return
	}

	if flagFrames == 0 {
		if v, ok := os.LookupEnv("PAGESIM_FRAMES"); ok {
			fmt.Sscanf(v, "%d", &flagFrames)
		}
	}
	if flagAlgo == "" {
		flagAlgo = os.Getenv("PAGESIM_ALGO")
	}
	if flagOptions == "" {
		flagOptions = os.Getenv("PAGESIM_OPTIONS")
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	loadDotEnv()

	var algo byte
	if len(flagAlgo) > 0 {
		algo = flagAlgo[0]
	}

	cfg := config.Config{
		NumFrames:   flagFrames,
		Algo:        algo,
		Options:     flagOptions,
		InputFile:   args[0],
		RandFile:    args[1],
		Monitor:     flagMonitor,
		MonitorPort: flagMonitorPort,
		OpenBrowser: flagOpenBrowser,
		Diag:        flagDiag,
	}

	return runSimulation(cfg)
}

// Execute runs the root command, exiting 1 on any argument or simulation
// error per spec.md §7.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
