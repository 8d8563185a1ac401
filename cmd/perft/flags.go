// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"runtime"

	"github.com/lgbarn/chessboy-go/internal/config"
)

var (
	fen     = flag.String("fen", "", "Position to count from (default: initial position)")
	depth   = flag.Int("depth", 3, "Depth in plies")
	divide  = flag.Bool("divide", false, "Print the count below each root move")
	workers = flag.Int("workers", runtime.NumCPU(), "Number of worker goroutines")
	expect  = flag.Uint64("expect", 0, "Fail unless the total equals this count")
	noColor = flag.Bool("nocolor", false, "Disable colored output")

	help = flag.Bool("h", false, "Show help")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Perft.FEN = *fen
	cfg.Perft.Depth = *depth
	cfg.Perft.Divide = *divide
	cfg.Perft.Workers = *workers
}
