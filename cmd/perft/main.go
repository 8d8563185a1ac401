// perft counts the leaf nodes of the legal move tree, for checking move
// generation against published counts.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"

	"github.com/lgbarn/chessboy-go/internal/config"
	"github.com/lgbarn/chessboy-go/internal/engine"
	"github.com/lgbarn/chessboy-go/internal/errors"
	"github.com/lgbarn/chessboy-go/internal/perft"
)

var (
	moveColor  = color.New(color.FgCyan)
	totalColor = color.New(color.Bold)
	passColor  = color.New(color.FgGreen, color.Bold)
	failColor  = color.New(color.FgRed, color.Bold)
)

// errMismatch is returned when the total differs from -expect.
var errMismatch = fmt.Errorf("perft count mismatch")

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}
	if *noColor {
		color.NoColor = true
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Perft.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *expect); err != nil {
		fmt.Fprintf(os.Stderr, "perft: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// run counts the configured position and prints the report to
// cfg.OutputFile. A non-zero expect is checked against the total.
func run(ctx context.Context, cfg *config.Config, expect uint64) error {
	state := engine.NewGame()
	if cfg.Perft.FEN != "" {
		var err error
		state, err = engine.Decode(cfg.Perft.FEN)
		if err != nil {
			return err
		}
	}

	report, err := perft.Divide(ctx, state, cfg.Perft.Depth, cfg.Perft.Workers)
	if err != nil {
		return err
	}
	printReport(cfg.OutputFile, report, cfg.Perft.Divide)

	if expect == 0 {
		return nil
	}
	if report.Nodes != expect {
		failColor.Fprintf(cfg.OutputFile, "FAIL")
		fmt.Fprintf(cfg.OutputFile, " expected %d\n", expect)
		return errors.Wrapf(errMismatch, "got %d, want %d", report.Nodes, expect)
	}
	passColor.Fprintln(cfg.OutputFile, "PASS")
	return nil
}

// printReport writes the divide lines, if requested, and the summary.
func printReport(w io.Writer, report *perft.Report, withDivide bool) {
	if withDivide {
		for _, move := range report.Moves() {
			moveColor.Fprintf(w, "%-6s", move)
			fmt.Fprintf(w, " %d\n", report.Divide[move])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "FEN:   %s\n", report.FEN)
	fmt.Fprintf(w, "Depth: %d\n", report.Depth)
	totalColor.Fprintf(w, "Nodes: %d\n", report.Nodes)
	fmt.Fprintf(w, "Time:  %s (%.0f nodes/s)\n", report.Elapsed.Round(1e6), report.NodesPerSecond())
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: perft [options]\n\n")
	fmt.Fprintf(os.Stderr, "Counts legal move sequences to a fixed depth.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}
