// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"strings"
	"time"

	"github.com/lgbarn/chessboy-go/internal/config"
)

var (
	// Server options
	listenAddr   = flag.String("listen", ":3000", "Address to listen on")
	allowOrigins = flag.String("origins", "*", "Allowed CORS origins, comma separated")
	maxGames     = flag.Int("maxgames", 0, "Maximum concurrent games (0 = no limit)")

	// Engine options
	enginePath  = flag.String("engine", "", "Path to a UCI engine (default: built-in engine)")
	engineName  = flag.String("engine-name", "", "Engine name used in ids (default: executable name)")
	engineArgs  = flag.String("engine-args", "", "Space separated arguments for the UCI engine")
	engineLevel = flag.Int("level", config.DefaultEngineLevel, "Default engine level (1-7)")
	moveTimeout = flag.Duration("movetime", 30*time.Second, "Maximum time for one engine move (0 = no limit)")
	transcript  = flag.String("transcript", "", "Write the UCI conversation to this file")

	// Logging
	logFile   = flag.String("log", "", "Write log to file")
	appendLog = flag.String("appendlog", "", "Append log to file")
	quiet     = flag.Bool("s", false, "Silent mode (errors only)")
	debug     = flag.Bool("debug", false, "Log debug messages")

	// Info
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(cfg *config.Config) {
	cfg.Server.ListenAddr = *listenAddr
	cfg.Server.AllowOrigins = *allowOrigins
	cfg.Server.MaxGames = *maxGames

	applyEngineFlags(cfg)

	switch {
	case *quiet:
		cfg.Verbosity = 0
	case *debug:
		cfg.Verbosity = 2
	}
}

// applyEngineFlags selects the engine and its settings.
func applyEngineFlags(cfg *config.Config) {
	cfg.Engine.Level = *engineLevel
	cfg.Engine.MoveTimeout = *moveTimeout
	cfg.Engine.Transcript = *transcript

	if *enginePath == "" {
		cfg.Engine.Kind = config.BuiltinEngine
		return
	}
	cfg.Engine.Kind = config.UCIEngine
	cfg.Engine.Path = *enginePath
	cfg.Engine.Name = *engineName
	cfg.Engine.Args = strings.Fields(*engineArgs)
}
