// chessboy-server serves chess games over HTTP and websockets, with a
// built-in or UCI engine as the opponent.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2/log"

	"github.com/lgbarn/chessboy-go/internal/config"
	"github.com/lgbarn/chessboy-go/internal/server"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chessboy-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := config.NewConfig()
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(2)
	}

	setupLogFile(cfg)
	setupLogger(cfg)
	transcriptFile := openTranscript(cfg)

	manager := server.NewGameManager(server.NewEngineFactory(cfg.Engine, transcriptFile), cfg)
	app := server.New(cfg, manager)

	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		<-stop
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("server shutdown: %v", err)
		}
	}()

	log.Infof("listening on %s with %s engine", cfg.Server.ListenAddr, cfg.Engine.Kind)
	err := app.Listen(cfg.Server.ListenAddr)

	if shutdownErr := manager.Shutdown(); shutdownErr != nil {
		log.Warnf("engine shutdown: %v", shutdownErr)
	}
	if transcriptFile != nil {
		_ = transcriptFile.Close()
	}
	if err != nil {
		log.Errorf("server stopped: %v", err)
		os.Exit(1)
	}
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

// setupLogger points fiber's logger at the configured log file.
func setupLogger(cfg *config.Config) {
	log.SetOutput(cfg.LogFile)
	log.SetLevel(logLevel(cfg.Verbosity))
}

// logLevel maps verbosity to a log level.
func logLevel(verbosity int) log.Level {
	switch {
	case verbosity <= 0:
		return log.LevelError
	case verbosity == 1:
		return log.LevelInfo
	default:
		return log.LevelDebug
	}
}

// openTranscript opens the UCI transcript file, if one was requested.
func openTranscript(cfg *config.Config) io.WriteCloser {
	if cfg.Engine.Transcript == "" {
		return nil
	}
	file, err := os.Create(cfg.Engine.Transcript)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating transcript file %s: %v\n", cfg.Engine.Transcript, err)
		os.Exit(1)
	}
	return file
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chessboy-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves chess games over HTTP and websockets.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nRoutes:\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games              create a game {fen, level}\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/:id          game state\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/moves    play {from, to, flag, promotion} or {uci}\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/undo     take back a move\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/position set the position {fen}\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/:id/engine   ask the engine to move {level}\n")
	fmt.Fprintf(os.Stderr, "  DELETE /api/games/:id          end a game\n")
	fmt.Fprintf(os.Stderr, "  GET    /ws/games/:id           websocket peer\n")
}
