package server

import (
	"io"

	"github.com/lgbarn/chessboy-go/internal/bridge"
	"github.com/lgbarn/chessboy-go/internal/config"
)

// EngineFactory creates the engine for a new game.
type EngineFactory func(level int) bridge.Engine

// NewEngineFactory returns a factory for the configured engine kind.
// transcript, when not nil, receives the UCI conversation of every game.
func NewEngineFactory(cfg config.EngineConfig, transcript io.Writer) EngineFactory {
	if cfg.Kind == config.UCIEngine {
		return func(level int) bridge.Engine {
			return bridge.NewUCIEngine(bridge.UCIConfig{
				Name:       cfg.Name,
				Path:       cfg.Path,
				Args:       cfg.Args,
				Level:      level,
				Transcript: transcript,
			})
		}
	}
	return func(level int) bridge.Engine {
		return bridge.NewBuiltinEngine(level)
	}
}
