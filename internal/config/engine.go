package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chessboy-go/internal/errors"
)

// EngineKind selects the engine implementation.
type EngineKind string

const (
	BuiltinEngine EngineKind = "builtin" // In-process search
	UCIEngine     EngineKind = "uci"     // External UCI program
)

// Engine levels, matching the bridge package.
const (
	MinEngineLevel     = 1
	MaxEngineLevel     = 7
	DefaultEngineLevel = 5
)

// EngineConfig holds settings for the computer opponent.
type EngineConfig struct {
	Kind EngineKind

	// External engine
	Name string
	Path string
	Args []string

	// Level is the default strength, MinEngineLevel to MaxEngineLevel
	Level int

	// MoveTimeout bounds a single search (0 = no limit)
	MoveTimeout time.Duration

	// Transcript records the UCI conversation when set
	Transcript string
}

// NewEngineConfig creates an EngineConfig with default values.
func NewEngineConfig() *EngineConfig {
	return &EngineConfig{
		Kind:        BuiltinEngine,
		Level:       DefaultEngineLevel,
		MoveTimeout: 30 * time.Second,
	}
}

// Validate checks that the engine configuration is valid.
func (e *EngineConfig) Validate() error {
	switch e.Kind {
	case BuiltinEngine:
	case UCIEngine:
		if e.Path == "" {
			return fmt.Errorf("uci engine needs a path: %w", errors.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("unknown engine kind %q: %w", e.Kind, errors.ErrInvalidConfig)
	}
	if e.Level < MinEngineLevel || e.Level > MaxEngineLevel {
		return fmt.Errorf("engine level %d outside %d-%d: %w",
			e.Level, MinEngineLevel, MaxEngineLevel, errors.ErrInvalidConfig)
	}
	if e.MoveTimeout < 0 {
		return fmt.Errorf("negative move timeout %s: %w", e.MoveTimeout, errors.ErrInvalidConfig)
	}
	return nil
}
