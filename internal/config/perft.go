package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/chessboy-go/internal/errors"
)

// PerftConfig holds settings for move generation counts.
type PerftConfig struct {
	FEN     string
	Depth   int
	Workers int
	Divide  bool // Print the count below each root move
}

// NewPerftConfig creates a PerftConfig with default values.
func NewPerftConfig() *PerftConfig {
	return &PerftConfig{
		Depth:   3,
		Workers: runtime.NumCPU(),
	}
}

// Validate checks that the perft configuration is valid.
func (p *PerftConfig) Validate() error {
	if p.Depth < 1 {
		return fmt.Errorf("perft depth %d is less than 1: %w", p.Depth, errors.ErrInvalidConfig)
	}
	if p.Workers < 1 {
		return fmt.Errorf("perft workers %d is less than 1: %w", p.Workers, errors.ErrInvalidConfig)
	}
	return nil
}
