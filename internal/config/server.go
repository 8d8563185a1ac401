package config

import (
	"fmt"

	"github.com/lgbarn/chessboy-go/internal/errors"
)

// ServerConfig holds settings for the HTTP and websocket server.
type ServerConfig struct {
	// ListenAddr is the address the server listens on, e.g. ":3000"
	ListenAddr string

	// AllowOrigins is the CORS origin list, comma separated
	AllowOrigins string

	// MaxGames limits how many games may exist at once (0 = no limit)
	MaxGames int
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:   ":3000",
		AllowOrigins: "*",
	}
}

// Validate checks that the server configuration is valid.
func (s *ServerConfig) Validate() error {
	if s.ListenAddr == "" {
		return fmt.Errorf("listen address is empty: %w", errors.ErrInvalidConfig)
	}
	if s.MaxGames < 0 {
		return fmt.Errorf("max games (%d) is negative: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	return nil
}
