// Package config provides configuration for the chessboy server and tools.
package config

import (
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=errors only, 1=normal, 2=debug

	Server ServerConfig
	Engine EngineConfig
	Perft  PerftConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Server:     *NewServerConfig(),
		Engine:     *NewEngineConfig(),
		Perft:      *NewPerftConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// Validate checks every section and reports all problems found.
func (c *Config) Validate() error {
	var result *multierror.Error
	if err := c.Server.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Engine.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := c.Perft.Validate(); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}
