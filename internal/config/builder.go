package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithListenAddr sets the server address.
func (b *ConfigBuilder) WithListenAddr(addr string) *ConfigBuilder {
	b.cfg.Server.ListenAddr = addr
	return b
}

// WithAllowOrigins sets the CORS origins.
func (b *ConfigBuilder) WithAllowOrigins(origins string) *ConfigBuilder {
	b.cfg.Server.AllowOrigins = origins
	return b
}

// WithMaxGames limits the number of concurrent games.
func (b *ConfigBuilder) WithMaxGames(n int) *ConfigBuilder {
	b.cfg.Server.MaxGames = n
	return b
}

// WithBuiltinEngine selects the in-process engine.
func (b *ConfigBuilder) WithBuiltinEngine() *ConfigBuilder {
	b.cfg.Engine.Kind = BuiltinEngine
	return b
}

// WithUCIEngine selects an external UCI engine.
func (b *ConfigBuilder) WithUCIEngine(name, path string, args ...string) *ConfigBuilder {
	b.cfg.Engine.Kind = UCIEngine
	b.cfg.Engine.Name = name
	b.cfg.Engine.Path = path
	b.cfg.Engine.Args = args
	return b
}

// WithEngineLevel sets the default engine level.
func (b *ConfigBuilder) WithEngineLevel(level int) *ConfigBuilder {
	b.cfg.Engine.Level = level
	return b
}

// WithMoveTimeout bounds each engine search.
func (b *ConfigBuilder) WithMoveTimeout(d time.Duration) *ConfigBuilder {
	b.cfg.Engine.MoveTimeout = d
	return b
}

// WithPerft sets the perft position and depth.
func (b *ConfigBuilder) WithPerft(fen string, depth int, divide bool) *ConfigBuilder {
	b.cfg.Perft.FEN = fen
	b.cfg.Perft.Depth = depth
	b.cfg.Perft.Divide = divide
	return b
}

// WithWorkers sets the number of perft workers.
func (b *ConfigBuilder) WithWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLog sets the log writer.
func (b *ConfigBuilder) WithLog(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
