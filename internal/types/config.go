package types

import "log/slog"

// DefaultMaxAlloc caps any single allocation driven by a length read from
// the file.
const DefaultMaxAlloc = 64 << 20

// Config is the resolved per-call configuration handed to every reader.
type Config struct {
	Logger   *slog.Logger
	MaxAlloc int64
}

// DefaultConfig returns a Config with a discard logger and the default
// allocation ceiling.
func DefaultConfig() *Config {
	return &Config{
		Logger:   slog.New(slog.DiscardHandler),
		MaxAlloc: DefaultMaxAlloc,
	}
}

// Log returns the configured logger, never nil.
func (c *Config) Log() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

// Limit returns the allocation ceiling, falling back to DefaultMaxAlloc.
func (c *Config) Limit() int64 {
	if c == nil || c.MaxAlloc <= 0 {
		return DefaultMaxAlloc
	}
	return c.MaxAlloc
}
