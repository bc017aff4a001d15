// Package command runs external programs with bounded runtime and captured output.
package command

import (
	"errors"
	"time"
)

// DefaultTimeout is the default maximum duration of a single command.
const DefaultTimeout = 30 * time.Second

// DefaultMaxOutputBytes is the default cap on captured stdout and stderr (64 KiB each).
const DefaultMaxOutputBytes = 64 << 10

// Config holds the configuration for external command execution.
type Config struct {
	// Timeout is the maximum duration for a single command.
	// Must be at least 1s. Default: 30s.
	Timeout time.Duration `yaml:"timeout"`

	// MaxOutputBytes is the maximum captured size of each output stream.
	// Must be at least 1024. Default: 64 KiB.
	MaxOutputBytes int64 `yaml:"max_output_bytes"`
}

// ApplyDefaults sets default values for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxOutputBytes == 0 {
		c.MaxOutputBytes = DefaultMaxOutputBytes
	}
}

// Validate checks that configuration values are within acceptable ranges.
func (c *Config) Validate() error {
	if c.Timeout < time.Second {
		return errors.New("command: config: Timeout must be at least 1s")
	}
	if c.MaxOutputBytes < 1024 {
		return errors.New("command: config: MaxOutputBytes must be at least 1024")
	}
	return nil
}
