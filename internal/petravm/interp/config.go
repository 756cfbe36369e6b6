package interp

import "fmt"

// Config configures one interpreter run. Grounded on the teacher's
// utils.Config builder shape (With... setters + Validate).
type Config struct {
	// MaxSteps bounds the number of instructions executed, guarding
	// against runaway programs. Zero means "use the default".
	MaxSteps uint64

	// Observer receives optional debug notifications; defaults to
	// NoopObserver.
	Observer Observer
}

// DefaultConfig returns the interpreter's default run configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxSteps: 10_000_000,
		Observer: NoopObserver{},
	}
}

// WithMaxSteps sets the step bound.
func (c *Config) WithMaxSteps(n uint64) *Config {
	c.MaxSteps = n
	return c
}

// WithObserver sets the debug observer.
func (c *Config) WithObserver(o Observer) *Config {
	c.Observer = o
	return c
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	if c.MaxSteps == 0 {
		return fmt.Errorf("interp: MaxSteps must be positive")
	}
	if c.Observer == nil {
		return fmt.Errorf("interp: Observer must not be nil")
	}
	return nil
}
