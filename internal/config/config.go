// Package config holds process-wide configuration for the Lumen framework.
//
// Configuration is set explicitly via Init and injected into the trace and
// validation layers; components never read flags ad hoc. Reset restores the
// defaults so tests can toggle settings without cross-test leakage.
package config

import "sync/atomic"

// Config controls optional checking behavior.
type Config struct {
	// StrictRefChecks enables the more expensive aliasing and scope checks
	// at trace time: deep scans of nested output structures for escaping
	// refs. Correct programs behave identically with the flag on or off;
	// the flag only affects how early incorrect ones are rejected.
	StrictRefChecks bool
}

// Default returns the default configuration.
func Default() Config {
	return Config{StrictRefChecks: true}
}

var current atomic.Value // Config

func init() {
	current.Store(Default())
}

// Init installs a configuration process-wide.
func Init(cfg Config) {
	current.Store(cfg)
}

// Reset restores the default configuration.
func Reset() {
	current.Store(Default())
}

// Current returns the installed configuration.
func Current() Config {
	return current.Load().(Config)
}
