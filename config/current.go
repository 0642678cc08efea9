package config

import "sync"

//nolint:gochecknoglobals // process-wide default instance with explicit replacement.
var (
	currentMu sync.Mutex
	current   *Config
)

// Current returns the process-wide Config, creating an empty one on first use.
func Current() *Config {
	currentMu.Lock()
	defer currentMu.Unlock()

	if current == nil {
		current = New()
	}

	return current
}

// SetCurrent installs cfg as the process-wide Config and returns the previous
// one. Passing nil makes the next Current call start from an empty Config.
func SetCurrent(cfg *Config) *Config {
	currentMu.Lock()
	defer currentMu.Unlock()

	previous := current
	current = cfg

	return previous
}
