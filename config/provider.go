package config

import (
	"fmt"
	"log/slog"
)

// Validator is implemented by structures that check themselves after decoding.
type Validator interface {
	Validate() error
}

// Provider returns a function that materializes cfg and decodes the namespace
// at path into target using yaml struct tags. If target implements Validator
// it is validated afterwards. The returned function fits fx.Provide.
func Provider[T any](target *T, path string) func(*Config) (*T, error) {
	return func(cfg *Config) (*T, error) {
		view, err := cfg.Materialize()
		if err != nil {
			return nil, fmt.Errorf("resolving parameters: %w", err)
		}

		err = view.Decode(target, path)
		if err != nil {
			return nil, fmt.Errorf("decoding %q: %w", path, err)
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		cfg.logger.Debug("parameters decoded", slog.String("path", path))

		return target, nil
	}
}
