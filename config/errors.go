package config

import (
	"errors"
	"fmt"

	"github.com/0xalexb/hjarta-params/tree"
)

var (
	// ErrMissingValue is returned when a required parameter has neither a
	// collected value nor a default.
	ErrMissingValue = errors.New("missing value")

	// ErrValidation is returned when a parameter's checker rejects its value,
	// including a rejected default.
	ErrValidation = errors.New("invalid value")

	// ErrUnknownParameter is returned when looking up a path that was never declared.
	ErrUnknownParameter = errors.New("unknown parameter")

	// ErrNonTerminatingDiscovery is returned when loading modules keeps declaring
	// new parameters past the configured number of collection passes.
	ErrNonTerminatingDiscovery = errors.New("parameter discovery does not terminate")

	// ErrModuleNotFound is returned when importing a name that no module was registered under.
	ErrModuleNotFound = errors.New("module not found")

	// ErrSymbolNotFound is returned when a module does not export the requested symbol.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrPathConflict is returned by Materialize when a resolved parameter is
	// also the namespace of another resolved parameter.
	ErrPathConflict = errors.New("parameter path is both a value and a namespace")
)

// ParamError reports why a declared parameter could not be resolved.
// errors.Is matches both Kind (ErrMissingValue or ErrValidation) and the
// checker's own error.
type ParamError struct {
	Path  tree.Path
	Kind  error
	Value any
	Err   error
}

func (e *ParamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Path, e.Kind)
}

func (e *ParamError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Errors maps dotted parameter paths to the reason they failed to resolve.
type Errors map[string]*ParamError

// Err joins all errors in path order, or returns nil when there are none.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}

	joined := make([]error, 0, len(e))
	for _, path := range sortedKeys(e) {
		joined = append(joined, e[path])
	}

	return errors.Join(joined...)
}
