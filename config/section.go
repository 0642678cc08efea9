package config

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-params/tree"
)

// Predicate decides from the resolved configuration whether a section is in use.
//
// A predicate must read single values with Get or Resolve only. Materialize,
// Validate and Report evaluate predicates themselves, so calling them from a
// predicate recurses until the stack overflows.
type Predicate func(cfg *Config) (bool, error)

// Section is a namespace grouping parameters, with a description for help
// output and an optional predicate that switches the whole group off.
type Section struct {
	config   *Config
	ns       tree.Path
	desc     string
	enableIf Predicate
}

// Namespace returns the section's path prefix.
func (s *Section) Namespace() tree.Path {
	return append(tree.Path(nil), s.ns...)
}

// Desc returns the section description.
func (s *Section) Desc() string {
	return s.desc
}

// EnableIf sets the predicate deciding whether the section's parameters are
// validated, materialized and listed in help.
func (s *Section) EnableIf(predicate Predicate) *Section {
	s.config.mu.Lock()
	defer s.config.mu.Unlock()

	s.enableIf = predicate

	return s
}

// Enabled evaluates the predicate. It is never cached; a predicate that
// fails or panics disables the section.
func (s *Section) Enabled() (enabled bool) {
	s.config.mu.RLock()
	predicate := s.enableIf
	s.config.mu.RUnlock()

	if predicate == nil {
		return true
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			s.config.logger.Debug("section predicate panicked",
				slog.String("section", s.ns.String()), slog.String("panic", fmt.Sprint(recovered)))

			enabled = false
		}
	}()

	enabled, err := predicate(s.config)
	if err != nil {
		s.config.logger.Debug("section predicate failed",
			slog.String("section", s.ns.String()), slog.Any("error", err))

		return false
	}

	return enabled
}

// Param declares a parameter under the section and returns the section for chaining.
func (s *Section) Param(name string, param Param) *Section {
	s.config.DeclareParam(s, name, param)

	return s
}

// Params declares every parameter of the map in name order.
func (s *Section) Params(params map[string]Param) *Section {
	s.config.DeclareParams(s, params)

	return s
}
