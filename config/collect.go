package config

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-params/tree"
)

// Collect ingests a nested mapping whose keys may be dotted. For every
// declared path present in raw, the value replaces whatever an earlier Collect
// stored; paths absent from raw keep their earlier value.
//
// Each value is also run through its checker once, with the result
// discarded, so that module checkers load their modules. When that declares
// new parameters the pass is repeated over the same input until the number of
// declared parameters stops growing.
//
// Precedence between sources is the caller's order: collect files first,
// then the environment, then command-line and explicit values.
func (c *Config) Collect(raw map[string]any) error {
	c.collectMu.Lock()
	defer c.collectMu.Unlock()

	input := tree.Expand(raw)
	known := c.entries()

	for pass := 1; ; pass++ {
		if pass > c.maxPasses {
			return fmt.Errorf("%w: still %d parameters after %d passes", ErrNonTerminatingDiscovery, len(known), c.maxPasses)
		}

		for _, e := range known {
			value, err := input.Get(e.path)
			if err != nil || value == nil {
				continue
			}

			c.store(e.path, value)

			_, err = e.param.check(value)
			if err != nil {
				c.logger.Debug("collected value does not check yet",
					slog.String("path", e.path.String()), slog.Any("error", err))
			}
		}

		next := c.entries()
		if len(next) == len(known) {
			c.logger.Debug("collection done", slog.Int("passes", pass), slog.Int("params", len(next)))

			return nil
		}

		c.logger.Debug("new parameters discovered",
			slog.Int("pass", pass), slog.Int("before", len(known)), slog.Int("after", len(next)))

		known = next
	}
}

// Resolve returns the final value of the parameter at path. The collected
// value is used when there is one, the default otherwise; either is passed
// through the checker on every call.
//
// present is false, with a nil error, for an optional parameter with neither
// value nor default. A required one fails with ErrMissingValue, a rejected
// value with ErrValidation, and an undeclared path with ErrUnknownParameter.
func (c *Config) Resolve(path tree.Path) (value any, present bool, err error) {
	e, raw, ok := c.lookup(path)
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownParameter, path)
	}

	if raw == nil {
		raw = e.param.Default
	}

	if raw == nil {
		if !e.param.Required {
			return nil, false, nil
		}

		return nil, false, &ParamError{Path: e.path, Kind: ErrMissingValue, Value: nil, Err: nil}
	}

	checked, err := e.param.check(raw)
	if err != nil {
		return nil, false, &ParamError{Path: e.path, Kind: ErrValidation, Value: raw, Err: err}
	}

	return checked, true, nil
}

// Get resolves the parameter at the path given as a dotted string or as
// segments; Get("a.b") and Get("a", "b") are the same lookup. An absent
// optional parameter yields nil.
func (c *Config) Get(segments ...string) (any, error) {
	value, _, err := c.Resolve(tree.P(segments...))

	return value, err
}

// Materialize resolves every parameter of an enabled section into a
// read-only nested view. Absent optional parameters are left out. The view
// is rebuilt on every call and never reflects later changes.
//
// Declaring both "a" and "a.b" is allowed, but materializing fails with
// ErrPathConflict while both have a value.
func (c *Config) Materialize() (tree.View, error) {
	result := tree.New()
	present := []tree.Path{}

	for _, e := range c.entries() {
		if !c.enabled(e) {
			continue
		}

		value, found, err := c.Resolve(e.path)
		if err != nil {
			return tree.View{}, err
		}

		if !found {
			continue
		}

		err = conflict(present, e.path)
		if err != nil {
			return tree.View{}, err
		}

		present = append(present, e.path)
		result.Set(e.path, value)
	}

	return tree.NewView(result.Plain()), nil
}

// conflict reports whether path is a namespace of, or lies under, a path
// already materialized.
func conflict(present []tree.Path, path tree.Path) error {
	for _, other := range present {
		switch {
		case path.HasPrefix(other):
			return fmt.Errorf("%w: %s and %s", ErrPathConflict, other, path)
		case other.HasPrefix(path):
			return fmt.Errorf("%w: %s and %s", ErrPathConflict, path, other)
		}
	}

	return nil
}

// Validate resolves every parameter of an enabled section and returns the
// missing and invalid ones keyed by dotted path.
func (c *Config) Validate() Errors {
	failures := Errors{}

	for _, e := range c.entries() {
		if !c.enabled(e) {
			continue
		}

		_, _, err := c.Resolve(e.path)

		var paramErr *ParamError
		if errors.As(err, &paramErr) {
			failures[e.path.String()] = paramErr
		}
	}

	return failures
}
