package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xalexb/hjarta-params/internal/table"
)

// ExitInvalid is the exit code used when validation fails.
const ExitInvalid = 1

// Report validates the configuration and, when anything is missing or
// invalid, writes a table of the failures to w and returns ExitInvalid.
// It writes nothing and returns 0 when everything resolves.
func (c *Config) Report(w io.Writer) int {
	failures := c.Validate()
	if len(failures) == 0 {
		return 0
	}

	rows := [][]string{{"Param", "Issue", "Got"}}

	for _, e := range c.entries() {
		failure, ok := failures[e.path.String()]
		if !ok {
			continue
		}

		if errors.Is(failure, ErrMissingValue) {
			rows = append(rows, []string{e.path.String(), "Required!", ""})

			continue
		}

		rows = append(rows, []string{e.path.String(), e.param.Help(), fmt.Sprint(failure.Value)})
	}

	err := table.Render(w, "Argument validation errors", rows)
	if err != nil {
		c.logger.Error("failed to write validation report", "error", err)
	}

	return ExitInvalid
}

// ValidateOrExit reports validation failures on standard error and exits
// the process when there are any.
func (c *Config) ValidateOrExit() {
	code := c.Report(os.Stderr)
	if code != 0 {
		os.Exit(code)
	}
}

// Summary writes a table of every parameter that currently resolves to a
// value. Parameters that fail to resolve are skipped.
func (c *Config) Summary(w io.Writer) error {
	rows := [][]string{{"Parameter", "Value"}}

	for _, e := range c.entries() {
		value, present, err := c.Resolve(e.path)
		if err != nil || !present {
			continue
		}

		rows = append(rows, []string{e.path.String(), fmt.Sprint(value)})
	}

	return table.Render(w, "Arguments defined", rows)
}
