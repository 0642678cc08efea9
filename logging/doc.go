// Package logging builds the JSON slog loggers used by the configuration
// packages and lets the log level itself be a declared parameter, so it can be
// set from files, the environment or the command line like any other.
package logging
