// Package config declares typed, namespaced parameters and resolves their
// final values from several sources.
//
// # Declaring
//
// Parameters live in sections. A section is a dotted namespace with a
// description; each parameter has a checker, an optional default and a
// required flag:
//
//	cfg := config.New()
//	cfg.DeclareSection("optimizer", "Optimizer parameters").
//	    Param("lr", config.Param{Checker: check.And(check.Float(), check.AtLeast(0)), Default: 0.1}).
//	    Param("steps", config.MustParam(reflect.Int, config.Required()))
//
// # Collecting
//
// Collect ingests nested mappings whose keys may be dotted. Calls accumulate
// and the last value collected for a path wins, so precedence is the order of
// the calls. The conventional order is files, then environment, then
// command-line and explicit values:
//
//	err := cfg.CollectFrom(
//	    config.FileSource{Path: "train.yaml"},
//	    config.EnvSource{},
//	    config.MapSource{"optimizer.lr": 0.5},
//	)
//
// Files are decoded as JSON when possible and as YAML otherwise, through the
// Parser and DataFetcher extension points.
//
// # Resolving
//
// Get and Resolve return one value, Materialize a read-only tree of all of
// them, and Validate every missing or invalid parameter keyed by path.
// Values are checked on every read and nothing is cached.
//
// # Modules
//
// A parameter checked by check.Module names a module registered with
// RegisterModule. Loading it during Collect may declare more parameters;
// Collect then reprocesses the same input until no new parameters appear.
//
// # Default instance
//
// Current returns a process-wide Config for programs that do not pass one
// around. SetCurrent replaces it, which is how tests isolate themselves.
package config
