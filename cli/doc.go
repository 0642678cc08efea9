// Package cli exposes declared parameters as command-line flags.
//
// Every parameter path becomes a flag of the same name, so optimizer.lr is
// set with --optimizer.lr=0.5. The repeatable --config-file (-C) flag names
// JSON or YAML files collected before the environment and the flags:
//
//	prog -C base.yaml -C override.json --optimizer.lr=0.5
//
// Flags naming modules may declare more parameters; collection is repeated
// until no new ones appear, so flags for those parameters are accepted on the
// same command line. Augment wires all of this into a cobra command and puts
// one table per section in its help text.
package cli
