package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/internal/table"
	"github.com/0xalexb/hjarta-params/tree"
)

const (
	// ConfigFileFlag names configuration files to collect. It may be repeated.
	ConfigFileFlag = "config-file"
	// ConfigFileShorthand is the one-letter form of ConfigFileFlag.
	ConfigFileShorthand = "C"
)

const intro = `Arguments:
----------

Each argument can be defined from a JSON file, a YAML file, an environment
variable or from CLI arguments. For CLI just use:

--PATH.TO.ARG=value
`

// CollectArgs collects the files named by --config-file, then environ, then
// the parameter flags present in args, so flags take precedence. A nil environ
// skips the environment. Arguments that are not parameter flags are ignored.
//
// When collecting declares new parameters the whole sequence is repeated with
// flags for them, until the number of parameters stops growing or the
// Config's MaxDiscoveryPasses is exceeded.
func CollectArgs(cfg *config.Config, args, environ []string) error {
	for round := 1; ; round++ {
		if round > cfg.MaxDiscoveryPasses() {
			return fmt.Errorf("%w: command line keeps declaring parameters", config.ErrNonTerminatingDiscovery)
		}

		count := cfg.Len()

		err := collectOnce(cfg, args, environ)
		if err != nil {
			return err
		}

		if cfg.Len() == count {
			return nil
		}
	}
}

func collectOnce(cfg *config.Config, args, environ []string) error {
	flags := pflag.NewFlagSet("params", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.BoolP("help", "h", false, "")
	flags.StringArrayP(ConfigFileFlag, ConfigFileShorthand, nil, "")
	addParamFlags(flags, cfg)

	err := flags.Parse(args)
	if err != nil {
		return fmt.Errorf("parsing arguments: %w", err)
	}

	files, err := flags.GetStringArray(ConfigFileFlag)
	if err != nil {
		return fmt.Errorf("parsing arguments: %w", err)
	}

	for _, name := range files {
		err = cfg.CollectFile(name)
		if err != nil {
			return err
		}
	}

	if environ != nil {
		err = cfg.CollectEnv(environ)
		if err != nil {
			return err
		}
	}

	values := map[string]any{}

	flags.Visit(func(flag *pflag.Flag) {
		if _, declared := cfg.Param(tree.P(flag.Name)); declared {
			values[flag.Name] = flag.Value.String()
		}
	})

	return cfg.Collect(values)
}

// addParamFlags defines a hidden string flag for every declared path not yet
// defined on flags.
func addParamFlags(flags *pflag.FlagSet, cfg *config.Config) {
	for _, path := range cfg.Paths() {
		name := path.String()
		if flags.Lookup(name) != nil {
			continue
		}

		flags.String(name, "", "")

		_ = flags.MarkHidden(name)
	}
}

// Augment collects args and environ into cfg, then adds the config-file flag
// and a hidden flag per parameter to cmd so cobra accepts them, and appends
// the parameter tables to cmd.Long.
func Augment(cmd *cobra.Command, cfg *config.Config, args, environ []string) error {
	err := CollectArgs(cfg, args, environ)
	if err != nil {
		return err
	}

	if cmd.Flags().Lookup(ConfigFileFlag) == nil {
		cmd.Flags().StringArrayP(ConfigFileFlag, ConfigFileShorthand, nil,
			"integrate a config file (json or yaml, can be repeated)")
	}

	addParamFlags(cmd.Flags(), cfg)

	usage, err := Usage(cfg)
	if err != nil {
		return err
	}

	cmd.Long = strings.TrimSpace(cmd.Long + "\n\n" + usage)

	return nil
}

// Usage renders the help text: how to set arguments, then one table per
// enabled section listing name, default, constraint and description.
func Usage(cfg *config.Config) (string, error) {
	var builder strings.Builder

	builder.WriteString(intro)

	for _, section := range cfg.Sections() {
		if !section.Enabled() {
			continue
		}

		rows := sectionRows(cfg, section)
		if len(rows) == 1 {
			continue
		}

		title := section.Desc()
		if title == "" {
			title = section.Namespace().String()
		}

		builder.WriteString("\n")

		err := table.Render(&builder, title, rows)
		if err != nil {
			return "", fmt.Errorf("rendering %s: %w", title, err)
		}
	}

	return builder.String(), nil
}

func sectionRows(cfg *config.Config, section *config.Section) [][]string {
	rows := [][]string{{"Name", "Default", "Constraint", "Description"}}
	seen := map[string]bool{}

	for _, path := range cfg.SectionPaths(section) {
		name := path.String()
		if seen[name] {
			continue
		}

		seen[name] = true

		param, ok := cfg.Param(path)
		if !ok {
			continue
		}

		def := ""

		switch {
		case param.Required:
			def = "Required!"
		case param.Default != nil:
			def = fmt.Sprint(param.Default)
		}

		rows = append(rows, []string{name, def, param.Help(), param.Desc})
	}

	return rows
}
