// Command paramsdemo declares a few parameters, reads them from config files,
// the environment and flags, and calls a function with the resolved values.
//
// Usage:
//
//	paramsdemo [-C file]... [--module1.params.a=X] [--module2.settings.c=N]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/check"
	"github.com/0xalexb/hjarta-params/cli"
	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/inject"
	"github.com/0xalexb/hjarta-params/logging"
)

func declare(cfg *config.Config) {
	cfg.DeclareSection("module1.params", "Optimizer parameters").
		Param("a", config.MustParam(check.Float(), config.Required())).
		Param("b", config.MustParam(check.And(check.Float(), check.AtLeast(0)), config.WithDefault(0)))

	cfg.DeclareSection("module2.settings", "Optimizer parameters").
		Param("c", config.MustParam(check.And(check.Int(), check.AtLeast(1)), config.Required()))

	logging.Declare(cfg)
}

func myCode(a, b float64, c int) float64 {
	return (a + b) * float64(c)
}

func newCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:           "paramsdemo",
		Short:         "Parameter resolution demo",
		Version:       fmt.Sprintf("%s (compiled %s)", params.Version, params.CompiledAt),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if code := cfg.Report(cmd.ErrOrStderr()); code != 0 {
				os.Exit(code)
			}

			logger, err := logging.FromConfig(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			logger.Debug("parameters resolved", "count", cfg.Len())

			err = cfg.Summary(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			compute := inject.New(myCode, "a", "b", "c").
				Param("module1.params.a").
				Param("module1.params.b").
				Param("module2.settings.c").
				Using(cfg)

			for _, args := range [][]any{nil, {inject.Arg("a", 7.0)}} {
				result, err := inject.Result[float64](compute, args...)
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), result)
			}

			return nil
		},
	}
}

func main() {
	cfg := config.New()
	declare(cfg)

	cmd := newCommand(cfg)
	args := os.Args[1:]

	err := cli.Augment(cmd, cfg, args, os.Environ())
	if err == nil {
		cmd.SetArgs(args)
		err = cmd.Execute()
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "paramsdemo:", err)
		os.Exit(config.ExitInvalid)
	}
}
