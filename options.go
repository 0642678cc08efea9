package params

import (
	"github.com/0xalexb/hjarta-params/config"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules  []fx.Option
	LogLevel string
	Config   *config.Config
	Sources  []config.Source
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithConfig uses cfg, with its declared sections, instead of an empty Config.
func WithConfig(cfg *config.Config) Option {
	return func(opts *Options) {
		opts.Config = cfg
	}
}

// WithSources appends sources collected when the Config is first requested.
// Later sources take precedence, so pass files, then the environment, then
// explicit values.
func WithSources(sources ...config.Source) Option {
	return func(opts *Options) {
		opts.Sources = append(opts.Sources, sources...)
	}
}
