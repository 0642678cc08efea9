package params

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is an Fx application whose graph holds a resolved *config.Config.
type App struct {
	app *fx.App
}

// NewApp creates a new instance of App with Fx configured.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	return &App{
		app: configure(&options),
	}
}

func configure(options *Options) *fx.App {
	logger := createLogger(options.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	cfg := options.Config
	if cfg == nil {
		cfg = config.New(config.WithLogger(logger))
	}

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(logging.LoggerConfig{Level: options.LogLevel}),
		fx.Supply(logger),
		fx.Provide(resolve(cfg, options.Sources)),
		fx.Options(options.Modules...),
	)
}

// resolve collects the sources in order and fails the graph when any
// parameter is missing or invalid.
func resolve(cfg *config.Config, sources []config.Source) func() (*config.Config, error) {
	return func() (*config.Config, error) {
		err := cfg.CollectFrom(sources...)
		if err != nil {
			return nil, fmt.Errorf("collecting parameters: %w", err)
		}

		err = cfg.Validate().Err()
		if err != nil {
			return nil, fmt.Errorf("validating parameters: %w", err)
		}

		return cfg, nil
	}
}

func createLogger(level string, w io.Writer) *slog.Logger {
	return logging.NewLogger(logging.LoggerConfig{Level: level}, w)
}

// Start starts the Fx application.
func (app *App) Start() error {
	if app != nil && app.app != nil {
		err := app.app.Start(context.Background())
		if err != nil {
			return fmt.Errorf("failed to start app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}

// Run starts the application and blocks until an OS signal is received, then shuts down gracefully.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Stop stops the Fx application gracefully.
func (app *App) Stop() error {
	if app != nil && app.app != nil {
		err := app.app.Stop(context.Background())
		if err != nil {
			return fmt.Errorf("failed to stop app: %w", err)
		}

		return nil
	}

	return errAppNotInitialized
}
