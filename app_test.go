package params_test

import (
	"context"
	"log/slog"
	"testing"

	params "github.com/0xalexb/hjarta-params"
	"github.com/0xalexb/hjarta-params/check"
	"github.com/0xalexb/hjarta-params/config"
	"github.com/0xalexb/hjarta-params/logging"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

func TestNewApp_CreatesAppWithDefaultLogLevel(t *testing.T) {
	t.Parallel()

	app := params.NewApp()
	require.NotNil(t, app)
}

func TestNewApp_WithModules(t *testing.T) {
	t.Parallel()

	var invoked bool

	module := fx.Module("test",
		fx.Invoke(func() {
			invoked = true
		}),
	)

	app := params.NewApp(params.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.True(t, invoked)
}

func TestNewApp_LoggerIsAvailableInFxContainer(t *testing.T) {
	t.Parallel()

	var (
		capturedLogger *slog.Logger
		capturedConfig logging.LoggerConfig
	)

	module := fx.Module("test",
		fx.Invoke(func(logger *slog.Logger, settings logging.LoggerConfig) {
			capturedLogger = logger
			capturedConfig = settings
		}),
	)

	app := params.NewApp(
		params.WithLogLevel("warn"),
		params.WithModules(module),
	)

	err := app.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Stop() })
	require.NotNil(t, capturedLogger)
	require.Equal(t, "warn", capturedConfig.Level)
}

func TestNewApp_ResolvesSourcesInOrder(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.DeclareSection("server", "").
		Param("port", config.Param{Checker: check.Int(), Required: true})

	var port any

	app := params.NewApp(
		params.WithLogLevel("error"),
		params.WithConfig(cfg),
		params.WithSources(
			config.MapSource{"server.port": "80"},
			config.EnvSource{Environ: []string{"server.port=8080"}},
		),
		params.WithModules(fx.Invoke(func(resolved *config.Config) error {
			var err error

			port, err = resolved.Get("server.port")

			return err
		})),
	)

	require.NoError(t, app.Start())
	t.Cleanup(func() { _ = app.Stop() })
	require.Equal(t, 8080, port)
}

func TestNewApp_InvalidParametersFailStart(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.DeclareSection("server", "").
		Param("port", config.Param{Checker: check.Int(), Required: true})

	app := params.NewApp(
		params.WithLogLevel("error"),
		params.WithConfig(cfg),
		params.WithModules(fx.Invoke(func(*config.Config) {})),
	)

	err := app.Start()
	require.Error(t, err)
	require.Contains(t, err.Error(), "server.port: missing value")
}

func TestApp_Stop(t *testing.T) {
	t.Parallel()

	var stopCalled bool

	module := fx.Module("test",
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStop: func(_ context.Context) error {
					stopCalled = true

					return nil
				},
			})
		}),
	)

	app := params.NewApp(params.WithModules(module))
	require.NotNil(t, app)

	err := app.Start()
	require.NoError(t, err)

	err = app.Stop()
	require.NoError(t, err)
	require.True(t, stopCalled, "OnStop hook should be called")
}

func TestApp_NilApp(t *testing.T) {
	t.Parallel()

	var app *params.App

	require.Error(t, app.Start())
	require.Error(t, app.Stop())
	require.NotPanics(t, func() {
		app.Run()
	})
}

func TestApp_Run(t *testing.T) {
	t.Parallel()

	module := fx.Module("test",
		fx.Invoke(func(shutdowner fx.Shutdowner) {
			go func() {
				_ = shutdowner.Shutdown()
			}()
		}),
	)

	app := params.NewApp(params.WithModules(module))
	require.NotNil(t, app)

	require.NotPanics(t, func() {
		app.Run()
	})
}
