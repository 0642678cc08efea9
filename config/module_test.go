package config_test

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/0xalexb/hjarta-params/check"
	"github.com/0xalexb/hjarta-params/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSetup = errors.New("setup failed")

//nolint:gochecknoglobals // counts Setup runs across configs
var setupRuns atomic.Int64

func sayHello() string { return "hello" }

//nolint:gochecknoinits // modules register themselves like database/sql drivers
func init() {
	config.RegisterModule("testmod.file1", config.Module{
		Symbols: map[string]any{"say_hello": sayHello},
	})

	config.RegisterModule("testmod.with_params", config.Module{
		Setup: func(cfg *config.Config) error {
			setupRuns.Add(1)
			cfg.DeclareSection("imported_section.blah", "").
				Param("p1", config.Param{Checker: check.Float()})

			return nil
		},
	})

	config.RegisterModule("testmod.chain", config.Module{
		Setup: func(cfg *config.Config) error {
			cfg.DeclareSection("chain", "").
				Param("next", config.Param{Checker: check.Module(cfg)})

			return nil
		},
	})

	config.RegisterModule("testmod.broken", config.Module{
		Setup: func(*config.Config) error { return errSetup },
	})
}

func TestModule_DiscoveryDeclaresImportedParams(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.DeclareSection("module.import", "").
		Param("module", config.Param{Checker: check.Module(cfg)})

	require.NoError(t, cfg.Collect(map[string]any{
		"module.import.module":     "testmod.with_params",
		"imported_section.blah.p1": 42.5,
	}))

	value, err := cfg.Get("imported_section.blah.p1")
	require.NoError(t, err)
	assert.InDelta(t, 42.5, value, 1e-9)

	handle, err := cfg.Get("module.import.module")
	require.NoError(t, err)

	module, ok := handle.(*config.Module)
	require.True(t, ok)
	assert.Equal(t, "testmod.with_params", module.Name)
}

func TestModule_ChainedDiscovery(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.DeclareSection("", "").Param("first", config.Param{Checker: check.Module(cfg)})

	require.NoError(t, cfg.Collect(map[string]any{
		"first":                    "testmod.chain",
		"chain.next":               "testmod.with_params",
		"imported_section.blah.p1": "1.5",
	}))

	value, err := cfg.Get("imported_section.blah.p1")
	require.NoError(t, err)
	assert.InDelta(t, 1.5, value, 1e-9)
}

func TestModule_SetupRunsOncePerConfig(t *testing.T) {
	cfg := config.New()
	cfg.DeclareSection("", "").Param("mod", config.Param{Checker: check.Module(cfg)})

	before := setupRuns.Load()

	require.NoError(t, cfg.Collect(map[string]any{"mod": "testmod.with_params"}))
	require.NoError(t, cfg.Collect(map[string]any{"mod": "testmod.with_params"}))

	_, err := cfg.Get("mod")
	require.NoError(t, err)

	assert.Equal(t, before+1, setupRuns.Load())
}

func TestModule_ImportedObject(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	cfg.DeclareSection("sec", "").
		Param("fn", config.Param{Checker: check.ImportedObject(cfg), Required: true}).
		Param("missing", config.Param{Checker: check.ImportedObject(cfg)}).
		Param("nomod", config.Param{Checker: check.ImportedObject(cfg)})

	require.NoError(t, cfg.Collect(map[string]any{
		"sec.fn":      "testmod.file1.say_hello",
		"sec.missing": "testmod.file1.say_goodbye",
		"sec.nomod":   "testmod.nothing.here",
	}))

	value, err := cfg.Get("sec.fn")
	require.NoError(t, err)

	fn, ok := value.(func() string)
	require.True(t, ok)
	assert.Equal(t, "hello", fn())

	failures := cfg.Validate()
	require.ErrorIs(t, failures["sec.missing"], config.ErrValidation)
	require.ErrorIs(t, failures["sec.nomod"], config.ErrValidation)
	assert.NotContains(t, failures, "sec.fn")
}

func TestModule_ImportErrors(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	_, err := cfg.Import("testmod.unknown")
	require.ErrorIs(t, err, config.ErrModuleNotFound)

	_, err = cfg.Import("testmod.broken")
	require.ErrorIs(t, err, errSetup)

	_, err = cfg.Import("testmod.broken")
	require.ErrorIs(t, err, errSetup, "a failed setup is retried")

	_, err = cfg.Lookup("testmod.file1", "nope")
	require.ErrorIs(t, err, config.ErrSymbolNotFound)

	assert.Subset(t, config.Modules(), []string{"testmod.broken", "testmod.chain", "testmod.file1", "testmod.with_params"})
}

func TestRegisterModule_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { config.RegisterModule("", config.Module{}) })
	assert.Panics(t, func() { config.RegisterModule("testmod.file1", config.Module{}) })
}

// growing declares a new parameter every time it checks a value.
type growing struct {
	cfg   *config.Config
	count *int
}

func (g growing) Check(value any) (any, error) {
	*g.count++
	g.cfg.DeclareSection("grow", "").Param(fmt.Sprintf("p%d", *g.count), config.Param{})

	return value, nil
}

func (growing) Help() string { return "grows" }

func TestCollect_NonTerminatingDiscovery(t *testing.T) {
	t.Parallel()

	count := 0

	cfg := config.New(config.WithMaxDiscoveryPasses(5))
	cfg.DeclareSection("", "").Param("seed", config.Param{Checker: growing{cfg: cfg, count: &count}})

	err := cfg.Collect(map[string]any{"seed": 1})
	require.ErrorIs(t, err, config.ErrNonTerminatingDiscovery)
	assert.Equal(t, 5, count)
}
