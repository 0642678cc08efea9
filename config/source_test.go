package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/hjarta-params/check"
	"github.com/0xalexb/hjarta-params/config"
	jsonparser "github.com/0xalexb/hjarta-params/config/parser/json"
	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDataFetcher struct {
	mock.Mock
}

func (m *MockDataFetcher) Fetch() ([]byte, error) {
	args := m.Called()

	data, _ := args.Get(0).([]byte)

	return data, args.Error(1)
}

type MockParser struct {
	mock.Mock
}

func (m *MockParser) Parse(data []byte, target any, path string) error {
	args := m.Called(data, target, path)

	return args.Error(0)
}

var errFetch = errors.New("fetch failed")

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func declareFileParams(cfg *config.Config) {
	cfg.DeclareSection("first.sec", "").Param("param", config.Param{Checker: check.Anything()})
	cfg.DeclareSection("second.sec", "").
		Param("param", config.Param{Checker: check.Anything()}).
		Param("param2", config.Param{Checker: check.Int()})
}

func TestDecode_FirstParserThatSucceedsWins(t *testing.T) {
	t.Parallel()

	fetcher := new(MockDataFetcher)
	fetcher.On("Fetch").Return([]byte("a: 1"), nil)

	failing := new(MockParser)
	failing.On("Parse", []byte("a: 1"), mock.Anything, "").Return(errors.New("not json"))

	result, err := config.Decode(fetcher, failing, yamlparser.NewParser())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.EqualValues(t, 1, result["a"])

	fetcher.AssertExpectations(t)
	failing.AssertExpectations(t)
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no parser", func(t *testing.T) {
		t.Parallel()

		_, err := config.Decode(new(MockDataFetcher))
		require.ErrorIs(t, err, config.ErrNoParser)
	})

	t.Run("fetch error", func(t *testing.T) {
		t.Parallel()

		fetcher := new(MockDataFetcher)
		fetcher.On("Fetch").Return(nil, errFetch)

		_, err := config.Decode(fetcher, jsonparser.NewParser())
		require.ErrorIs(t, err, errFetch)
		fetcher.AssertExpectations(t)
	})

	t.Run("every parser fails", func(t *testing.T) {
		t.Parallel()

		fetcher := new(MockDataFetcher)
		fetcher.On("Fetch").Return([]byte("{not: [valid"), nil)

		_, err := config.Decode(fetcher, jsonparser.NewParser(), yamlparser.NewParser())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parsing error")
	})

	t.Run("empty data", func(t *testing.T) {
		t.Parallel()

		fetcher := new(MockDataFetcher)
		fetcher.On("Fetch").Return([]byte("  \n"), nil)

		parser := new(MockParser)

		result, err := config.Decode(fetcher, parser)
		require.NoError(t, err)
		assert.Empty(t, result)
		parser.AssertNotCalled(t, "Parse", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCollectJSON(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "conf.json", `{
		"first": {"sec": {"param": "happy"}},
		"second.sec.param": "sad",
		"second.sec.param2": 3
	}`)

	cfg := config.New()
	declareFileParams(cfg)

	require.NoError(t, cfg.CollectJSON(path))

	view, err := cfg.Materialize()
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"first":  map[string]any{"sec": map[string]any{"param": "happy"}},
		"second": map[string]any{"sec": map[string]any{"param": "sad", "param2": 3}},
	}, view.Map())
}

func TestCollectYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "conf.yaml", `
first:
  sec:
    param: happy
second.sec.param: sad
second:
  sec:
    param2: "3"
`)

	cfg := config.New()
	declareFileParams(cfg)

	require.NoError(t, cfg.CollectYAML(path))

	value, err := cfg.Get("first.sec.param")
	require.NoError(t, err)
	assert.Equal(t, "happy", value)

	value, err = cfg.Get("second.sec.param")
	require.NoError(t, err)
	assert.Equal(t, "sad", value)

	value, err = cfg.Get("second.sec.param2")
	require.NoError(t, err)
	assert.Equal(t, 3, value)
}

func TestCollectFile_DetectsFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "json", file: "conf.json", content: `{"second": {"sec": {"param2": 7}}}`},
		{name: "yaml", file: "conf.yaml", content: "second:\n  sec:\n    param2: 7\n"},
		{name: "yaml without extension", file: "conf", content: "second.sec.param2: 7\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.New()
			declareFileParams(cfg)

			require.NoError(t, cfg.CollectFile(writeFile(t, tt.file, tt.content)))

			value, err := cfg.Get("second.sec.param2")
			require.NoError(t, err)
			assert.Equal(t, 7, value)
		})
	}
}

func TestCollectFile_Errors(t *testing.T) {
	t.Parallel()

	cfg := config.New()

	err := cfg.CollectFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	err = cfg.CollectJSON(writeFile(t, "conf.json", "a: 1\n"))
	require.Error(t, err)

	err = cfg.CollectFile(t.TempDir())
	require.Error(t, err)
}

func TestCollectEnv(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	declareFileParams(cfg)

	require.NoError(t, cfg.CollectEnv([]string{
		"first.sec.param=from env",
		"second.sec.param2=12",
		"PATH=/usr/bin",
		"malformed",
		"=nokey",
	}))

	value, err := cfg.Get("first.sec.param")
	require.NoError(t, err)
	assert.Equal(t, "from env", value)

	value, err = cfg.Get("second.sec.param2")
	require.NoError(t, err)
	assert.Equal(t, 12, value)
}

func TestCollectFrom_PrecedenceFollowsOrder(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "conf.yaml", "second:\n  sec:\n    param: file\n    param2: 1\n")

	cfg := config.New()
	declareFileParams(cfg)

	require.NoError(t, cfg.CollectFrom(
		config.FileSource{Path: path},
		config.EnvSource{Environ: []string{"second.sec.param2=2"}},
		config.MapSource{"second.sec.param": "explicit"},
	))

	view, err := cfg.Materialize()
	require.NoError(t, err)

	value, _ := view.Get("second", "sec", "param")
	assert.Equal(t, "explicit", value)

	value, _ = view.Get("second", "sec", "param2")
	assert.Equal(t, 2, value)
}

func TestCollectFrom_StopsAtFailingSource(t *testing.T) {
	t.Parallel()

	cfg := config.New()
	declareFileParams(cfg)

	err := cfg.CollectFrom(
		config.MapSource{"second.sec.param": "kept"},
		config.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")},
		config.MapSource{"second.sec.param": "never"},
	)
	require.Error(t, err)

	value, err := cfg.Get("second.sec.param")
	require.NoError(t, err)
	assert.Equal(t, "kept", value)
}
