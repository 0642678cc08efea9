package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Parse_KeepsIntegers(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`{"test": {"json": {"p1": 17, "p2": 1.5}}, "test.json.p3": "x"}`)

	var result map[string]any

	err := parser.Parse(data, &result, "")

	require.NoError(t, err)
	assert.Equal(t, "x", result["test.json.p3"])

	nested, ok := result["test"].(map[string]any)
	require.True(t, ok)

	inner, ok := nested["json"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, int64(17), inner["p1"])
	assert.InDelta(t, 1.5, inner["p2"], 0.0001)
}

func TestParser_Parse_Path(t *testing.T) {
	t.Parallel()

	parser := NewParser()

	data := []byte(`{"server": {"http": {"host": "localhost", "port": 8080}}}`)

	var result struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}

	err := parser.Parse(data, &result, "server.http")

	require.NoError(t, err)
	assert.Equal(t, "localhost", result.Host)
	assert.Equal(t, 8080, result.Port)

	var port any

	require.NoError(t, parser.Parse(data, &port, "server.http.port"))
	assert.Equal(t, int64(8080), port)
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		data    string
		path    string
		wantErr error
	}{
		{
			name:    "empty data",
			data:    "",
			path:    "",
			wantErr: ErrEmptyData,
		},
		{
			name:    "missing path",
			data:    `{"a": {"b": 1}}`,
			path:    "a.c",
			wantErr: ErrPathNotFound,
		},
		{
			name:    "path through a value",
			data:    `{"a": 1}`,
			path:    "a.b",
			wantErr: ErrPathNotFound,
		},
		{
			name:    "two documents",
			data:    `{"a": 1} {"b": 2}`,
			path:    "",
			wantErr: ErrTrailingData,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var result any

			err := NewParser().Parse([]byte(testCase.data), &result, testCase.path)
			require.ErrorIs(t, err, testCase.wantErr)
		})
	}
}

func TestParser_Parse_YAMLIsRejected(t *testing.T) {
	t.Parallel()

	var result map[string]any

	err := NewParser().Parse([]byte("prio.p1: 1\nprio.p2: 2\n"), &result, "")

	require.Error(t, err)
}

func TestParser_Parse_ObjectExpected(t *testing.T) {
	t.Parallel()

	var result map[string]any

	err := NewParser().Parse([]byte(`[1, 2]`), &result, "")

	require.Error(t, err)
}
