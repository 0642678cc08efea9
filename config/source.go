package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	filefetcher "github.com/0xalexb/hjarta-params/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-params/config/parser/json"
	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"
)

// ErrNoParser is returned by Decode when no parser is given.
var ErrNoParser = errors.New("no parser")

// Parser decodes configuration data into a target structure.
//
// The path parameter selects a dotted namespace within the document, for
// example "server.http"; an empty path decodes the entire document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher reads raw configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Source produces a nested mapping to Collect.
type Source interface {
	Load() (map[string]any, error)
}

// MapSource is a literal mapping, typically explicit overrides.
type MapSource map[string]any

// Load returns the mapping itself.
func (m MapSource) Load() (map[string]any, error) {
	return m, nil
}

// FileSource reads a JSON or YAML file.
type FileSource struct {
	Path string
}

// Load reads and decodes the file, trying JSON first and YAML second.
func (f FileSource) Load() (map[string]any, error) {
	return LoadFile(f.Path)
}

// EnvSource exposes environment entries ("KEY=value") as a flat mapping of
// dotted keys. A nil Environ reads the process environment.
type EnvSource struct {
	Environ []string
}

// Load splits each entry at its first "=".
func (e EnvSource) Load() (map[string]any, error) {
	environ := e.Environ
	if environ == nil {
		environ = os.Environ()
	}

	result := make(map[string]any, len(environ))

	for _, item := range environ {
		key, value, ok := strings.Cut(item, "=")
		if !ok || key == "" {
			continue
		}

		result[key] = value
	}

	return result, nil
}

// Decode fetches data and decodes it as a mapping with the first parser that
// accepts it. Empty data decodes to an empty mapping.
func Decode(fetcher DataFetcher, parsers ...Parser) (map[string]any, error) {
	if len(parsers) == 0 {
		return nil, ErrNoParser
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	failures := make([]error, 0, len(parsers))

	for _, parser := range parsers {
		var result map[string]any

		err = parser.Parse(data, &result, "")
		if err == nil {
			if result == nil {
				result = map[string]any{}
			}

			return result, nil
		}

		failures = append(failures, err)
	}

	return nil, fmt.Errorf("parsing error: %w", errors.Join(failures...))
}

// LoadFile decodes a JSON or YAML file into a mapping.
func LoadFile(name string) (map[string]any, error) {
	return loadFile(name, jsonparser.NewParser(), yamlparser.NewParser())
}

func loadFile(name string, parsers ...Parser) (map[string]any, error) {
	fetcher, err := filefetcher.NewFetcher(name)()
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}

	result, err := Decode(fetcher, parsers...)
	if err != nil {
		return nil, fmt.Errorf("config file %q: %w", name, err)
	}

	return result, nil
}

// CollectFrom loads and collects every source in order, so later sources
// take precedence.
func (c *Config) CollectFrom(sources ...Source) error {
	for _, source := range sources {
		raw, err := source.Load()
		if err != nil {
			return fmt.Errorf("loading source: %w", err)
		}

		err = c.Collect(raw)
		if err != nil {
			return err
		}
	}

	return nil
}

// CollectFile collects a JSON or YAML file.
func (c *Config) CollectFile(name string) error {
	c.logger.Debug("collecting config file", slog.String("file", name))

	return c.CollectFrom(FileSource{Path: name})
}

// CollectJSON collects a file that must be JSON.
func (c *Config) CollectJSON(name string) error {
	raw, err := loadFile(name, jsonparser.NewParser())
	if err != nil {
		return err
	}

	return c.Collect(raw)
}

// CollectYAML collects a file that must be YAML.
func (c *Config) CollectYAML(name string) error {
	raw, err := loadFile(name, yamlparser.NewParser())
	if err != nil {
		return err
	}

	return c.Collect(raw)
}

// CollectEnv collects environment entries of the form "path=value".
// Names that are not declared paths are ignored.
func (c *Config) CollectEnv(environ []string) error {
	if environ == nil {
		environ = []string{}
	}

	return c.CollectFrom(EnvSource{Environ: environ})
}

// CollectEnviron collects the process environment.
func (c *Config) CollectEnviron() error {
	return c.CollectFrom(EnvSource{Environ: nil})
}
