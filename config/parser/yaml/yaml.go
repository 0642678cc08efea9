package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

var (
	// ErrEmptyData is returned for input that is empty or only whitespace.
	ErrEmptyData = errors.New("empty data")

	// ErrPathNotFound is returned when the namespace is absent from the document.
	ErrPathNotFound = errors.New("path not found")
)

// Parser decodes YAML documents, whole or narrowed to one namespace.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes the node at the dotted namespace path into target, or the
// whole document when path is empty. Keys that themselves contain dots can
// only be reached from the document root.
func (*Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.Unmarshal(data, target)
		if err != nil {
			return fmt.Errorf("decoding yaml: %w", err)
		}

		return nil
	}

	selector, err := yaml.PathString(toYAMLPath(path))
	if err != nil {
		return fmt.Errorf("namespace %q: %w", path, err)
	}

	switch err = selector.Read(bytes.NewReader(data), target); {
	case err == nil:
		return nil
	case yaml.IsNotFoundNodeError(err):
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	default:
		return fmt.Errorf("decoding yaml at %q: %w", path, err)
	}
}

// toYAMLPath turns "server.http" into "$.server.http".
func toYAMLPath(path string) string {
	return "$." + strings.Trim(path, ".")
}
