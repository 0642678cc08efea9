package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyData is returned when the input data is empty.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the specified path is not found in the JSON document.
var ErrPathNotFound = errors.New("path not found")

// ErrTrailingData is returned when the document holds more than one JSON value.
var ErrTrailingData = errors.New("trailing data after JSON value")

// Parser implements config.Parser for JSON documents.
type Parser struct{}

// NewParser creates a new JSON parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes JSON data into the target.
// The path parameter is a dotted namespace; an empty path decodes the entire document.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyData
	}

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var document any

	err := decoder.Decode(&document)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	_, err = decoder.Token()
	if !errors.Is(err, io.EOF) {
		return ErrTrailingData
	}

	value, err := navigate(normalize(document), path)
	if err != nil {
		return err
	}

	return assign(value, target)
}

func navigate(document any, path string) (any, error) {
	path = strings.Trim(path, ".")
	if path == "" {
		return document, nil
	}

	current := document

	for _, segment := range strings.Split(path, ".") {
		object, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		current, ok = object[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
	}

	return current, nil
}

// assign stores generic targets directly and round-trips anything else
// through encoding/json so struct tags apply.
func assign(value any, target any) error {
	switch typed := target.(type) {
	case *any:
		*typed = value

		return nil
	case *map[string]any:
		object, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("unmarshal error: expected an object, got %T", value)
		}

		*typed = object

		return nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("re-encoding value: %w", err)
	}

	err = json.Unmarshal(encoded, target)
	if err != nil {
		return fmt.Errorf("unmarshal error: %w", err)
	}

	return nil
}

func normalize(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, item := range typed {
			typed[key] = normalize(item)
		}

		return typed
	case []any:
		for i, item := range typed {
			typed[i] = normalize(item)
		}

		return typed
	case json.Number:
		if integer, err := typed.Int64(); err == nil {
			return integer
		}

		float, err := typed.Float64()
		if err != nil {
			return typed.String()
		}

		return float
	default:
		return value
	}
}
