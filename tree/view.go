package tree

import (
	"fmt"
	"sort"

	yamlparser "github.com/0xalexb/hjarta-params/config/parser/yaml"

	"github.com/goccy/go-yaml"
)

// View is a read-only nested mapping of resolved values.
//
// Namespaces can be walked one level at a time with Sub, or addressed in one
// step with Get, so these reads are equivalent:
//
//	view.Sub("server").Sub("http").Get("port")
//	view.Get("server.http.port")
//	view.Get("server", "http", "port")
type View struct {
	data map[string]any
}

// NewView wraps a deep copy of data.
func NewView(data map[string]any) View {
	return View{data: deepCopy(data)}
}

// Get returns the value or sub-mapping at the given path.
func (v View) Get(segments ...string) (any, bool) {
	var current any = v.data

	for _, segment := range P(segments...) {
		nested, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}

		current, ok = nested[segment]
		if !ok {
			return nil, false
		}
	}

	if nested, ok := current.(map[string]any); ok {
		return deepCopy(nested), true
	}

	return current, true
}

// Sub returns the namespace called name. A missing namespace, or a name that
// holds a plain value, gives an empty view.
func (v View) Sub(name string) View {
	nested, ok := v.data[name].(map[string]any)
	if !ok {
		return View{data: map[string]any{}}
	}

	return View{data: nested}
}

// Has reports whether the view contains the given path.
func (v View) Has(segments ...string) bool {
	_, ok := v.Get(segments...)

	return ok
}

// Keys returns the names at the top level of the view in lexical order.
func (v View) Keys() []string {
	keys := make([]string, 0, len(v.data))
	for key := range v.data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Map returns a deep copy of the view as nested maps.
func (v View) Map() map[string]any {
	return deepCopy(v.data)
}

// Decode fills target from the view, or from the namespace at path when path
// is not empty. Field names follow yaml struct tags.
func (v View) Decode(target any, path string) error {
	data, err := yaml.Marshal(v.data)
	if err != nil {
		return fmt.Errorf("encoding view: %w", err)
	}

	err = yamlparser.NewParser().Parse(data, target, path)
	if err != nil {
		return fmt.Errorf("decoding view: %w", err)
	}

	return nil
}

func deepCopy(data map[string]any) map[string]any {
	result := make(map[string]any, len(data))

	for key, value := range data {
		if nested, ok := value.(map[string]any); ok {
			result[key] = deepCopy(nested)

			continue
		}

		result[key] = value
	}

	return result
}
