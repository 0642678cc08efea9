// Package json provides a JSON parser implementation for the config package.
//
// Numbers are decoded exactly: integral values become int64 and everything
// else float64, instead of encoding/json's float64 for every number. Paths are
// dotted namespaces, resolved against nested objects before decoding.
//
// Usage:
//
//	parser := json.NewParser()
//	var raw map[string]any
//	err := parser.Parse(data, &raw, "")
package json
