// Package yaml decodes YAML configuration files and struct namespaces with
// github.com/goccy/go-yaml.
//
// A whole document decodes into a nested map whose keys may themselves be
// dotted; the config package expands those later. A non-empty path selects a
// namespace first:
//
//	var server ServerConfig
//	err := yaml.NewParser().Parse(data, &server, "server.http")
//
// Whitespace-only input is reported as ErrEmptyData, a missing namespace as
// ErrPathNotFound.
package yaml
