package file

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdin is the path that makes a Fetcher read standard input.
const Stdin = "-"

// ErrPathIsDirectory is returned when the path given to NewFetcher names a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher serves the contents of one configuration file, read once when the
// Fetcher is built.
type Fetcher struct {
	path string
	data []byte
}

// NewFetcher returns a constructor reading the file at fpath, or standard
// input when fpath is Stdin. The returned function fits fx.Provide.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if fpath == Stdin {
			return FromReader(Stdin, os.Stdin)
		}

		cleanPath := filepath.Clean(fpath)

		stat, err := os.Stat(cleanPath)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
		}

		data, err := os.ReadFile(cleanPath) // #nosec G304 -- configuration files are chosen by the operator
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
		}

		return &Fetcher{path: cleanPath, data: data}, nil
	}
}

// FromReader drains r into a Fetcher reporting name as its path.
func FromReader(name string, r io.Reader) (*Fetcher, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return &Fetcher{path: name, data: data}, nil
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.path
}

// Fetch returns a copy of the data read at construction.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
