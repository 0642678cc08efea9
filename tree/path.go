package tree

import (
	"slices"
	"strings"
)

// Separator joins path segments in their string form.
const Separator = "."

// keySeparator joins segments in map keys; it cannot appear in a dotted key.
const keySeparator = "\x00"

// Path is an ordered sequence of segments identifying a node in a Tree.
type Path []string

// P builds a Path from dotted strings or pre-split segments. Every argument
// is split on dots, so P("a.b") and P("a", "b") are the same path. Empty
// arguments are skipped.
func P(segments ...string) Path {
	path := make(Path, 0, len(segments))

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		path = append(path, strings.Split(segment, Separator)...)
	}

	return path
}

// String returns the dotted form of the path.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Key returns a comparable form of the path suitable for map keys.
func (p Path) Key() string {
	return strings.Join(p, keySeparator)
}

// Equal reports whether both paths have the same segments.
func (p Path) Equal(other Path) bool {
	return slices.Equal(p, other)
}

// Join returns a new path made of p followed by other.
func (p Path) Join(other Path) Path {
	joined := make(Path, 0, len(p)+len(other))
	joined = append(joined, p...)

	return append(joined, other...)
}

// Last returns the final segment, or an empty string for an empty path.
func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}

	return p[len(p)-1]
}

// HasPrefix reports whether prefix is a leading run of p.
func (p Path) HasPrefix(prefix Path) bool {
	return len(prefix) <= len(p) && slices.Equal(p[:len(prefix)], prefix)
}
