package tree

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned when a path does not lead to a node.
var ErrNotFound = errors.New("path not found")

type node struct {
	leaf     bool
	value    any
	children map[string]*node
}

func newBranch() *node {
	return &node{leaf: false, value: nil, children: map[string]*node{}}
}

// Tree is an auto-vivifying tree of branches and leaves.
// The zero value is not usable; create one with New or Expand.
type Tree struct {
	root *node
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{root: newBranch()}
}

// Set stores value at path, creating intermediate branches on demand.
// Leaves found on the way are replaced by branches and the final segment is
// overwritten whether it held a leaf or a branch. Setting the empty path is a
// no-op.
func (t *Tree) Set(path Path, value any) {
	if len(path) == 0 {
		return
	}

	current := t.root

	for _, segment := range path[:len(path)-1] {
		child, ok := current.children[segment]
		if !ok || child.leaf {
			child = newBranch()
			current.children[segment] = child
		}

		current = child
	}

	current.children[path.Last()] = &node{leaf: true, value: value, children: nil}
}

// Get returns the value stored at path. A branch is returned as a plain
// nested map. It fails with ErrNotFound when a segment is missing or when an
// intermediate segment is a leaf.
func (t *Tree) Get(path Path) (any, error) {
	current := t.root

	for i, segment := range path {
		if current.leaf {
			return nil, fmt.Errorf("%w: %s is a value, not a section", ErrNotFound, path[:i])
		}

		child, ok := current.children[segment]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path[:i+1])
		}

		current = child
	}

	if current.leaf {
		return current.value, nil
	}

	return plain(current), nil
}

// Has reports whether a node exists at path.
func (t *Tree) Has(path Path) bool {
	_, err := t.Get(path)

	return err == nil
}

// Plain converts the tree into ordinary nested maps. The result shares no
// maps with the tree.
func (t *Tree) Plain() map[string]any {
	return plain(t.root)
}

// Leaves calls fn for every leaf in lexical path order.
func (t *Tree) Leaves(fn func(path Path, value any)) {
	walk(t.root, nil, fn)
}

func walk(n *node, prefix Path, fn func(Path, any)) {
	keys := make([]string, 0, len(n.children))
	for key := range n.children {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		child := n.children[key]
		path := append(prefix[:len(prefix):len(prefix)], key)

		if child.leaf {
			fn(path, child.value)

			continue
		}

		walk(child, path, fn)
	}
}

func plain(n *node) map[string]any {
	result := make(map[string]any, len(n.children))

	for key, child := range n.children {
		if child.leaf {
			result[key] = child.value

			continue
		}

		result[key] = plain(child)
	}

	return result
}

// Expand builds a tree from a nested mapping whose keys may contain dots, so
// that {"a.b": 1, "a": {"c": 2}} and {"a": {"b": 1, "c": 2}} produce the same
// tree. Keys are applied in lexical order at every level; when two keys write
// the same leaf, or a leaf and a branch meet at the same segment, the later
// write wins.
func Expand(input map[string]any) *Tree {
	result := New()
	expandInto(result, nil, input)

	return result
}

func expandInto(result *Tree, prefix Path, value any) {
	nested, isMap := asMap(value)
	if !isMap {
		result.Set(prefix, value)

		return
	}

	keys := make([]string, 0, len(nested))
	for key := range nested {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		path := append(prefix[:len(prefix):len(prefix)], strings.Split(key, Separator)...)
		expandInto(result, path, nested[key])
	}
}

// asMap accepts the mapping shapes produced by the JSON and YAML decoders.
func asMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case map[any]any:
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[fmt.Sprint(key)] = item
		}

		return converted, true
	case map[string]string:
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[key] = item
		}

		return converted, true
	default:
		return nil, false
	}
}
