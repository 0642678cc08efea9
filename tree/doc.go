// Package tree provides the path-keyed nested data model used to ingest and
// expose parameter values.
//
// A Path is an ordered list of segments. Paths built from dotted strings and
// from pre-split segments are interchangeable:
//
//	tree.P("a.b.c")        -> [a b c]
//	tree.P("a", "b.c")     -> [a b c]
//	tree.Path{"a","b","c"} -> [a b c]
//
// A Tree is an auto-vivifying store of branches and leaves: Set creates
// intermediate branches on demand and overwrites whatever sits at the final
// segment. Expand turns a nested mapping whose keys may contain dots into a
// Tree, and Plain converts a Tree back into ordinary nested maps.
//
// View is the read-only result handed to callers. It is a deep copy, so
// mutating what it returns never feeds back into the Tree it came from.
package tree
