// Package semidex builds a compact, navigable semi-index over a JSON
// document: a bitvector-backed structural bitmap and a balanced-
// parentheses encoding of the value tree, queried through a read-only
// Cursor. It decodes nothing eagerly — scalar and string values are
// only ever materialized when a caller asks for them.
package semidex

// Build scans source once and returns a navigable Index, or an error if
// no JSON value could be found in it. It is the package's top-level
// entry point.
func Build(source []byte, opts ...Option) (*Index, error) {
	return BuildIndex(source, opts...)
}
