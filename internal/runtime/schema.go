// Package runtime holds the immutable compiled form of a JSON Schema.
//
// A Schema is an arena of Nodes addressed by NodeID. Each Node carries its
// compiled keywords in schema-document order; subschemas are referenced by
// NodeID so that recursive schemas need no pointer cycles.
package runtime

import "github.com/jacoelho/jsonschema/internal/dialect"

// Schema is the immutable runtime representation used by validation sessions.
// It is safe for concurrent readers.
type Schema struct {
	Nodes   []Node
	Root    NodeID
	Dialect dialect.Dialect
	index   map[string]NodeID
}

// NewSchema creates an empty schema arena.
func NewSchema() *Schema {
	return &Schema{
		Nodes: make([]Node, 1),
		index: make(map[string]NodeID),
	}
}

// Alloc reserves a node for location and returns its ID. Allocating a known
// location returns the existing ID and false.
func (s *Schema) Alloc(location string) (NodeID, bool) {
	if id, ok := s.index[location]; ok {
		return id, false
	}
	id := NodeID(len(s.Nodes))
	s.Nodes = append(s.Nodes, Node{Location: location})
	s.index[location] = id
	return id, true
}

// Lookup returns the node compiled for location.
func (s *Schema) Lookup(location string) (NodeID, bool) {
	id, ok := s.index[location]
	return id, ok
}

// Node returns the node for id.
func (s *Schema) Node(id NodeID) *Node {
	return &s.Nodes[id]
}

// Len returns the number of compiled nodes.
func (s *Schema) Len() int {
	return len(s.Nodes) - 1
}
