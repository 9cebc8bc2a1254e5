package graph

// VertexMap is a dense property-map view over a per-vertex attribute:
// a small get/put interface backed by a flat array indexed by
// VertexID, sized once for the graph's vertex count.
type VertexMap[T any] struct {
	data []T
}

// NewVertexMap creates a map of n entries, each initialized to zero.
func NewVertexMap[T any](n uint32) VertexMap[T] {
	return VertexMap[T]{data: make([]T, n)}
}

// NewVertexMapFill creates a map of n entries, each initialized to v.
func NewVertexMapFill[T any](n uint32, v T) VertexMap[T] {
	m := NewVertexMap[T](n)
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

// Get returns the value for vertex v.
func (m VertexMap[T]) Get(v VertexID) T { return m.data[v] }

// Put sets the value for vertex v.
func (m VertexMap[T]) Put(v VertexID, value T) { m.data[v] = value }

// Len returns the number of entries.
func (m VertexMap[T]) Len() int { return len(m.data) }

// EdgeMap is the EdgeID-indexed counterpart of VertexMap.
type EdgeMap[T any] struct {
	data []T
}

// NewEdgeMap creates a map of n entries, each initialized to zero.
func NewEdgeMap[T any](n uint32) EdgeMap[T] {
	return EdgeMap[T]{data: make([]T, n)}
}

// Get returns the value for edge e.
func (m EdgeMap[T]) Get(e EdgeID) T { return m.data[e] }

// Put sets the value for edge e.
func (m EdgeMap[T]) Put(e EdgeID, value T) { m.data[e] = value }

// Len returns the number of entries.
func (m EdgeMap[T]) Len() int { return len(m.data) }

// VertexIndex is the identity property map vertex_index(): every
// vertex maps to its own integer id. It exists so algorithms written
// against the property-map interface can use a vertex id directly as
// an array index without a special case.
type VertexIndex struct{}

// Get returns v's own index.
func (VertexIndex) Get(v VertexID) uint32 { return uint32(v) }
