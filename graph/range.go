// Package graph implements the graph core: the immutable CSR static
// graph used for queries and arc-flags preprocessing, the mutable
// dynamic graph used during contraction, the adapters that expose a
// graph's complement and incidence views, and the property-map
// abstraction the kernels and preprocessing passes read and write
// through.
package graph

// Range is a half-open [Begin, End) span of indices into some backing
// array (an edge arena, a vertex list). It is the uniform return type
// for vertices(), out_edges(v), in_edges(v) and friends.
type Range struct {
	Begin, End uint32
}

// Len returns the number of indices in the range.
func (r Range) Len() int { return int(r.End - r.Begin) }

// Contains reports whether i lies in [Begin, End).
func (r Range) Contains(i uint32) bool { return i >= r.Begin && i < r.End }

// VertexIterator yields VertexID values in a Range in ascending order.
type VertexIterator struct {
	cur, end uint32
}

// Vertices returns an iterator over r.
func (r Range) Vertices() VertexIterator { return VertexIterator{cur: r.Begin, end: r.End} }

// Next returns the next vertex id and true, or (0, false) when
// exhausted.
func (it *VertexIterator) Next() (VertexID, bool) {
	if it.cur >= it.end {
		return 0, false
	}
	v := it.cur
	it.cur++
	return VertexID(v), true
}
