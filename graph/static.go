package graph

import (
	"fmt"
	"sort"

	"github.com/azybler/chaf/internal/bitset"
)

// VertexID is an integer vertex identifier in [0, NumVertices()).
type VertexID uint32

// EdgeID indexes into a graph's property array. Two edge descriptors
// compare equal iff they carry the same EdgeID: the CSR arena stores
// each edge twice (once per direction of traversal) but both copies
// share one EdgeID, so equality is a plain integer comparison as
// suggested for a pointer-free port of the property-map design.
type EdgeID uint32

// Direction classifies which way an edge may be relaxed. It is the
// "direction bit" carried per-link in the undirected-with-direction
// view CH preprocessing builds, and doubles as the both/forward/
// backward discriminator for ordinary edges (Both for a plain directed
// edge with no CH-specific restriction).
type Direction uint8

const (
	Forward Direction = iota
	Backward
	Both
)

// AdmitsForward reports whether d allows relaxing in the source-to-
// target direction.
func (d Direction) AdmitsForward() bool { return d == Forward || d == Both }

// AdmitsBackward reports whether d allows relaxing in the target-to-
// source direction (i.e. over the reversed edge).
func (d Direction) AdmitsBackward() bool { return d == Backward || d == Both }

// NoVertex marks an absent unpack witness: the edge is an original
// edge, not a shortcut.
const NoVertex = ^VertexID(0)

// EdgeProps is the property bundle carried by every edge: weight,
// CH direction and shortcut witness, and the arc-flags bit vectors for
// both the forward-flags and backward-flags variants. Callers
// that never run arc-flags preprocessing simply leave the flag sets at
// their zero value.
type EdgeProps struct {
	Weight    uint32
	Direction Direction
	Unpack    VertexID // NoVertex for an original (non-shortcut) edge

	FlagsFwd bitset.Set // indexed by target's cell; nil until arc-flags preprocessing runs
	FlagsBwd bitset.Set // indexed by source's cell; only used by the bidirectional AF variant
}

// InputEdge is one (source, target, properties) triple as accepted by
// Builder; the builder does not require any particular ordering.
type InputEdge struct {
	From, To VertexID
	Weight   uint32
	Dir      Direction
}

// Graph is the immutable forward-star (CSR) directed graph used for
// queries: a single arena of 2*|E| adjacency entries holds both the
// in-slice and out-slice of every vertex, sorted by the far endpoint,
// and built once by Builder. Edge property records are a separate flat
// array shared by both copies of an edge, so descriptors are plain
// EdgeID integers rather than pointers.
type Graph struct {
	vertexBegin    []uint32 // len n+1; vertex v's entries span [vertexBegin[v], vertexBegin[v+1])
	edgesSeparator []uint32 // len n; within a vertex's span, [begin,sep) is in-slice, [sep,end) is out-slice

	arenaOther []VertexID // len 2E; the far endpoint of each adjacency entry
	arenaEdge  []EdgeID   // len 2E; which property record this entry refers to

	props []EdgeProps // len E, indexed by EdgeID

	// Edge endpoints, indexed by EdgeID, kept alongside props so
	// Source/Target are O(1) without a slice scan.
	edgeFrom, edgeTo []VertexID
}

// NumVertices returns |V|.
func (g *Graph) NumVertices() uint32 { return uint32(len(g.vertexBegin) - 1) }

// NumEdges returns |E|.
func (g *Graph) NumEdges() uint32 { return uint32(len(g.props)) }

// Vertices returns the half-open range of all vertex ids.
func (g *Graph) Vertices() Range { return Range{0, g.NumVertices()} }

// OutDegree returns the out-degree of v.
func (g *Graph) OutDegree(v VertexID) int {
	return int(g.vertexBegin[v+1] - g.edgesSeparator[v])
}

// InDegree returns the in-degree of v.
func (g *Graph) InDegree(v VertexID) int {
	return int(g.edgesSeparator[v] - g.vertexBegin[v])
}

// Degree returns in-degree plus out-degree.
func (g *Graph) Degree(v VertexID) int { return g.OutDegree(v) + g.InDegree(v) }

// OutEdges returns the half-open arena range holding v's out-slice.
func (g *Graph) OutEdges(v VertexID) Range {
	return Range{g.edgesSeparator[v], g.vertexBegin[v+1]}
}

// InEdges returns the half-open arena range holding v's in-slice.
func (g *Graph) InEdges(v VertexID) Range {
	return Range{g.vertexBegin[v], g.edgesSeparator[v]}
}

// EdgeAt resolves an arena position (as returned by OutEdges/InEdges)
// to the EdgeID it refers to.
func (g *Graph) EdgeAt(arenaPos uint32) EdgeID { return g.arenaEdge[arenaPos] }

// OtherEndAt returns the far endpoint stored at an arena position: for
// a position in v's out-slice this is the edge's target; for a
// position in v's in-slice this is the edge's source.
func (g *Graph) OtherEndAt(arenaPos uint32) VertexID { return g.arenaOther[arenaPos] }

// AdjacentVertices returns the targets reachable by a single out-edge
// from v, in arena (sorted) order.
func (g *Graph) AdjacentVertices(v VertexID) []VertexID {
	r := g.OutEdges(v)
	return g.arenaOther[r.Begin:r.End]
}

// InAdjacentVertices returns the sources of v's in-edges, in arena
// (sorted) order.
func (g *Graph) InAdjacentVertices(v VertexID) []VertexID {
	r := g.InEdges(v)
	return g.arenaOther[r.Begin:r.End]
}

// Source returns e's source vertex.
func (g *Graph) Source(e EdgeID) VertexID { return g.edgeFrom[e] }

// Target returns e's target vertex.
func (g *Graph) Target(e EdgeID) VertexID { return g.edgeTo[e] }

// Props returns a pointer to e's mutable property bundle. Preprocessing
// (CH contraction writes shortcuts into a DynamicGraph instead, but
// arc-flags preprocessing writes flags directly here) uses this to
// update flags/weight in place.
func (g *Graph) Props(e EdgeID) *EdgeProps { return &g.props[e] }

// Edge returns the descriptor for the edge (u,v) if present. Static
// graphs built with parallel edges return the first match in arena
// order; callers that need all parallels should scan OutEdges
// directly.
func (g *Graph) Edge(u, v VertexID) (EdgeID, bool) {
	r := g.OutEdges(u)
	for i := r.Begin; i < r.End; i++ {
		if g.arenaOther[i] == v {
			return g.arenaEdge[i], true
		}
	}
	return 0, false
}

// Builder accumulates InputEdge values and produces the immutable CSR
// Graph in O(|V|+|E| log Δ): a counting-sort pass lays out the dual
// in/out arena, then each vertex's slices are stable-sorted.
type Builder struct {
	numVertices uint32
	edges       []InputEdge
}

// NewBuilder creates a Builder for a graph of n vertices.
func NewBuilder(n uint32) *Builder {
	return &Builder{numVertices: n}
}

// AddEdge stages one directed edge. Endpoints are validated at Build
// time, not here, so callers may add edges in any order.
func (b *Builder) AddEdge(from, to VertexID, weight uint32, dir Direction) {
	b.edges = append(b.edges, InputEdge{From: from, To: to, Weight: weight, Dir: dir})
}

// Build constructs the Graph, or returns an error if any edge
// references a vertex >= n.
func (b *Builder) Build() (*Graph, error) {
	n := b.numVertices
	for _, e := range b.edges {
		if e.From >= VertexID(n) || e.To >= VertexID(n) {
			return nil, fmt.Errorf("graph: edge (%d,%d) references vertex >= numVertices(%d)", e.From, e.To, n)
		}
	}

	numEdges := len(b.edges)
	props := make([]EdgeProps, numEdges)
	edgeFrom := make([]VertexID, numEdges)
	edgeTo := make([]VertexID, numEdges)
	for i, e := range b.edges {
		props[i] = EdgeProps{Weight: e.Weight, Direction: e.Dir, Unpack: NoVertex}
		edgeFrom[i] = e.From
		edgeTo[i] = e.To
	}

	outDeg := make([]uint32, n)
	inDeg := make([]uint32, n)
	for _, e := range b.edges {
		outDeg[e.From]++
		inDeg[e.To]++
	}

	vertexBegin := make([]uint32, n+1)
	edgesSeparator := make([]uint32, n)
	for v := uint32(0); v < n; v++ {
		vertexBegin[v+1] = vertexBegin[v] + inDeg[v] + outDeg[v]
		edgesSeparator[v] = vertexBegin[v] + inDeg[v]
	}

	arenaOther := make([]VertexID, 2*numEdges)
	arenaEdge := make([]EdgeID, 2*numEdges)

	inCursor := make([]uint32, n)
	outCursor := make([]uint32, n)
	copy(inCursor, vertexBegin[:n])
	copy(outCursor, edgesSeparator)

	for i, e := range b.edges {
		id := EdgeID(i)

		oPos := outCursor[e.From]
		arenaOther[oPos] = e.To
		arenaEdge[oPos] = id
		outCursor[e.From]++

		iPos := inCursor[e.To]
		arenaOther[iPos] = e.From
		arenaEdge[iPos] = id
		inCursor[e.To]++
	}

	g := &Graph{
		vertexBegin:    vertexBegin,
		edgesSeparator: edgesSeparator,
		arenaOther:     arenaOther,
		arenaEdge:      arenaEdge,
		props:          props,
		edgeFrom:       edgeFrom,
		edgeTo:         edgeTo,
	}
	g.sortSlices()
	return g, nil
}

// sortSlices stable-sorts each vertex's in-slice by source and
// out-slice by target, keeping arenaOther/arenaEdge entries paired.
func (g *Graph) sortSlices() {
	n := g.NumVertices()
	for v := VertexID(0); v < VertexID(n); v++ {
		inR := g.InEdges(v)
		sortArenaSpan(g.arenaOther, g.arenaEdge, inR.Begin, inR.End)
		outR := g.OutEdges(v)
		sortArenaSpan(g.arenaOther, g.arenaEdge, outR.Begin, outR.End)
	}
}

func sortArenaSpan(other []VertexID, edge []EdgeID, begin, end uint32) {
	idx := make([]int, end-begin)
	for i := range idx {
		idx[i] = int(begin) + i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return other[idx[i]] < other[idx[j]]
	})
	otherCopy := make([]VertexID, len(idx))
	edgeCopy := make([]EdgeID, len(idx))
	for i, pos := range idx {
		otherCopy[i] = other[pos]
		edgeCopy[i] = edge[pos]
	}
	copy(other[begin:end], otherCopy)
	copy(edge[begin:end], edgeCopy)
}
