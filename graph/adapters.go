package graph

// Link is the uniform adjacency entry the Dijkstra kernels iterate
// over, regardless of which concrete graph variant or adapter produced
// it: a target, the weight to reach it, the edge's CH direction bits,
// and (for shortcut edges) the vertex that witnesses it. ID lets a
// visitor fetch or mutate the edge's full property bundle when the
// adjacency came from a static Graph.
type Link struct {
	To     VertexID
	Weight uint32
	Dir    Direction
	Unpack VertexID
	ID     EdgeID
	HasID  bool // false for links sourced from a DynamicGraph, which has no stable EdgeID
}

// Adjacency is the minimal contract the Dijkstra kernels need: given a
// vertex, the set of links usable for one step of relaxation. Graph,
// DynamicGraph, and the Reversed/Incidence adapters below all satisfy
// it, so a single generic kernel (see package dijkstra) drives plain
// Dijkstra, CH witness search, CH queries, and arc-flags preprocessing
// alike.
type Adjacency interface {
	NumVertices() uint32
	Out(v VertexID) []Link
}

// Out returns v's out-adjacency as Links.
func (g *Graph) Out(v VertexID) []Link {
	r := g.OutEdges(v)
	links := make([]Link, 0, r.Len())
	for i := r.Begin; i < r.End; i++ {
		id := g.arenaEdge[i]
		p := &g.props[id]
		links = append(links, Link{To: g.arenaOther[i], Weight: p.Weight, Dir: p.Direction, Unpack: p.Unpack, ID: id, HasID: true})
	}
	return links
}

// In returns v's in-adjacency as Links, with To set to each in-edge's
// source (i.e. "the vertex reachable by walking this edge backward").
func (g *Graph) In(v VertexID) []Link {
	r := g.InEdges(v)
	links := make([]Link, 0, r.Len())
	for i := r.Begin; i < r.End; i++ {
		id := g.arenaEdge[i]
		p := &g.props[id]
		links = append(links, Link{To: g.arenaOther[i], Weight: p.Weight, Dir: p.Direction, Unpack: p.Unpack, ID: id, HasID: true})
	}
	return links
}

// Reversed adapts an Adjacency so Out(v) yields what the wrapped graph
// calls v's in-adjacency: the graph's complement, produced by
// swapping in- and out-slices.
// Links returned here keep the Dir stored on the wrapped edge; no
// direction bit is flipped.
type Reversed struct {
	inner interface {
		NumVertices() uint32
		In(v VertexID) []Link
	}
}

// NewReversed wraps g so that Out yields g's in-adjacency.
func NewReversed(g interface {
	NumVertices() uint32
	In(v VertexID) []Link
}) Reversed {
	return Reversed{inner: g}
}

// NumVertices delegates to the wrapped graph.
func (r Reversed) NumVertices() uint32 { return r.inner.NumVertices() }

// Out returns the wrapped graph's in-adjacency for v.
func (r Reversed) Out(v VertexID) []Link { return r.inner.In(v) }

// Incidence adapts an Adjacency so Out(v) yields both the in- and
// out-adjacency of v together, i.e. the undirected neighborhood.
// A directed edge appears once at each endpoint; both links keep the
// Dir stored on the wrapped edge.
type Incidence struct {
	inner interface {
		NumVertices() uint32
		Out(v VertexID) []Link
		In(v VertexID) []Link
	}
}

// NewIncidence wraps g so Out(v) yields v's combined in+out adjacency.
func NewIncidence(g interface {
	NumVertices() uint32
	Out(v VertexID) []Link
	In(v VertexID) []Link
}) Incidence {
	return Incidence{inner: g}
}

// NumVertices delegates to the wrapped graph.
func (a Incidence) NumVertices() uint32 { return a.inner.NumVertices() }

// Out returns v's out-links followed by its in-links (with each
// in-link's Dir left as stored, so a caller distinguishing the two
// must compare To against the edge it already knows, or consult
// Unpack/ID as appropriate).
func (a Incidence) Out(v VertexID) []Link {
	out := a.inner.Out(v)
	in := a.inner.In(v)
	links := make([]Link, 0, len(out)+len(in))
	links = append(links, out...)
	links = append(links, in...)
	return links
}
