package graph

// dynLinkID indexes into a DynamicGraph's flat link arena. It is the
// stable edge descriptor AddEdge returns, backing per-vertex
// singly-linked out- and in-lists with a free-list for O(1) reuse
// after removal, so links are addressed arena-plus-index rather than
// by raw pointers.
type dynLinkID uint32

const noLink = ^dynLinkID(0)

type dynLink struct {
	from, to   VertexID
	weight     uint32
	dir        Direction
	unpack     VertexID
	outNext    dynLinkID // next link in from's out-list
	inNext     dynLinkID // next link in to's in-list
	alive      bool
}

// DynamicGraph is the mutable adjacency-list graph CH contraction runs
// over: O(1) edge insertion, O(deg) predicate-based removal,
// and edge descriptors that stay valid for the life of the link. Every
// link is threaded onto both its source's out-list and its target's
// in-list, so Out and In are both O(deg), which the witness search
// needs for its backward half. No parallel-edge invariant is enforced;
// the contraction loop prunes dominated parallels itself.
type DynamicGraph struct {
	numVertices uint32
	outHead     []dynLinkID
	inHead      []dynLinkID
	links       []dynLink
	free        dynLinkID
}

// NewDynamicGraph creates an edgeless graph of n vertices.
func NewDynamicGraph(n uint32) *DynamicGraph {
	outHead := make([]dynLinkID, n)
	inHead := make([]dynLinkID, n)
	for i := range outHead {
		outHead[i] = noLink
		inHead[i] = noLink
	}
	return &DynamicGraph{numVertices: n, outHead: outHead, inHead: inHead, free: noLink}
}

// NumVertices returns |V|.
func (g *DynamicGraph) NumVertices() uint32 { return g.numVertices }

// AddEdge inserts a directed link (u,v) with the given weight,
// direction bit, and shortcut witness, returning a descriptor stable
// until the link is removed. O(1).
func (g *DynamicGraph) AddEdge(u, v VertexID, weight uint32, dir Direction, unpack VertexID) dynLinkID {
	link := dynLink{from: u, to: v, weight: weight, dir: dir, unpack: unpack, alive: true}
	var id dynLinkID
	if g.free != noLink {
		id = g.free
		g.free = g.links[id].outNext
		g.links[id] = link
	} else {
		id = dynLinkID(len(g.links))
		g.links = append(g.links, link)
	}
	g.links[id].outNext = g.outHead[u]
	g.outHead[u] = id
	g.links[id].inNext = g.inHead[v]
	g.inHead[v] = id
	return id
}

// RemoveEdge removes the single link behind descriptor id.
func (g *DynamicGraph) RemoveEdge(id dynLinkID) {
	l := g.links[id]
	g.spliceOut(l.from, l.to, id)
}

// RemoveOutEdgeIf removes every out-link of u for which pred returns
// true, O(deg(u)).
func (g *DynamicGraph) RemoveOutEdgeIf(u VertexID, pred func(to VertexID, weight uint32, dir Direction, unpack VertexID) bool) {
	cur := g.outHead[u]
	for cur != noLink {
		next := g.links[cur].outNext
		l := g.links[cur]
		if pred(l.to, l.weight, l.dir, l.unpack) {
			g.spliceOut(l.from, l.to, cur)
		}
		cur = next
	}
}

// spliceOut removes link id from both from's out-list and to's
// in-list, then returns it to the free-list.
func (g *DynamicGraph) spliceOut(from, to VertexID, id dynLinkID) {
	prev := noLink
	for cur := g.outHead[from]; cur != noLink; {
		next := g.links[cur].outNext
		if cur == id {
			if prev == noLink {
				g.outHead[from] = next
			} else {
				g.links[prev].outNext = next
			}
			break
		}
		prev = cur
		cur = next
	}
	prev = noLink
	for cur := g.inHead[to]; cur != noLink; {
		next := g.links[cur].inNext
		if cur == id {
			if prev == noLink {
				g.inHead[to] = next
			} else {
				g.links[prev].inNext = next
			}
			break
		}
		prev = cur
		cur = next
	}
	g.links[id].alive = false
	g.links[id].outNext = g.free
	g.free = id
}

// Out returns u's out-links. Iteration order is not part of the
// contract; callers must not rely on it.
func (g *DynamicGraph) Out(u VertexID) []Link {
	var links []Link
	for cur := g.outHead[u]; cur != noLink; cur = g.links[cur].outNext {
		l := &g.links[cur]
		links = append(links, Link{To: l.to, Weight: l.weight, Dir: l.dir, Unpack: l.unpack})
	}
	return links
}

// In returns v's in-links, with To set to each in-link's source.
func (g *DynamicGraph) In(v VertexID) []Link {
	var links []Link
	for cur := g.inHead[v]; cur != noLink; cur = g.links[cur].inNext {
		l := &g.links[cur]
		links = append(links, Link{To: l.from, Weight: l.weight, Dir: l.dir, Unpack: l.unpack})
	}
	return links
}
