package ch

import "github.com/azybler/chaf/graph"

// flip swaps Forward and Backward, leaving Both unchanged. It is the
// key to a single-field Direction meaning the same thing regardless of
// which endpoint stores a given link: AdmitsForward always asks "can I
// walk this link's own stored from->to", never "what was the original
// edge's orientation". See Prepare for why this matters.
func flip(d graph.Direction) graph.Direction {
	switch d {
	case graph.Forward:
		return graph.Backward
	case graph.Backward:
		return graph.Forward
	default:
		return graph.Both
	}
}

// Prepare derives the undirected-with-direction-bit view contraction
// runs over: every directed edge (u,v,w,dir) of the input becomes two
// links in the returned DynamicGraph, one stored at u pointing to v
// (the edge's own orientation, direction copied verbatim) and one
// stored at v pointing to u (the mirror, direction flipped so that
// AdmitsForward still means "can I traverse this link's own from->to"
// uniformly at every vertex. Without the flip, a forward-only street
// would look forward-only when viewed from its tail AND its head,
// wrongly permitting traversal against its one-way direction from the
// head's adjacency list). This uniform meaning is what lets the
// witness search and the contraction loop use the same AdmitsForward
// check regardless of which side of an edge they are looking from.
//
// Dominated-parallel pruning then runs per vertex: among all out-links
// to the same neighbor, only the cheapest forward-capable and the
// cheapest backward-capable link survive.
func Prepare(g *graph.Graph) *graph.DynamicGraph {
	n := g.NumVertices()
	dg := graph.NewDynamicGraph(n)

	for v := graph.VertexID(0); v < graph.VertexID(n); v++ {
		for _, l := range g.Out(v) {
			dg.AddEdge(v, l.To, l.Weight, l.Dir, graph.NoVertex)
			dg.AddEdge(l.To, v, l.Weight, flip(l.Dir), graph.NoVertex)
		}
	}

	pruneDominatedParallels(dg)
	return dg
}

// pruneDominatedParallels leaves at most one forward and one backward
// link per neighbor pair (modulo ties, below): for each vertex
// and each of its neighbors, only the minimum-weight forward-capable
// link and the minimum-weight backward-capable link to that neighbor
// are kept (a single link achieving both minimums, e.g. a two-way
// street cheaper than any parallel, naturally survives as the sole
// survivor). Ties at the minimum are all kept rather than arbitrarily
// broken, since RemoveOutEdgeIf's predicate has no link identity to
// break a tie with; a harmless relaxation of "at most one" that never
// affects correctness, only leaves an occasional redundant parallel.
func pruneDominatedParallels(dg *graph.DynamicGraph) {
	for v := graph.VertexID(0); v < graph.VertexID(dg.NumVertices()); v++ {
		bestFwd := make(map[graph.VertexID]uint32)
		bestBwd := make(map[graph.VertexID]uint32)
		for _, l := range dg.Out(v) {
			if l.Dir.AdmitsForward() {
				if cur, ok := bestFwd[l.To]; !ok || l.Weight < cur {
					bestFwd[l.To] = l.Weight
				}
			}
			if l.Dir.AdmitsBackward() {
				if cur, ok := bestBwd[l.To]; !ok || l.Weight < cur {
					bestBwd[l.To] = l.Weight
				}
			}
		}
		dg.RemoveOutEdgeIf(v, func(to graph.VertexID, weight uint32, dir graph.Direction, unpack graph.VertexID) bool {
			if dir.AdmitsForward() && weight > bestFwd[to] {
				return true
			}
			if dir.AdmitsBackward() && weight > bestBwd[to] {
				return true
			}
			return false
		})
	}
}
