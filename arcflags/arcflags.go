// Package arcflags implements the Arc-Flags speedup technique:
// per-cell reverse multi-source preprocessing that computes a K-bit
// flag per edge, a flag-pruned Dijkstra query (plain and
// bidirectional), and the greedy/ranked flag-reduction passes that
// shrink the distinct-flag set to save memory while preserving
// correctness.
//
// Flags live directly on the static graph's own EdgeProps
// (FlagsFwd/FlagsBwd), not in a separate parallel structure: they are
// still reached exclusively through graph.Graph.Props, so they compose
// with the existing property-map abstraction the same way any
// other sub-property would, without this package needing to duplicate
// the graph's EdgeID-indexed storage.
package arcflags

import "github.com/azybler/chaf/graph"

// borderVertices computes, once per graph, the set of vertices with at
// least one neighbor (in either direction) in a different cell.
// Membership does not depend on which
// direction a later sweep runs in, since the neighbor set considered
// is the union of in- and out-adjacency either way.
func borderVertices(g *graph.Graph, cell []uint8) []bool {
	n := g.NumVertices()
	border := make([]bool, n)
	for v := graph.VertexID(0); v < graph.VertexID(n); v++ {
		c := cell[v]
		for _, l := range g.Out(v) {
			if cell[l.To] != c {
				border[v] = true
				break
			}
		}
		if border[v] {
			continue
		}
		for _, l := range g.In(v) {
			if cell[l.To] != c {
				border[v] = true
				break
			}
		}
	}
	return border
}
