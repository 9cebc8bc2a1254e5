package arcflags

import (
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/bitset"
)

// examineVisitor sets bit on every edge examined by a settled vertex's
// relaxation pass, unconditionally of ShouldRelax: an edge examined
// out of an already settled vertex can lie on a shortest path into
// the tree the search is building, so marking only on successful
// relaxation would under-set flags.
type examineVisitor struct {
	dijkstra.BaseVisitor
	setBit func(graph.EdgeID, int)
	bit    int
}

func (v *examineVisitor) ExamineEdge(from graph.VertexID, l graph.Link) {
	if l.HasID {
		v.setBit(l.ID, v.bit)
	}
}

// sweep implements the per-cell loop shared by Preprocess and its
// mirror for the bidirectional variant: for every border
// vertex v of cell c, first mark the intra-cell edges feeding directly
// into v, then run a Dijkstra rooted at v over searchAdj, marking every
// edge the search examines. neighborOf(v) must yield the edges "into"
// v in whatever orientation searchAdj treats as forward-into-v: g.In
// for the plain forward-flags sweep, g.Out for the source-cell-indexed
// backward sweep (see Preprocess/PreprocessBidirectional).
func sweep(n uint32, neighborOf func(graph.VertexID) []graph.Link, searchAdj graph.Adjacency, cell []uint8, k int, border []bool, setBit func(graph.EdgeID, int)) {
	st := dijkstra.NewState(n)
	for c := 0; c < k; c++ {
		for v := graph.VertexID(0); v < graph.VertexID(n); v++ {
			if int(cell[v]) != c || !border[v] {
				continue
			}
			for _, l := range neighborOf(v) {
				if l.HasID && int(cell[l.To]) == c {
					setBit(l.ID, c)
				}
			}
			st.Reset()
			vis := &examineVisitor{setBit: setBit, bit: c}
			dijkstra.Run(searchAdj, v, vis, st)
		}
	}
}

func initFlags(g *graph.Graph, k int, initFwd, initBwd bool) {
	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		p := g.Props(e)
		if initFwd {
			p.FlagsFwd = bitset.New(k)
		}
		if initBwd {
			p.FlagsBwd = bitset.New(k)
		}
	}
}

// Preprocess computes the forward, target-cell-indexed arc-flags: for
// every cell c, every border vertex v of cell c seeds the
// intra-cell initialization and a reverse-graph Dijkstra from v, with
// examine_edge setting bit c of FlagsFwd on every edge touched. After
// this runs, FlagsFwd(e) has bit c set iff e lies on some shortest path
// ending at a vertex in cell c.
func Preprocess(g *graph.Graph, cell []uint8, k int) {
	initFlags(g, k, true, false)
	n := g.NumVertices()
	border := borderVertices(g, cell)
	rev := graph.NewReversed(g)
	setFwd := func(e graph.EdgeID, bit int) { g.Props(e).FlagsFwd.Set(bit) }
	sweep(n, g.In, rev, cell, k, border, setFwd)
}

// PreprocessBidirectional computes both flag sets: the
// forward, target-cell-indexed flags via Preprocess, and the backward,
// source-cell-indexed flags by applying the same procedure with the
// roles of "graph" and "reverse of graph" swapped: concretely, seeding
// from border vertices using g's out-edges (the in-edges of v in the
// reversed graph) and running the search forward over g itself (the
// reverse of the reverse). FlagsBwd(e) ends up with bit c set iff e
// lies on some shortest path starting at a vertex in cell c.
func PreprocessBidirectional(g *graph.Graph, cell []uint8, k int) {
	Preprocess(g, cell, k)
	initFlags(g, k, false, true)
	n := g.NumVertices()
	border := borderVertices(g, cell)
	setBwd := func(e graph.EdgeID, bit int) { g.Props(e).FlagsBwd.Set(bit) }
	sweep(n, g.Out, g, cell, k, border, setBwd)
}
