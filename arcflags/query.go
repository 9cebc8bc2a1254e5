package arcflags

import (
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
)

// forwardVisitor prunes the forward query search: an edge is relaxable
// iff its forward arc-flag has the target's cell bit set. It also stops
// the search as soon as t itself is settled, since nothing examined
// after that point can improve a distance the caller will read.
type forwardVisitor struct {
	dijkstra.BaseVisitor
	g          *graph.Graph
	targetCell int
	target     graph.VertexID
	done       bool
}

func (v *forwardVisitor) ShouldRelax(from graph.VertexID, l graph.Link) bool {
	return l.HasID && v.g.Props(l.ID).FlagsFwd.Bit(v.targetCell)
}

func (v *forwardVisitor) FinishVertex(vtx graph.VertexID) {
	if vtx == v.target {
		v.done = true
	}
}

func (v *forwardVisitor) ShouldContinue() bool { return !v.done }

// Query answers the s-t shortest distance with a pruned Dijkstra,
// relaxing only edges whose forward flag admits t's cell. st
// must be Reset (or fresh) before the call.
func Query(g *graph.Graph, cell []uint8, s, t graph.VertexID, st *dijkstra.State) uint32 {
	vis := &forwardVisitor{g: g, targetCell: int(cell[t]), target: t}
	dijkstra.Run(g, s, vis, st)
	return st.Dist[t]
}

// biVisitor relaxes edges per one direction's flag set only. Unlike
// forwardVisitor it never claims early termination of its own accord,
// since in the bidirectional kernel only the shared Tracker
// is allowed to decide when both halves are done; a per-side early
// stop here would risk cutting off the other half before the optimal
// meeting point is found.
type biVisitor struct {
	dijkstra.BaseVisitor
	g    *graph.Graph
	cell int
	fwd  bool
}

func (v biVisitor) ShouldRelax(from graph.VertexID, l graph.Link) bool {
	if !l.HasID {
		return false
	}
	p := v.g.Props(l.ID)
	if v.fwd {
		return p.FlagsFwd.Bit(v.cell)
	}
	return p.FlagsBwd.Bit(v.cell)
}

// QueryBidirectional answers the s-t shortest distance with the
// bidirectional arc-flags query: a forward half pruned on
// t's cell via FlagsFwd and a backward half (over the reversed graph)
// pruned on s's cell via FlagsBwd, sharing dijkstra's ordinary
// termination tracker.
func QueryBidirectional(g *graph.Graph, cell []uint8, s, t graph.VertexID, stFwd, stBwd *dijkstra.State, tr *dijkstra.Tracker) uint32 {
	visFwd := biVisitor{g: g, cell: int(cell[t]), fwd: true}
	visBwd := biVisitor{g: g, cell: int(cell[s]), fwd: false}
	rev := graph.NewReversed(g)
	return dijkstra.RunBidirectional(g, rev, s, t, visFwd, visBwd, stFwd, stBwd, tr)
}
