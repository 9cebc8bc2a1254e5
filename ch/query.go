package ch

import (
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
)

// upwardVisitor restricts relaxation to upward edges: a link
// is relaxable iff it climbs the order, i.e. order(target) >
// order(source), and its Direction (per the uniform from->to invariant
// established in Prepare and preserved by the shortcuts Contract adds)
// admits the search's sense: AdmitsForward for the forward search,
// AdmitsBackward for the backward search, which walks the same stored
// upward links of the residual graph.
type upwardVisitor struct {
	dijkstra.BaseVisitor
	order    Order
	backward bool
}

func (v upwardVisitor) ShouldRelax(from graph.VertexID, l graph.Link) bool {
	if v.order.Get(l.To) <= v.order.Get(from) {
		return false
	}
	if v.backward {
		return l.Dir.AdmitsBackward()
	}
	return l.Dir.AdmitsForward()
}

// QueryPool holds the reusable per-call search state for repeated CH
// queries against one Graph. Independent queries may run concurrently
// against the same immutable Graph as long as each goroutine owns its
// own QueryPool.
type QueryPool struct {
	stFwd, stBwd *dijkstra.State
	tracker      *dijkstra.Tracker
}

// NewQueryPool allocates a QueryPool for a CH graph of n vertices.
func NewQueryPool(n uint32) *QueryPool {
	tr := dijkstra.NewTracker()
	// Upward searches only bound distances from above, so the search
	// must run until the candidate beats the cheaper queue top.
	tr.Criterion = dijkstra.StopMinTop
	return &QueryPool{
		stFwd:   dijkstra.NewState(n),
		stBwd:   dijkstra.NewState(n),
		tracker: tr,
	}
}

// Query answers the s-t shortest distance over chg: a
// bidirectional Dijkstra over the shortcut-augmented residual graph
// with both directions restricted to upward edges, the stopping
// criterion coming from dijkstra.RunBidirectional's shared Tracker.
// When path is true, the full original-edge path (shortcuts fully
// unpacked) is also returned.
func Query(chg *Graph, pool *QueryPool, s, t graph.VertexID, path bool) (dist uint32, vertices []graph.VertexID) {
	pool.stFwd.Reset()
	pool.stBwd.Reset()
	pool.tracker.Reset()

	visFwd := upwardVisitor{order: chg.Order}
	visBwd := upwardVisitor{order: chg.Order, backward: true}

	dist = dijkstra.RunBidirectional(chg.Up, chg.Up, s, t, visFwd, visBwd, pool.stFwd, pool.stBwd, pool.tracker)
	if !path || dist == dijkstra.Infinity {
		return dist, nil
	}
	return dist, Unpack(chg.Shortcuts, s, t, pool.stFwd.Pred)
}
