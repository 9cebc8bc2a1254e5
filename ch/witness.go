package ch

import (
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
)

// witnessPool holds the reusable search state for one contraction
// run's witness searches: priority queues and distance maps are
// pre-sized to |V| once and reused across the many bounded searches
// contraction performs, rather than reallocated per candidate
// shortcut.
type witnessPool struct {
	stFwd, stBwd *dijkstra.State
	tracker      *dijkstra.Tracker
}

func newWitnessPool(n uint32) *witnessPool {
	return &witnessPool{
		stFwd:   dijkstra.NewState(n),
		stBwd:   dijkstra.NewState(n),
		tracker: dijkstra.NewTracker(),
	}
}

// hopLimitVisitor restricts a witness search to the residual graph
// (direction filter, order(to) > order(c)) and bounds its effort by a
// hop budget. hops
// counts pop events (ExamineVertex calls) on this visitor's own side
// only; the shared bidirectional kernel stops the whole search the
// first time either side's budget is exhausted, since a witness search
// useful to both sides requires both sides still making progress.
type hopLimitVisitor struct {
	dijkstra.BaseVisitor
	order    Order
	orderC   uint32
	dijLimit int
	hops     int
}

func (v *hopLimitVisitor) ShouldRelax(from graph.VertexID, l graph.Link) bool {
	if !l.Dir.AdmitsForward() {
		return false
	}
	return v.order.Get(l.To) > v.orderC
}

func (v *hopLimitVisitor) ExamineVertex(graph.VertexID) { v.hops++ }

func (v *hopLimitVisitor) ShouldContinue() bool { return v.hops < v.dijLimit }

// witnessSearch is a hop-limited
// bidirectional Dijkstra from u to v over the residual graph (vertices
// already contracted, i.e. with order <= order(c), are unreachable;
// only links admitting forward traversal from the current vertex are
// relaxed). It reports whether a path of length < L was found, i.e.
// whether the shortcut (u,v) of length L is NOT needed.
func witnessSearch(pool *witnessPool, up *graph.DynamicGraph, order Order, c, u, v graph.VertexID, l uint32, dijLimit int) bool {
	pool.stFwd.Reset()
	pool.stBwd.Reset()
	pool.tracker.Reset()

	orderC := order.Get(c)
	visFwd := &hopLimitVisitor{order: order, orderC: orderC, dijLimit: dijLimit}
	visBwd := &hopLimitVisitor{order: order, orderC: orderC, dijLimit: dijLimit}

	rev := graph.NewReversed(up)
	dist := dijkstra.RunBidirectional(up, rev, u, v, visFwd, visBwd, pool.stFwd, pool.stBwd, pool.tracker)
	return dist < l
}
