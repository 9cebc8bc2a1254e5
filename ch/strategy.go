package ch

import (
	"container/heap"
	"math/rand"
	"sort"

	"github.com/azybler/chaf/graph"
)

// Strategy picks the order vertices are contracted in. Next returns
// the next vertex to contract and true, or false once every vertex has
// been returned.
type Strategy interface {
	Next(up *graph.DynamicGraph, order Order) (graph.VertexID, bool)
}

func uncontractedDegree(up *graph.DynamicGraph, order Order, v graph.VertexID) int {
	n := 0
	for _, l := range up.Out(v) {
		if !order.Contracted(l.To) {
			n++
		}
	}
	return n
}

// RandomStrategy returns vertices in a shuffled, seed-deterministic
// order.
type RandomStrategy struct {
	perm []graph.VertexID
	pos  int
}

// NewRandomStrategy builds a strategy visiting all n vertices in an
// order shuffled by a deterministic seed.
func NewRandomStrategy(n uint32, seed int64) *RandomStrategy {
	perm := make([]graph.VertexID, n)
	for i := range perm {
		perm[i] = graph.VertexID(i)
	}
	r := rand.New(rand.NewSource(seed))
	r.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })
	return &RandomStrategy{perm: perm}
}

// Next returns the next vertex in the shuffled order, skipping any
// already contracted out from under this strategy.
func (s *RandomStrategy) Next(up *graph.DynamicGraph, order Order) (graph.VertexID, bool) {
	for s.pos < len(s.perm) {
		v := s.perm[s.pos]
		s.pos++
		if !order.Contracted(v) {
			return v, true
		}
	}
	return 0, false
}

// DegreeStrategy sorts the not-yet-contracted vertices by current
// degree ascending on each call, shuffling equal-degree ties for
// determinism without bias.
type DegreeStrategy struct {
	rnd *rand.Rand
}

// NewDegreeStrategy creates a Degree ordering strategy with the given
// tie-break seed.
func NewDegreeStrategy(seed int64) *DegreeStrategy {
	return &DegreeStrategy{rnd: rand.New(rand.NewSource(seed))}
}

func (s *DegreeStrategy) Next(up *graph.DynamicGraph, order Order) (graph.VertexID, bool) {
	var candidates []graph.VertexID
	for v := graph.VertexID(0); v < graph.VertexID(up.NumVertices()); v++ {
		if !order.Contracted(v) {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	s.rnd.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	sort.SliceStable(candidates, func(i, j int) bool {
		return uncontractedDegree(up, order, candidates[i]) < uncontractedDegree(up, order, candidates[j])
	})
	return candidates[0], true
}

// lazyHeapEntry is one vertex's current priority estimate in the
// lazy priority queue.
type lazyHeapEntry struct {
	v        graph.VertexID
	priority float64
}

type lazyHeap []*lazyHeapEntry

func (h lazyHeap) Len() int           { return len(h) }
func (h lazyHeap) Less(i, j int) bool { return h[i].priority < h[j].priority }
func (h lazyHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *lazyHeap) Push(x any) {
	*h = append(*h, x.(*lazyHeapEntry))
}
func (h *lazyHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}

// LazyPriorityStrategy orders vertices by a lazily maintained cost
// estimate: priority(v) = L(v) + ordA/ordD + sumhA/sumhD, where L is a
// per-vertex level estimate, ordA/ordD are shortcuts-added vs.
// edges-removed counts, and sumhA/sumhD are the corresponding sums of
// edge hop-estimates h (h=1 for an original edge, h(shortcut) =
// h(in_edge)+h(out_edge)). "Lazy": on each Next, the current minimum is
// popped, its priority recomputed against the current graph state; if
// it is still the minimum it is returned, otherwise it is re-pushed
// with the fresh priority and the loop repeats.
//
// An isolated vertex (no incident edges: ordD=0, sumhD=0) gets
// priority L(v) with both ratios treated as zero; it is contracted
// whenever its level-only priority makes it the minimum, never causing
// a division by zero.
type LazyPriorityStrategy struct {
	h     lazyHeap
	level map[graph.VertexID]int
	hEdge map[edgeKey]int
}

type edgeKey struct {
	from, to graph.VertexID
}

// NewLazyPriorityStrategy builds the initial priority queue, seeding
// every vertex's level at 0 and every edge's hop estimate at 1.
func NewLazyPriorityStrategy(up *graph.DynamicGraph) *LazyPriorityStrategy {
	n := up.NumVertices()
	s := &LazyPriorityStrategy{
		level: make(map[graph.VertexID]int, n),
		hEdge: make(map[edgeKey]int),
	}
	s.h = make(lazyHeap, 0, n)
	initial := NewOrder(n)
	for v := graph.VertexID(0); v < graph.VertexID(n); v++ {
		for _, l := range up.Out(v) {
			s.hEdge[edgeKey{v, l.To}] = 1
		}
		e := &lazyHeapEntry{v: v, priority: s.computePriority(up, initial, v)}
		heap.Push(&s.h, e)
	}
	return s
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func (s *LazyPriorityStrategy) hopEstimate(from, to graph.VertexID) int {
	if h, ok := s.hEdge[edgeKey{from, to}]; ok {
		return h
	}
	return 1
}

func (s *LazyPriorityStrategy) computePriority(up *graph.DynamicGraph, order Order, v graph.VertexID) float64 {
	var in, out []graph.Link
	for _, l := range up.In(v) {
		if !order.Contracted(l.To) {
			in = append(in, l)
		}
	}
	for _, l := range up.Out(v) {
		if !order.Contracted(l.To) {
			out = append(out, l)
		}
	}

	ordD := len(in) + len(out)
	sumhD := 0
	for _, l := range in {
		sumhD += s.hopEstimate(l.To, v)
	}
	for _, l := range out {
		sumhD += s.hopEstimate(v, l.To)
	}

	ordA, sumhA := 0, 0
	for _, iE := range in {
		for _, oE := range out {
			if iE.To == oE.To {
				continue
			}
			ordA++
			sumhA += s.hopEstimate(iE.To, v) + s.hopEstimate(v, oE.To)
		}
	}

	return float64(s.level[v]) + ratio(ordA, ordD) + ratio(sumhA, sumhD)
}

// Next implements the lazy-update pop/recompute/compare loop.
func (s *LazyPriorityStrategy) Next(up *graph.DynamicGraph, order Order) (graph.VertexID, bool) {
	for s.h.Len() > 0 {
		e := heap.Pop(&s.h).(*lazyHeapEntry)
		if order.Contracted(e.v) {
			continue
		}
		fresh := s.computePriority(up, order, e.v)
		if s.h.Len() == 0 || fresh <= s.h[0].priority {
			return e.v, true
		}
		e.priority = fresh
		heap.Push(&s.h, e)
	}
	return 0, false
}

// OnContracted updates the level of every still-active neighbor of the
// just-contracted vertex c, L(neighbor) <- max(L(neighbor), L(c)+1),
// and records the hop estimate of every
// shortcut added in its place, so later priority recomputations see an
// up to date level/hop state. The contraction loop calls this once per
// contracted vertex, after shortcuts have been spliced in.
func (s *LazyPriorityStrategy) OnContracted(up *graph.DynamicGraph, order Order, c graph.VertexID, shortcuts []shortcutEdge) {
	lv := s.level[c]
	for _, l := range up.Out(c) {
		if lv+1 > s.level[l.To] {
			s.level[l.To] = lv + 1
		}
	}
	for _, l := range up.In(c) {
		if lv+1 > s.level[l.To] {
			s.level[l.To] = lv + 1
		}
	}
	for _, sc := range shortcuts {
		s.hEdge[edgeKey{sc.U, sc.V}] = s.hopEstimate(sc.U, c) + s.hopEstimate(c, sc.V)
		s.hEdge[edgeKey{sc.V, sc.U}] = s.hEdge[edgeKey{sc.U, sc.V}]
	}
}
