package dijkstra

import "github.com/azybler/chaf/graph"

// Run drives the forward Dijkstra kernel from source over g, writing
// results into st (which must be sized for g.NumVertices() and is
// Reset by the caller between searches; see State.Reset).
// InitializeVertex/DiscoverVertex fire lazily, the first time a vertex
// is actually touched by this search, rather than eagerly for all |V|
// vertices up front; touched bookkeeping is what lets State be reused
// cheaply across the many bounded searches CH witness search and
// arc-flags preprocessing run.
func Run(g graph.Adjacency, source graph.VertexID, visitor Visitor, st *State) {
	st.touch(source)
	st.Dist[source] = 0
	st.color[source] = gray
	visitor.InitializeVertex(source)
	visitor.DiscoverVertex(source)
	st.Q.Insert(0, uint32(source))

	for !st.Q.IsEmpty() {
		top := st.Q.PeekMin()
		st.Q.DeleteMin()
		v := graph.VertexID(top.DataID)
		d := top.Key
		if d != st.Dist[v] {
			continue // stale entry left by an earlier DecreaseKey
		}
		visitor.ExamineVertex(v)

		for _, l := range g.Out(v) {
			visitor.ExamineEdge(v, l)
			if !visitor.ShouldRelax(v, l) {
				continue
			}
			nd := d + l.Weight
			if nd < st.Dist[l.To] {
				oldDist := st.Dist[l.To]
				st.touch(l.To)
				st.Dist[l.To] = nd
				st.Pred[l.To] = v
				if st.color[l.To] == white {
					visitor.InitializeVertex(l.To)
					visitor.DiscoverVertex(l.To)
					st.color[l.To] = gray
					st.Q.Insert(nd, uint32(l.To))
				} else {
					st.Q.DecreaseKey(oldDist, uint32(l.To), nd)
				}
				visitor.EdgeRelaxed(v, l)
			} else {
				visitor.EdgeNotRelaxed(v, l)
			}
		}

		st.color[v] = black
		visitor.FinishVertex(v)

		if !visitor.ShouldContinue() {
			return
		}
	}
}
