package ch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
)

func buildDiamond(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(4)
	b.AddEdge(0, 1, 1, graph.Forward)
	b.AddEdge(1, 3, 1, graph.Forward)
	b.AddEdge(0, 2, 3, graph.Forward)
	b.AddEdge(2, 3, 3, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func plainDijkstra(g *graph.Graph, s, t graph.VertexID) uint32 {
	st := dijkstra.NewState(g.NumVertices())
	dijkstra.Run(g, s, dijkstra.BaseVisitor{}, st)
	return st.Dist[t]
}

// TestContract_DiamondInsertsExpectedShortcut checks that
// contracting vertex 1 first must insert shortcut (0,3) of length 2
// with unpack=1.
func TestContract_DiamondInsertsExpectedShortcut(t *testing.T) {
	g := buildDiamond(t)
	strategy := &fixedOrderStrategy{order: []graph.VertexID{1, 0, 2, 3}}
	chg := Contract(g, strategy, 5)

	require.EqualValues(t, 0, chg.Order.Get(1))
	require.True(t, chg.Order.Contracted(0))
	require.True(t, chg.Order.Contracted(2))
	require.True(t, chg.Order.Contracted(3))
	require.Equal(t, graph.VertexID(1), chg.Shortcuts[shortcutKey{0, 3}])

	pool := NewQueryPool(4)
	dist, _ := Query(chg, pool, 0, 3, false)
	require.EqualValues(t, 2, dist)
}

func TestContract_OrderIsTotal(t *testing.T) {
	g := buildDiamond(t)
	chg := Contract(g, NewDegreeStrategy(1), 5)
	seen := make(map[uint32]bool)
	for v := graph.VertexID(0); v < graph.VertexID(g.NumVertices()); v++ {
		o := chg.Order.Get(v)
		require.NotEqual(t, Infinity, o)
		require.False(t, seen[o])
		seen[o] = true
	}
}

func TestQuery_MatchesPlainDijkstra(t *testing.T) {
	g := buildDiamond(t)
	chg := Contract(g, NewDegreeStrategy(42), 5)
	pool := NewQueryPool(g.NumVertices())
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			want := plainDijkstra(g, s, tt)
			got, _ := Query(chg, pool, s, tt, false)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

// buildAsymmetricTriangle builds a directed 3-vertex graph where the
// 0->1 shortest path is the single direct edge (w=50) but a two-hop
// candidate 0->2->1 (w=73) is discovered first, so a query that stops
// on the inferior candidate before registering the direct edge's
// meeting vertex returns an overestimate.
func buildAsymmetricTriangle(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(3)
	b.AddEdge(0, 1, 50, graph.Forward)
	b.AddEdge(0, 2, 29, graph.Forward)
	b.AddEdge(1, 2, 20, graph.Forward)
	b.AddEdge(1, 0, 20, graph.Forward)
	b.AddEdge(2, 0, 37, graph.Forward)
	b.AddEdge(2, 1, 44, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestQuery_MatchesPlainDijkstraOnAsymmetricWeights(t *testing.T) {
	g := buildAsymmetricTriangle(t)
	for seed := int64(1); seed <= 3; seed++ {
		chg := Contract(g, NewDegreeStrategy(seed), 5)
		pool := NewQueryPool(g.NumVertices())
		for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
			for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
				want := plainDijkstra(g, s, tt)
				got, _ := Query(chg, pool, s, tt, false)
				require.Equal(t, want, got, "seed=%d s=%d t=%d", seed, s, tt)
			}
		}
	}
}

func TestQuery_UnpacksToOriginalEdgePath(t *testing.T) {
	g := buildDiamond(t)
	strategy := &fixedOrderStrategy{order: []graph.VertexID{1, 0, 2, 3}}
	chg := Contract(g, strategy, 5)
	pool := NewQueryPool(4)
	dist, path := Query(chg, pool, 0, 3, true)
	require.EqualValues(t, 2, dist)
	require.Equal(t, []graph.VertexID{0, 1, 3}, path)
}

func TestQuery_EmptyGraph(t *testing.T) {
	b := graph.NewBuilder(0)
	g, err := b.Build()
	require.NoError(t, err)
	chg := Contract(g, NewDegreeStrategy(1), 5)
	require.EqualValues(t, 0, g.NumVertices())
	_ = chg
}

func TestQuery_SingleVertexSelfQuery(t *testing.T) {
	b := graph.NewBuilder(1)
	g, err := b.Build()
	require.NoError(t, err)
	chg := Contract(g, NewDegreeStrategy(1), 5)
	pool := NewQueryPool(1)
	dist, path := Query(chg, pool, 0, 0, true)
	require.EqualValues(t, 0, dist)
	require.Equal(t, []graph.VertexID{0}, path)
}

// fixedOrderStrategy contracts vertices in a caller-specified sequence,
// used to pin down a deterministic contraction sequence.
type fixedOrderStrategy struct {
	order []graph.VertexID
	pos   int
}

func (s *fixedOrderStrategy) Next(up *graph.DynamicGraph, order Order) (graph.VertexID, bool) {
	if s.pos >= len(s.order) {
		return 0, false
	}
	v := s.order[s.pos]
	s.pos++
	return v, true
}
