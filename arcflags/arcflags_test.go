package arcflags

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
)

func buildCycle(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(4)
	b.AddEdge(0, 1, 1, graph.Both)
	b.AddEdge(1, 2, 1, graph.Both)
	b.AddEdge(2, 3, 1, graph.Both)
	b.AddEdge(3, 0, 1, graph.Both)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func plainDijkstra(g *graph.Graph, s, t graph.VertexID) uint32 {
	st := dijkstra.NewState(g.NumVertices())
	dijkstra.Run(g, s, dijkstra.BaseVisitor{}, st)
	return st.Dist[t]
}

// TestQuery_FourNodeCycleTwoCells runs a 4-node
// cycle with unit weights, partitioned into cells {0,1} and {2,3};
// dijkstra(0)[2] == 2, and arc-flags query agrees after preprocessing.
func TestQuery_FourNodeCycleTwoCells(t *testing.T) {
	g := buildCycle(t)
	cell := []uint8{0, 0, 1, 1}
	Preprocess(g, cell, 2)

	require.EqualValues(t, 2, plainDijkstra(g, 0, 2))

	st := dijkstra.NewState(g.NumVertices())
	got := Query(g, cell, 0, 2, st)
	require.EqualValues(t, 2, got)
}

func TestQuery_MatchesPlainDijkstraAllPairs(t *testing.T) {
	g := buildCycle(t)
	cell := []uint8{0, 0, 1, 1}
	Preprocess(g, cell, 2)

	st := dijkstra.NewState(g.NumVertices())
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			st.Reset()
			want := plainDijkstra(g, s, tt)
			got := Query(g, cell, s, tt, st)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

func TestQueryBidirectional_MatchesPlainDijkstraAllPairs(t *testing.T) {
	g := buildCycle(t)
	cell := []uint8{0, 0, 1, 1}
	PreprocessBidirectional(g, cell, 2)

	stFwd := dijkstra.NewState(g.NumVertices())
	stBwd := dijkstra.NewState(g.NumVertices())
	tr := dijkstra.NewTracker()
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			stFwd.Reset()
			stBwd.Reset()
			tr.Reset()
			want := plainDijkstra(g, s, tt)
			got := QueryBidirectional(g, cell, s, tt, stFwd, stBwd, tr)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

// TestQueryBidirectional_AsymmetricWeights uses a directed 3-vertex
// graph where the 0->1 shortest path is the single direct edge (w=50)
// but a two-hop candidate 0->2->1 (w=73) forms first; the
// bidirectional query must not terminate on the inferior candidate.
func TestQueryBidirectional_AsymmetricWeights(t *testing.T) {
	b := graph.NewBuilder(3)
	b.AddEdge(0, 1, 50, graph.Forward)
	b.AddEdge(0, 2, 29, graph.Forward)
	b.AddEdge(1, 2, 20, graph.Forward)
	b.AddEdge(1, 0, 20, graph.Forward)
	b.AddEdge(2, 0, 37, graph.Forward)
	b.AddEdge(2, 1, 44, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)

	cell := []uint8{0, 1, 1}
	PreprocessBidirectional(g, cell, 2)

	stFwd := dijkstra.NewState(g.NumVertices())
	stBwd := dijkstra.NewState(g.NumVertices())
	tr := dijkstra.NewTracker()
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			stFwd.Reset()
			stBwd.Reset()
			tr.Reset()
			want := plainDijkstra(g, s, tt)
			got := QueryBidirectional(g, cell, s, tt, stFwd, stBwd, tr)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

func buildGrid(t *testing.T) (*graph.Graph, []uint8) {
	t.Helper()
	// 3x3 grid, 4-directional, unit weights; cell = column (3 cells).
	b := graph.NewBuilder(9)
	idx := func(r, c int) graph.VertexID { return graph.VertexID(r*3 + c) }
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if c+1 < 3 {
				b.AddEdge(idx(r, c), idx(r, c+1), 1, graph.Both)
			}
			if r+1 < 3 {
				b.AddEdge(idx(r, c), idx(r+1, c), 1, graph.Both)
			}
		}
	}
	g, err := b.Build()
	require.NoError(t, err)
	cell := make([]uint8, 9)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			cell[idx(r, c)] = uint8(c)
		}
	}
	return g, cell
}

func TestQuery_GridThreeCellsAllPairs(t *testing.T) {
	g, cell := buildGrid(t)
	Preprocess(g, cell, 3)

	st := dijkstra.NewState(g.NumVertices())
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			st.Reset()
			want := plainDijkstra(g, s, tt)
			got := Query(g, cell, s, tt, st)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

// TestReduceGreedy_AllOnesFlagAlwaysRetainedAndCorrect checks that
// after reduction, the all-ones flag must always be present in
// the retained set, every edge's replacement flag must be a
// bit-superset of its pre-reduction flag, and correctness must survive.
func TestReduceGreedy_AllOnesFlagAlwaysRetainedAndCorrect(t *testing.T) {
	g, cell := buildGrid(t)
	Preprocess(g, cell, 3)

	before := make([]graph.EdgeProps, g.NumEdges())
	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		before[e] = *g.Props(e)
	}

	values, counts := distinctFlags(g, fieldFwd)
	scores := make(map[string]float64, len(counts))
	for key, c := range counts {
		scores[key] = float64(c)
	}
	allOnesKey := ensureAllOnes(values, 3)
	require.True(t, selectRetained(values, scores, 0.9, 3)[allOnesKey], "all-ones flag not retained")

	ReduceGreedy(g, 0.9, 1)

	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		require.True(t, g.Props(e).FlagsFwd.Superset(before[e].FlagsFwd), "edge %d lost a flag bit under reduction", e)
	}

	st := dijkstra.NewState(g.NumVertices())
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			st.Reset()
			want := plainDijkstra(g, s, tt)
			got := Query(g, cell, s, tt, st)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

func TestReduceRanked_PreservesCorrectnessAndSupersetInvariant(t *testing.T) {
	g, cell := buildGrid(t)
	Preprocess(g, cell, 3)

	before := make([]graph.EdgeProps, g.NumEdges())
	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		before[e] = *g.Props(e)
	}

	ReduceRanked(g, 0.5, 1, 0, 0.5)

	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		require.True(t, g.Props(e).FlagsFwd.Superset(before[e].FlagsFwd), "edge %d lost a flag bit under ranked reduction", e)
	}

	st := dijkstra.NewState(g.NumVertices())
	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			st.Reset()
			want := plainDijkstra(g, s, tt)
			got := Query(g, cell, s, tt, st)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

func TestPreprocess_EmptyGraph(t *testing.T) {
	b := graph.NewBuilder(0)
	g, err := b.Build()
	require.NoError(t, err)
	Preprocess(g, nil, 2)
	require.EqualValues(t, 0, g.NumEdges())
}
