package dijkstra

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azybler/chaf/graph"
)

func buildTwoVertexEdge(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(2)
	b.AddEdge(0, 1, 5, graph.Both)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

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

func TestRun_SingleVertexSelfQuery(t *testing.T) {
	b := graph.NewBuilder(1)
	g, err := b.Build()
	require.NoError(t, err)

	st := NewState(g.NumVertices())
	Run(g, 0, BaseVisitor{}, st)
	require.EqualValues(t, 0, st.Dist[0])
	require.EqualValues(t, 0, st.Pred[0])
}

func TestRun_TwoVertexEdge(t *testing.T) {
	g := buildTwoVertexEdge(t)

	st := NewState(g.NumVertices())
	Run(g, 0, BaseVisitor{}, st)
	require.EqualValues(t, 5, st.Dist[1])

	st.Reset()
	Run(g, 1, BaseVisitor{}, st)
	require.EqualValues(t, Infinity, st.Dist[0])
}

func TestRun_FourNodeCycle(t *testing.T) {
	g := buildCycle(t)
	st := NewState(g.NumVertices())
	Run(g, 0, BaseVisitor{}, st)
	require.EqualValues(t, 2, st.Dist[2])
	require.EqualValues(t, 1, st.Dist[1])
	require.EqualValues(t, 3, st.Dist[3])
}

func TestRun_PredecessorChainReconstructsShortestPath(t *testing.T) {
	g := buildCycle(t)
	st := NewState(g.NumVertices())
	Run(g, 0, BaseVisitor{}, st)

	v := graph.VertexID(2)
	var path []graph.VertexID
	for v != 0 {
		path = append([]graph.VertexID{v}, path...)
		v = st.Pred[v]
	}
	path = append([]graph.VertexID{0}, path...)
	require.Equal(t, []graph.VertexID{0, 1, 2}, path)
}

// buildAsymmetricTriangle builds a directed 3-vertex graph whose 0->1
// shortest path is the single direct edge (w=50), while the search
// discovers a longer two-hop candidate 0->2->1 (w=73) first. The
// bidirectional kernel must keep improving mu from relaxations of
// already-discovered vertices, or it terminates on the inferior
// candidate.
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

func TestRunBidirectional_DirectEdgeBeatsEarlierTwoHopCandidate(t *testing.T) {
	g := buildAsymmetricTriangle(t)
	stFwd := NewState(g.NumVertices())
	stBwd := NewState(g.NumVertices())
	rev := graph.NewReversed(g)
	tr := NewTracker()
	got := RunBidirectional(g, rev, 0, 1, BaseVisitor{}, BaseVisitor{}, stFwd, stBwd, tr)
	require.EqualValues(t, 50, got)
}

func TestRunBidirectional_MatchesOneSidedOnAsymmetricWeights(t *testing.T) {
	g := buildAsymmetricTriangle(t)

	stOne := NewState(g.NumVertices())
	stFwd := NewState(g.NumVertices())
	stBwd := NewState(g.NumVertices())
	rev := graph.NewReversed(g)
	tr := NewTracker()

	for s := graph.VertexID(0); s < graph.VertexID(g.NumVertices()); s++ {
		stOne.Reset()
		Run(g, s, BaseVisitor{}, stOne)
		for tt := graph.VertexID(0); tt < graph.VertexID(g.NumVertices()); tt++ {
			want := stOne.Dist[tt]
			stFwd.Reset()
			stBwd.Reset()
			tr.Reset()
			got := RunBidirectional(g, rev, s, tt, BaseVisitor{}, BaseVisitor{}, stFwd, stBwd, tr)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
		}
	}
}

func TestRunBidirectional_MatchesOneSidedDijkstra(t *testing.T) {
	g := buildCycle(t)

	stFwd := NewState(g.NumVertices())
	Run(g, 0, BaseVisitor{}, stFwd)
	want := stFwd.Dist[2]

	stFwd.Reset()
	stBwd := NewState(g.NumVertices())
	rev := graph.NewReversed(g)
	tr := NewTracker()
	got := RunBidirectional(g, rev, 0, 2, BaseVisitor{}, BaseVisitor{}, stFwd, stBwd, tr)
	require.Equal(t, want, got)
}

func TestRunBidirectional_SourceEqualsTarget(t *testing.T) {
	g := buildCycle(t)
	stFwd := NewState(g.NumVertices())
	stBwd := NewState(g.NumVertices())
	rev := graph.NewReversed(g)
	tr := NewTracker()
	got := RunBidirectional(g, rev, 1, 1, BaseVisitor{}, BaseVisitor{}, stFwd, stBwd, tr)
	require.EqualValues(t, 0, got)
}

func TestRunBidirectional_Unreachable(t *testing.T) {
	b := graph.NewBuilder(2)
	b.AddEdge(0, 1, 1, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)

	stFwd := NewState(g.NumVertices())
	stBwd := NewState(g.NumVertices())
	rev := graph.NewReversed(g)
	tr := NewTracker()
	got := RunBidirectional(g, rev, 1, 0, BaseVisitor{}, BaseVisitor{}, stFwd, stBwd, tr)
	require.EqualValues(t, Infinity, got)
}
