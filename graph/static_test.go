package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildCycle(t *testing.T) *Graph {
	t.Helper()
	b := NewBuilder(4)
	b.AddEdge(0, 1, 1, Both)
	b.AddEdge(1, 2, 1, Both)
	b.AddEdge(2, 3, 1, Both)
	b.AddEdge(3, 0, 1, Both)
	g, err := b.Build()
	require.NoError(t, err)
	return g
}

func TestBuilder_RejectsOutOfRangeVertex(t *testing.T) {
	b := NewBuilder(2)
	b.AddEdge(0, 5, 1, Both)
	_, err := b.Build()
	require.Error(t, err)
}

func TestGraph_CountsMatchInput(t *testing.T) {
	g := buildCycle(t)
	require.EqualValues(t, 4, g.NumVertices())
	require.EqualValues(t, 4, g.NumEdges())
}

func TestGraph_DegreesMatchSliceLengths(t *testing.T) {
	g := buildCycle(t)
	for v := VertexID(0); v < 4; v++ {
		require.Equal(t, g.OutDegree(v), g.OutEdges(v).Len())
		require.Equal(t, g.InDegree(v), g.InEdges(v).Len())
		require.Equal(t, 1, g.OutDegree(v))
		require.Equal(t, 1, g.InDegree(v))
	}
}

func TestGraph_EveryOutEdgeAppearsInTargetInEdges(t *testing.T) {
	g := buildCycle(t)
	for v := VertexID(0); v < VertexID(g.NumVertices()); v++ {
		r := g.OutEdges(v)
		for i := r.Begin; i < r.End; i++ {
			id := g.EdgeAt(i)
			target := g.Target(id)
			found := false
			ir := g.InEdges(target)
			for j := ir.Begin; j < ir.End; j++ {
				if g.EdgeAt(j) == id {
					found = true
					break
				}
			}
			require.True(t, found, "edge %d from %d not found in in-edges of %d", id, v, target)
		}
	}
}

func TestGraph_SlicesAreSorted(t *testing.T) {
	b := NewBuilder(3)
	b.AddEdge(0, 2, 1, Both)
	b.AddEdge(0, 1, 1, Both)
	b.AddEdge(2, 0, 1, Both)
	b.AddEdge(1, 0, 1, Both)
	g, err := b.Build()
	require.NoError(t, err)

	r := g.OutEdges(0)
	prev := VertexID(0)
	for i := r.Begin; i < r.End; i++ {
		if i > r.Begin {
			require.LessOrEqual(t, prev, g.OtherEndAt(i))
		}
		prev = g.OtherEndAt(i)
	}
}

func TestGraph_EdgeLookup(t *testing.T) {
	g := buildCycle(t)
	id, ok := g.Edge(0, 1)
	require.True(t, ok)
	require.EqualValues(t, 0, g.Source(id))
	require.EqualValues(t, 1, g.Target(id))

	_, ok = g.Edge(0, 2)
	require.False(t, ok)
}

func TestReversedAndIncidence(t *testing.T) {
	g := buildCycle(t)
	rev := NewReversed(g)
	require.Equal(t, g.NumVertices(), rev.NumVertices())

	outLinks := rev.Out(1)
	require.Len(t, outLinks, 1)
	require.EqualValues(t, 0, outLinks[0].To)

	inc := NewIncidence(g)
	combined := inc.Out(1)
	require.Len(t, combined, 2)
}
