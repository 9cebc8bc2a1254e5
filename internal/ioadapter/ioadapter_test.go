package ioadapter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/azybler/chaf/ch"
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/bitset"
)

func TestReadDDSG_ExpandsDirectionCodes(t *testing.T) {
	input := `c a comment line
d 4 4
0 1 5 1
1 2 7 2
2 3 9 0
3 0 11 3
`
	edges, n, err := ReadDDSG(strings.NewReader(input))
	require.NoError(t, err)
	require.EqualValues(t, 4, n)

	want := []graph.InputEdge{
		{From: 0, To: 1, Weight: 5, Dir: graph.Forward},
		{From: 2, To: 1, Weight: 7, Dir: graph.Forward},
		{From: 2, To: 3, Weight: 9, Dir: graph.Forward},
		{From: 3, To: 2, Weight: 9, Dir: graph.Forward},
		{From: 3, To: 0, Weight: 11, Dir: graph.Forward},
		{From: 0, To: 3, Weight: 11, Dir: graph.Forward},
	}
	require.Equal(t, want, edges)
}

func TestReadDDSG_AcceptsShortestPathHeader(t *testing.T) {
	edges, n, err := ReadDDSG(strings.NewReader("p sp 2 1\n0 1 3 1\n"))
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
	require.Len(t, edges, 1)
}

func TestReadDDSG_RejectsMalformedInput(t *testing.T) {
	for _, input := range []string{
		"",                   // no header
		"x 2 1\n",            // unknown header tag
		"d 2 1\n0 1 3\n",     // short edge line
		"d 2 1\n0 1 3 7\n",   // direction code out of range
		"d 2 1\n0 one 3 1\n", // non-numeric field
	} {
		_, _, err := ReadDDSG(strings.NewReader(input))
		require.Error(t, err, "input %q", input)
	}
}

func TestWriteDDSG_RoundTrips(t *testing.T) {
	b := graph.NewBuilder(3)
	b.AddEdge(0, 1, 4, graph.Forward)
	b.AddEdge(1, 2, 6, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteDDSG(&buf, g))

	edges, n, err := ReadDDSG(&buf)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
	require.Len(t, edges, 2)

	b2 := graph.NewBuilder(n)
	for _, e := range edges {
		b2.AddEdge(e.From, e.To, e.Weight, e.Dir)
	}
	g2, err := b2.Build()
	require.NoError(t, err)
	require.Equal(t, g.NumEdges(), g2.NumEdges())
}

func TestReadPartition(t *testing.T) {
	cell, err := ReadPartition(strings.NewReader("0 1 1 0"), 4, 2)
	require.NoError(t, err)
	require.Equal(t, []uint8{0, 1, 1, 0}, cell)

	_, err = ReadPartition(strings.NewReader("0 1"), 4, 2)
	require.Error(t, err)

	_, err = ReadPartition(strings.NewReader("0 1 2 0"), 4, 2)
	require.Error(t, err)
}

func buildFlagged(t *testing.T, k int) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder(3)
	b.AddEdge(0, 1, 1, graph.Forward)
	b.AddEdge(1, 2, 1, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)
	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		p := g.Props(e)
		p.FlagsFwd = bitset.New(k)
		p.FlagsBwd = bitset.New(k)
		p.FlagsFwd.Set(int(e) % k)
		p.FlagsBwd.Set((int(e) + 1) % k)
	}
	return g
}

func TestArcFlags_RoundTrips(t *testing.T) {
	const k = 2
	g := buildFlagged(t, k)

	var buf bytes.Buffer
	require.NoError(t, WriteArcFlags(&buf, g, k))

	fresh := buildFlagged(t, k)
	for e := graph.EdgeID(0); e < graph.EdgeID(fresh.NumEdges()); e++ {
		p := fresh.Props(e)
		p.FlagsFwd = bitset.New(k)
		p.FlagsBwd = bitset.New(k)
	}
	require.NoError(t, ReadArcFlags(&buf, fresh, k))

	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		require.True(t, g.Props(e).FlagsFwd.Equal(fresh.Props(e).FlagsFwd), "edge %d fwd", e)
		require.True(t, g.Props(e).FlagsBwd.Equal(fresh.Props(e).FlagsBwd), "edge %d bwd", e)
	}
}

func TestReadArcFlags_RejectsEdgeMismatch(t *testing.T) {
	const k = 2
	g := buildFlagged(t, k)
	err := ReadArcFlags(strings.NewReader("0 2 10 01\n1 2 10 01\n"), g, k)
	require.Error(t, err)
}

func TestReadVerification(t *testing.T) {
	queries, err := ReadVerification(strings.NewReader("0 3 42\n1 2 7"))
	require.NoError(t, err)
	require.Equal(t, []VerificationQuery{
		{Source: 0, Target: 3, Distance: 42},
		{Source: 1, Target: 2, Distance: 7},
	}, queries)

	_, err = ReadVerification(strings.NewReader("0 3"))
	require.Error(t, err)
}

func TestWriteCH_RoundTripsQueries(t *testing.T) {
	b := graph.NewBuilder(4)
	b.AddEdge(0, 1, 1, graph.Forward)
	b.AddEdge(1, 3, 1, graph.Forward)
	b.AddEdge(0, 2, 3, graph.Forward)
	b.AddEdge(2, 3, 3, graph.Forward)
	g, err := b.Build()
	require.NoError(t, err)

	chg := ch.Contract(g, ch.NewDegreeStrategy(7), 5)

	var buf bytes.Buffer
	require.NoError(t, WriteCH(&buf, chg))
	loaded, err := ReadCH(&buf, g)
	require.NoError(t, err)

	pool := ch.NewQueryPool(g.NumVertices())
	for s := graph.VertexID(0); s < 4; s++ {
		for tt := graph.VertexID(0); tt < 4; tt++ {
			want, _ := ch.Query(chg, pool, s, tt, false)
			got, path := ch.Query(loaded, pool, s, tt, true)
			require.Equal(t, want, got, "s=%d t=%d", s, tt)
			if got != dijkstra.Infinity && s != tt {
				require.Equal(t, s, path[0])
				require.Equal(t, tt, path[len(path)-1])
			}
		}
	}
}

func TestCoords_RoundTrips(t *testing.T) {
	coords := []Coord{{Lat: 1.3521, Lon: 103.8198}, {Lat: 1.2806, Lon: 103.8500}}
	var buf bytes.Buffer
	require.NoError(t, WriteCoords(&buf, coords))
	got, err := ReadCoords(&buf, 2)
	require.NoError(t, err)
	require.InDelta(t, coords[0].Lat, got[0].Lat, 1e-6)
	require.InDelta(t, coords[1].Lon, got[1].Lon, 1e-6)
}

func TestNearestVertex_Snap(t *testing.T) {
	coords := []Coord{
		{Lat: 1.300, Lon: 103.800},
		{Lat: 1.310, Lon: 103.810},
		{Lat: 1.400, Lon: 103.900},
	}
	nv := NewNearestVertex(coords)

	v, err := nv.Snap(1.3005, 103.8004, 500)
	require.NoError(t, err)
	require.EqualValues(t, 0, v)

	_, err = nv.Snap(2.0, 104.5, 500)
	require.ErrorIs(t, err, ErrPointTooFar)
}
