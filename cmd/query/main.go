// Command query answers point-to-point shortest-path queries against
// a preprocessed graph folder.
//
// Endpoints are vertex ids, or with --coords a pair of lat,lon points
// resolved through the folder's coords.txt (written by preprocess
// --osm). The method defaults to whichever preprocessing artifact the
// folder carries: ch.txt, then flags.txt, then plain Dijkstra.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/azybler/chaf/arcflags"
	"github.com/azybler/chaf/ch"
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/ioadapter"
)

func main() {
	method := flag.String("method", "", "Query method: ch, af, or dijkstra (default: best available)")
	cells := flag.Int("cells", 32, "Arc-flags cell count (must match preprocessing)")
	coords := flag.Bool("coords", false, "Interpret endpoints as lat,lon instead of vertex ids")
	maxSnap := flag.Float64("maxsnap", 500, "Max snap distance in meters for --coords")
	showPath := flag.Bool("path", false, "Print the vertex path (ch method only)")
	flag.Parse()

	if flag.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Usage: query [flags] <graph-folder> <src> <tgt>")
		os.Exit(1)
	}
	folder := flag.Arg(0)

	g := loadGraph(folder)
	s, t := resolveEndpoints(folder, g, flag.Arg(1), flag.Arg(2), *coords, *maxSnap)

	m := *method
	if m == "" {
		switch {
		case exists(filepath.Join(folder, "ch.txt")):
			m = "ch"
		case exists(filepath.Join(folder, "flags.txt")):
			m = "af"
		default:
			m = "dijkstra"
		}
	}

	var dist uint32
	var path []graph.VertexID
	switch m {
	case "ch":
		chg := loadCH(folder, g)
		pool := ch.NewQueryPool(g.NumVertices())
		dist, path = ch.Query(chg, pool, s, t, *showPath)
	case "af":
		cell := loadFlags(folder, g, *cells)
		st := dijkstra.NewState(g.NumVertices())
		dist = arcflags.Query(g, cell, s, t, st)
	case "dijkstra":
		st := dijkstra.NewState(g.NumVertices())
		dijkstra.Run(g, s, dijkstra.BaseVisitor{}, st)
		dist = st.Dist[t]
	default:
		log.Fatalf("Unknown method %q (want ch, af, or dijkstra)", m)
	}

	if dist == dijkstra.Infinity {
		fmt.Printf("%d -> %d: unreachable\n", s, t)
		return
	}
	fmt.Printf("%d -> %d: %d\n", s, t, dist)
	if *showPath && path != nil {
		parts := make([]string, len(path))
		for i, v := range path {
			parts[i] = strconv.FormatUint(uint64(v), 10)
		}
		fmt.Println(strings.Join(parts, " "))
	}
}

func resolveEndpoints(folder string, g *graph.Graph, srcArg, tgtArg string, byCoords bool, maxSnap float64) (graph.VertexID, graph.VertexID) {
	if !byCoords {
		return parseVertex(g, srcArg), parseVertex(g, tgtArg)
	}

	f, err := os.Open(filepath.Join(folder, "coords.txt"))
	if err != nil {
		log.Fatalf("--coords needs coords.txt: %v", err)
	}
	defer f.Close()
	coords, err := ioadapter.ReadCoords(f, g.NumVertices())
	if err != nil {
		log.Fatalf("Read coords: %v", err)
	}

	nv := ioadapter.NewNearestVertex(coords)
	return snap(nv, srcArg, maxSnap), snap(nv, tgtArg, maxSnap)
}

func snap(nv *ioadapter.NearestVertex, arg string, maxSnap float64) graph.VertexID {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		log.Fatalf("Bad coordinate %q (want lat,lon)", arg)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		log.Fatalf("Bad latitude in %q: %v", arg, err)
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		log.Fatalf("Bad longitude in %q: %v", arg, err)
	}
	v, err := nv.Snap(lat, lon, maxSnap)
	if err != nil {
		log.Fatalf("Snap %q: %v", arg, err)
	}
	return v
}

func parseVertex(g *graph.Graph, arg string) graph.VertexID {
	v, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || uint32(v) >= g.NumVertices() {
		log.Fatalf("Bad vertex id %q", arg)
	}
	return graph.VertexID(v)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func loadGraph(folder string) *graph.Graph {
	f, err := os.Open(filepath.Join(folder, "graph.ddsg"))
	if err != nil {
		log.Fatalf("Open graph: %v", err)
	}
	defer f.Close()

	edges, n, err := ioadapter.ReadDDSG(f)
	if err != nil {
		log.Fatalf("Read graph: %v", err)
	}
	b := graph.NewBuilder(n)
	for _, e := range edges {
		b.AddEdge(e.From, e.To, e.Weight, e.Dir)
	}
	g, err := b.Build()
	if err != nil {
		log.Fatalf("Build graph: %v", err)
	}
	return g
}

func loadCH(folder string, g *graph.Graph) *ch.Graph {
	f, err := os.Open(filepath.Join(folder, "ch.txt"))
	if err != nil {
		log.Fatalf("Open ch data: %v", err)
	}
	defer f.Close()
	chg, err := ioadapter.ReadCH(f, g)
	if err != nil {
		log.Fatalf("Read ch data: %v", err)
	}
	return chg
}

// loadFlags restores the folder's arc-flags into g and returns the
// partition.
func loadFlags(folder string, g *graph.Graph, k int) []uint8 {
	pf, err := os.Open(filepath.Join(folder, "partition.txt"))
	if err != nil {
		log.Fatalf("Open partition: %v", err)
	}
	defer pf.Close()
	cell, err := ioadapter.ReadPartition(pf, g.NumVertices(), k)
	if err != nil {
		log.Fatalf("Read partition: %v", err)
	}

	ff, err := os.Open(filepath.Join(folder, "flags.txt"))
	if err != nil {
		log.Fatalf("Open flags: %v", err)
	}
	defer ff.Close()
	if err := ioadapter.ReadArcFlags(ff, g, k); err != nil {
		log.Fatalf("Read flags: %v", err)
	}
	return cell
}
