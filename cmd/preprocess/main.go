// Command preprocess builds the speedup structures for a graph folder.
//
// The folder is expected to contain graph.ddsg (and, for arc-flags,
// partition.txt); alternatively --osm converts a .osm.pbf extract into
// graph.ddsg + coords.txt first. Output lands back in the folder:
// ch.txt for contraction hierarchies, flags.txt for arc-flags.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/azybler/chaf/arcflags"
	"github.com/azybler/chaf/ch"
	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/ioadapter"
	"github.com/azybler/chaf/stats"
)

func main() {
	mode := flag.String("mode", "ch", "Preprocessing mode: ch, af, or both")
	osmPath := flag.String("osm", "", "Convert this .osm.pbf extract into the folder's graph.ddsg + coords.txt first")
	order := flag.String("order", "hl", "CH contraction order: hl, degree, or random")
	seed := flag.Int64("seed", 1, "Seed for the degree/random orders")
	dijLimit := flag.Int("dijlimit", 16, "Witness search hop limit per side")
	cells := flag.Int("cells", 32, "Arc-flags partition cell count")
	filter := flag.Float64("filter", 0, "Arc-flags reduction: drop this share of distinct flags (0 = no reduction)")
	ranked := flag.Bool("ranked", false, "Use ranked instead of greedy flag reduction")
	maxDistance := flag.Int("maxdistance", 1, "Flag reduction: BFS radius of the near-flag search")
	breakDistance := flag.Int("breakdistance", 0, "Ranked reduction: fade propagation depth")
	alpha := flag.Float64("alpha", 0.5, "Ranked reduction: fade factor")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: preprocess [flags] <graph-folder>")
		os.Exit(1)
	}
	folder := flag.Arg(0)

	if *osmPath != "" {
		if err := convertOSM(*osmPath, folder); err != nil {
			log.Fatalf("OSM conversion failed: %v", err)
		}
	}

	g := loadGraph(folder)

	doCH := *mode == "ch" || *mode == "both"
	doAF := *mode == "af" || *mode == "both"
	if !doCH && !doAF {
		log.Fatalf("Unknown mode %q (want ch, af, or both)", *mode)
	}

	if doCH {
		start := time.Now()
		strategy := pickStrategy(*order, g, *seed)
		chg := ch.Contract(g, strategy, *dijLimit)

		shortcuts := 0
		for v := graph.VertexID(0); v < graph.VertexID(chg.Up.NumVertices()); v++ {
			for _, l := range chg.Up.Out(v) {
				if l.Unpack != graph.NoVertex {
					shortcuts++
				}
			}
		}

		writeFile(filepath.Join(folder, "ch.txt"), func(f *os.File) error {
			return ioadapter.WriteCH(f, chg)
		})
		log.Printf("CH: %s", stats.Preprocess{
			NumVertices: g.NumVertices(),
			NumEdges:    g.NumEdges(),
			Shortcuts:   shortcuts,
			Duration:    time.Since(start),
		})
	}

	if doAF {
		start := time.Now()
		cell := loadPartition(folder, g.NumVertices(), *cells)
		arcflags.PreprocessBidirectional(g, cell, *cells)

		kept := 0
		if *filter > 0 {
			if *ranked {
				kept = arcflags.ReduceRanked(g, *filter, *maxDistance, *breakDistance, *alpha)
				kept += arcflags.ReduceRankedBackward(g, *filter, *maxDistance, *breakDistance, *alpha)
			} else {
				kept = arcflags.ReduceGreedy(g, *filter, *maxDistance)
				kept += arcflags.ReduceGreedyBackward(g, *filter, *maxDistance)
			}
		}

		writeFile(filepath.Join(folder, "flags.txt"), func(f *os.File) error {
			return ioadapter.WriteArcFlags(f, g, *cells)
		})
		log.Printf("Arc-flags: %s", stats.Preprocess{
			NumVertices: g.NumVertices(),
			NumEdges:    g.NumEdges(),
			Cells:       *cells,
			FlagsKept:   kept,
			Duration:    time.Since(start),
		})
	}
}

func pickStrategy(name string, g *graph.Graph, seed int64) ch.Strategy {
	switch name {
	case "hl":
		return ch.NewLazyPriorityStrategy(ch.Prepare(g))
	case "degree":
		return ch.NewDegreeStrategy(seed)
	case "random":
		return ch.NewRandomStrategy(g.NumVertices(), seed)
	}
	log.Fatalf("Unknown order %q (want hl, degree, or random)", name)
	return nil
}

func loadGraph(folder string) *graph.Graph {
	path := filepath.Join(folder, "graph.ddsg")
	f, err := os.Open(path)
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
	log.Printf("Loaded %s: %d vertices, %d edges", path, g.NumVertices(), g.NumEdges())
	return g
}

func loadPartition(folder string, n uint32, k int) []uint8 {
	f, err := os.Open(filepath.Join(folder, "partition.txt"))
	if err != nil {
		log.Fatalf("Open partition: %v", err)
	}
	defer f.Close()

	cell, err := ioadapter.ReadPartition(f, n, k)
	if err != nil {
		log.Fatalf("Read partition: %v", err)
	}
	return cell
}

func convertOSM(osmPath, folder string) error {
	f, err := os.Open(osmPath)
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := ioadapter.ReadOSM(context.Background(), f)
	if err != nil {
		return err
	}
	log.Printf("OSM extract: %d vertices, %d directed edges", res.NumVertices, len(res.Edges))

	b := graph.NewBuilder(res.NumVertices)
	for _, e := range res.Edges {
		b.AddEdge(e.From, e.To, e.Weight, e.Dir)
	}
	g, err := b.Build()
	if err != nil {
		return err
	}

	writeFile(filepath.Join(folder, "graph.ddsg"), func(f *os.File) error {
		return ioadapter.WriteDDSG(f, g)
	})
	writeFile(filepath.Join(folder, "coords.txt"), func(f *os.File) error {
		return ioadapter.WriteCoords(f, res.Coords)
	})
	return nil
}

func writeFile(path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Create %s: %v", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		log.Fatalf("Write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Close %s: %v", path, err)
	}
	log.Printf("Wrote %s", path)
}
