// Command bench replays a verification file against a preprocessed
// graph folder and reports timing plus any distance mismatches.
//
// The folder needs graph.ddsg, verify.txt (whitespace triples
// `src tgt dist`), and the artifacts of whichever methods are
// benchmarked. With --parallel > 1 queries run on that many
// goroutines, each owning its own search state; the preprocessed
// graph itself is shared read-only.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/azybler/chaf/arcflags"
	"github.com/azybler/chaf/ch"
	"github.com/azybler/chaf/dijkstra"
	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/ioadapter"
	"github.com/azybler/chaf/stats"
)

func main() {
	methods := flag.String("methods", "dijkstra,ch,af", "Comma-separated methods to benchmark")
	cells := flag.Int("cells", 32, "Arc-flags cell count (must match preprocessing)")
	parallel := flag.Int("parallel", 1, "Number of query goroutines")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: bench [flags] <graph-folder>")
		os.Exit(1)
	}
	folder := flag.Arg(0)

	g := loadGraph(folder)
	queries := loadVerification(folder)
	log.Printf("%d vertices, %d edges, %d verification queries", g.NumVertices(), g.NumEdges(), len(queries))

	for _, m := range strings.Split(*methods, ",") {
		switch strings.TrimSpace(m) {
		case "dijkstra":
			run("dijkstra", queries, *parallel, func() func(s, t graph.VertexID) uint32 {
				st := dijkstra.NewState(g.NumVertices())
				return func(s, t graph.VertexID) uint32 {
					st.Reset()
					dijkstra.Run(g, s, dijkstra.BaseVisitor{}, st)
					return st.Dist[t]
				}
			})
		case "ch":
			chg := loadCH(folder, g)
			run("ch", queries, *parallel, func() func(s, t graph.VertexID) uint32 {
				pool := ch.NewQueryPool(g.NumVertices())
				return func(s, t graph.VertexID) uint32 {
					d, _ := ch.Query(chg, pool, s, t, false)
					return d
				}
			})
		case "af":
			cell := loadFlags(folder, g, *cells)
			run("af", queries, *parallel, func() func(s, t graph.VertexID) uint32 {
				st := dijkstra.NewState(g.NumVertices())
				return func(s, t graph.VertexID) uint32 {
					st.Reset()
					return arcflags.Query(g, cell, s, t, st)
				}
			})
		default:
			log.Fatalf("Unknown method %q", m)
		}
	}
}

// run replays the queries over workers goroutines. newWorker is called
// once per goroutine so every worker owns disjoint search state.
func run(name string, queries []ioadapter.VerificationQuery, workers int, newWorker func() func(s, t graph.VertexID) uint32) {
	if workers < 1 {
		workers = 1
	}

	var unreachable, mismatches atomic.Int64
	var next atomic.Int64
	start := time.Now()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			query := newWorker()
			for {
				i := next.Add(1) - 1
				if int(i) >= len(queries) {
					return
				}
				q := queries[i]
				got := query(q.Source, q.Target)
				if got == dijkstra.Infinity {
					unreachable.Add(1)
				}
				if got != q.Distance {
					mismatches.Add(1)
					log.Printf("%s: %d -> %d: got %d, want %d", name, q.Source, q.Target, got, q.Distance)
				}
			}
		}()
	}
	wg.Wait()

	log.Printf("%s: %s", name, stats.Query{
		Queries:     len(queries),
		Unreachable: int(unreachable.Load()),
		Mismatches:  int(mismatches.Load()),
		Duration:    time.Since(start),
	})
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

func loadVerification(folder string) []ioadapter.VerificationQuery {
	f, err := os.Open(filepath.Join(folder, "verify.txt"))
	if err != nil {
		log.Fatalf("Open verification file: %v", err)
	}
	defer f.Close()
	queries, err := ioadapter.ReadVerification(f)
	if err != nil {
		log.Fatalf("Read verification file: %v", err)
	}
	return queries
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
