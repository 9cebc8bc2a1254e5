package ioadapter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/azybler/chaf/graph"
)

// ReadDDSG parses the plain-text graph format: a header line
// `d <V> <E>` (the alternative `p sp <V> <E>` header is also
// accepted), then one edge per line as `u v w d`. Lines starting with
// `c` are comments. The direction code expands as follows: 0 and 3
// are bidirectional and emit both (u,v) and (v,u); 1 emits (u,v)
// only; 2 emits (v,u) only. Every emitted edge is traversable as
// stored, so the returned list feeds graph.Builder directly and the
// built graph is correct for both the plain kernels and CH
// preparation.
func ReadDDSG(r io.Reader) (edges []graph.InputEdge, numVertices uint32, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	headerSeen := false

	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "c") {
			continue
		}
		fields := strings.Fields(line)

		if !headerSeen {
			switch {
			case fields[0] == "d" && len(fields) == 3:
				fields = fields[1:]
			case fields[0] == "p" && len(fields) == 4 && fields[1] == "sp":
				fields = fields[2:]
			default:
				return nil, 0, fmt.Errorf("ioadapter: line %d: malformed header %q", lineNo, line)
			}
			v, err := strconv.ParseUint(fields[0], 10, 32)
			if err != nil {
				return nil, 0, fmt.Errorf("ioadapter: line %d: vertex count: %w", lineNo, err)
			}
			// The header's edge count is advisory; body lines are
			// authoritative. It still sizes the allocation.
			e, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return nil, 0, fmt.Errorf("ioadapter: line %d: edge count: %w", lineNo, err)
			}
			numVertices = uint32(v)
			edges = make([]graph.InputEdge, 0, 2*e)
			headerSeen = true
			continue
		}

		if len(fields) != 4 {
			return nil, 0, fmt.Errorf("ioadapter: line %d: expected `u v w d`, got %q", lineNo, line)
		}
		u, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("ioadapter: line %d: source: %w", lineNo, err)
		}
		v, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("ioadapter: line %d: target: %w", lineNo, err)
		}
		w, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return nil, 0, fmt.Errorf("ioadapter: line %d: weight: %w", lineNo, err)
		}
		d, err := strconv.ParseUint(fields[3], 10, 8)
		if err != nil || d > 3 {
			return nil, 0, fmt.Errorf("ioadapter: line %d: direction code %q", lineNo, fields[3])
		}

		from, to := graph.VertexID(u), graph.VertexID(v)
		weight := uint32(w)
		switch d {
		case 0, 3:
			edges = append(edges,
				graph.InputEdge{From: from, To: to, Weight: weight, Dir: graph.Forward},
				graph.InputEdge{From: to, To: from, Weight: weight, Dir: graph.Forward})
		case 1:
			edges = append(edges, graph.InputEdge{From: from, To: to, Weight: weight, Dir: graph.Forward})
		case 2:
			edges = append(edges, graph.InputEdge{From: to, To: from, Weight: weight, Dir: graph.Forward})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, fmt.Errorf("ioadapter: read: %w", err)
	}
	if !headerSeen {
		return nil, 0, fmt.Errorf("ioadapter: missing header")
	}
	return edges, numVertices, nil
}

// WriteDDSG writes the graph's edge list back out in the same format
// ReadDDSG accepts, one directed edge per line with direction code 1.
// Together with a parallel property dump (WriteArcFlags, or the CH
// order and shortcut list) this is the persisted form of a
// preprocessed graph.
func WriteDDSG(w io.Writer, g *graph.Graph) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "d %d %d\n", g.NumVertices(), g.NumEdges()); err != nil {
		return fmt.Errorf("ioadapter: write header: %w", err)
	}
	for v := graph.VertexID(0); v < graph.VertexID(g.NumVertices()); v++ {
		for _, l := range g.Out(v) {
			if _, err := fmt.Fprintf(bw, "%d %d %d 1\n", v, l.To, l.Weight); err != nil {
				return fmt.Errorf("ioadapter: write edge: %w", err)
			}
		}
	}
	return bw.Flush()
}
