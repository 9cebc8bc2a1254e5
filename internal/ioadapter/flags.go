package ioadapter

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/bitset"
)

// flagString renders a flag set as k characters of 0/1, bit 0 first.
func flagString(s bitset.Set, k int) string {
	var b strings.Builder
	b.Grow(k)
	for i := 0; i < k; i++ {
		if i < s.Len() && s.Bit(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func parseFlag(field string, k int) (bitset.Set, error) {
	if len(field) != k {
		return bitset.Set{}, fmt.Errorf("flag field %q has %d bits, want %d", field, len(field), k)
	}
	s := bitset.New(k)
	for i := 0; i < k; i++ {
		switch field[i] {
		case '1':
			s.Set(i)
		case '0':
		default:
			return bitset.Set{}, fmt.Errorf("flag field %q: bad character %q", field, field[i])
		}
	}
	return s, nil
}

// WriteArcFlags persists both flag sets of a preprocessed graph, one
// line per edge as `src tgt <k bits forward> <k bits backward>`, in
// the order produced by iterating vertices and then each vertex's
// out-edges. ReadArcFlags restores from the same order.
func WriteArcFlags(w io.Writer, g *graph.Graph, k int) error {
	bw := bufio.NewWriter(w)
	for v := graph.VertexID(0); v < graph.VertexID(g.NumVertices()); v++ {
		for _, l := range g.Out(v) {
			p := g.Props(l.ID)
			_, err := fmt.Fprintf(bw, "%d %d %s %s\n",
				v, l.To, flagString(p.FlagsFwd, k), flagString(p.FlagsBwd, k))
			if err != nil {
				return fmt.Errorf("ioadapter: write flags: %w", err)
			}
		}
	}
	return bw.Flush()
}

// ReadArcFlags loads flag sets written by WriteArcFlags into g. The
// reader walks g's own vertex-then-out-edge iteration order and
// fails if any line's src/tgt pair does not match the edge it lands
// on, so flags can never be attached to the wrong graph.
func ReadArcFlags(r io.Reader, g *graph.Graph, k int) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	next := func() (string, bool) {
		for sc.Scan() {
			lineNo++
			line := strings.TrimSpace(sc.Text())
			if line != "" {
				return line, true
			}
		}
		return "", false
	}

	for v := graph.VertexID(0); v < graph.VertexID(g.NumVertices()); v++ {
		for _, l := range g.Out(v) {
			line, ok := next()
			if !ok {
				return fmt.Errorf("ioadapter: flags truncated at edge (%d,%d)", v, l.To)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return fmt.Errorf("ioadapter: line %d: expected `src tgt fwd bwd`, got %q", lineNo, line)
			}
			if fields[0] != fmt.Sprint(v) || fields[1] != fmt.Sprint(l.To) {
				return fmt.Errorf("ioadapter: line %d: edge (%s,%s) does not match graph edge (%d,%d)",
					lineNo, fields[0], fields[1], v, l.To)
			}
			fwd, err := parseFlag(fields[2], k)
			if err != nil {
				return fmt.Errorf("ioadapter: line %d: %w", lineNo, err)
			}
			bwd, err := parseFlag(fields[3], k)
			if err != nil {
				return fmt.Errorf("ioadapter: line %d: %w", lineNo, err)
			}
			p := g.Props(l.ID)
			p.FlagsFwd = fwd
			p.FlagsBwd = bwd
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("ioadapter: read flags: %w", err)
	}
	return nil
}
