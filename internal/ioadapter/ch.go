package ioadapter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/azybler/chaf/ch"
	"github.com/azybler/chaf/graph"
)

const chNoUnpack = "-"

func dirCode(d graph.Direction) int {
	switch d {
	case graph.Forward:
		return 0
	case graph.Backward:
		return 1
	default:
		return 2
	}
}

func dirFromCode(c int) (graph.Direction, bool) {
	switch c {
	case 0:
		return graph.Forward, true
	case 1:
		return graph.Backward, true
	case 2:
		return graph.Both, true
	}
	return 0, false
}

// WriteCH persists a contracted hierarchy: a `ch <V>` header, the
// per-vertex contraction ranks, then the residual graph's surviving
// links, one per line as `from to weight dir unpack` with `-` marking
// an original (non-shortcut) link. Loading this back with ReadCH over
// the same static graph yields a Graph answering the same queries.
func WriteCH(w io.Writer, chg *ch.Graph) error {
	bw := bufio.NewWriter(w)
	n := chg.Up.NumVertices()
	if _, err := fmt.Fprintf(bw, "ch %d\n", n); err != nil {
		return fmt.Errorf("ioadapter: write ch header: %w", err)
	}
	for v, rank := range chg.Order.Ranks() {
		sep := byte(' ')
		if uint32(v) == n-1 {
			sep = '\n'
		}
		if _, err := fmt.Fprintf(bw, "%d%c", rank, sep); err != nil {
			return fmt.Errorf("ioadapter: write ch order: %w", err)
		}
	}
	for v := graph.VertexID(0); v < graph.VertexID(n); v++ {
		for _, l := range chg.Up.Out(v) {
			unpack := chNoUnpack
			if l.Unpack != graph.NoVertex {
				unpack = strconv.FormatUint(uint64(l.Unpack), 10)
			}
			_, err := fmt.Fprintf(bw, "%d %d %d %d %s\n", v, l.To, l.Weight, dirCode(l.Dir), unpack)
			if err != nil {
				return fmt.Errorf("ioadapter: write ch link: %w", err)
			}
		}
	}
	return bw.Flush()
}

// ReadCH loads a hierarchy written by WriteCH and reassembles it over
// the original static graph g.
func ReadCH(r io.Reader, g *graph.Graph) (*ch.Graph, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	sc.Split(bufio.ScanWords)

	word := func(what string) (string, error) {
		if sc.Scan() {
			return sc.Text(), nil
		}
		if err := sc.Err(); err != nil {
			return "", fmt.Errorf("ioadapter: read ch %s: %w", what, err)
		}
		return "", fmt.Errorf("ioadapter: ch data truncated at %s", what)
	}
	num := func(what string) (uint64, error) {
		s, err := word(what)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("ioadapter: ch %s %q: %w", what, s, err)
		}
		return v, nil
	}

	tag, err := word("header")
	if err != nil {
		return nil, err
	}
	if tag != "ch" {
		return nil, fmt.Errorf("ioadapter: ch header tag %q", tag)
	}
	n, err := num("vertex count")
	if err != nil {
		return nil, err
	}
	if uint32(n) != g.NumVertices() {
		return nil, fmt.Errorf("ioadapter: ch vertex count %d does not match graph (%d)", n, g.NumVertices())
	}

	ranks := make([]uint32, n)
	for i := range ranks {
		rank, err := num("rank")
		if err != nil {
			return nil, err
		}
		ranks[i] = uint32(rank)
	}

	up := graph.NewDynamicGraph(uint32(n))
	var shortcuts []ch.Shortcut
	for sc.Scan() {
		fromStr := sc.Text()
		from, err := strconv.ParseUint(fromStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: ch link source %q: %w", fromStr, err)
		}
		to, err := num("link target")
		if err != nil {
			return nil, err
		}
		weight, err := num("link weight")
		if err != nil {
			return nil, err
		}
		code, err := num("link direction")
		if err != nil {
			return nil, err
		}
		dir, ok := dirFromCode(int(code))
		if !ok {
			return nil, fmt.Errorf("ioadapter: ch link direction code %d", code)
		}
		unpackStr, err := word("link unpack")
		if err != nil {
			return nil, err
		}
		unpack := graph.NoVertex
		if unpackStr != chNoUnpack {
			u, err := strconv.ParseUint(unpackStr, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("ioadapter: ch link unpack %q: %w", unpackStr, err)
			}
			unpack = graph.VertexID(u)
		}

		up.AddEdge(graph.VertexID(from), graph.VertexID(to), uint32(weight), dir, unpack)
		if unpack != graph.NoVertex {
			u, v := graph.VertexID(from), graph.VertexID(to)
			if dir == graph.Backward {
				u, v = v, u
			}
			shortcuts = append(shortcuts, ch.Shortcut{From: u, To: v, Mid: unpack, Weight: uint32(weight)})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioadapter: read ch links: %w", err)
	}

	return ch.NewGraph(g, ch.OrderFromRanks(ranks), up, shortcuts), nil
}
