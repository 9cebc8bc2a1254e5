package ioadapter

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/azybler/chaf/graph"
)

// VerificationQuery is one expected point-to-point answer: the engine
// should report Distance for a query from Source to Target.
type VerificationQuery struct {
	Source, Target graph.VertexID
	Distance       uint32
}

// ReadVerification reads whitespace triples `src tgt dist`.
func ReadVerification(r io.Reader) ([]VerificationQuery, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	word := func() (string, bool) {
		if sc.Scan() {
			return sc.Text(), true
		}
		return "", false
	}

	var queries []VerificationQuery
	for {
		s, ok := word()
		if !ok {
			break
		}
		t, ok := word()
		if !ok {
			return nil, fmt.Errorf("ioadapter: verification record %d truncated", len(queries))
		}
		d, ok := word()
		if !ok {
			return nil, fmt.Errorf("ioadapter: verification record %d truncated", len(queries))
		}

		src, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: verification record %d: source: %w", len(queries), err)
		}
		tgt, err := strconv.ParseUint(t, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: verification record %d: target: %w", len(queries), err)
		}
		dist, err := strconv.ParseUint(d, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("ioadapter: verification record %d: distance: %w", len(queries), err)
		}
		queries = append(queries, VerificationQuery{
			Source:   graph.VertexID(src),
			Target:   graph.VertexID(tgt),
			Distance: uint32(dist),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ioadapter: read verification: %w", err)
	}
	return queries, nil
}
