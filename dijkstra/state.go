package dijkstra

import (
	"math"

	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/queue"
)

// Infinity is the sentinel distance meaning "no path found". It is not
// an error; callers must treat it as unreachable.
const Infinity = math.MaxUint32

type color uint8

const (
	white color = iota
	gray
	black
)

// State holds one search's working memory: distance, predecessor and
// color maps plus the addressable priority queue, all pre-sized to
// |V| and reused across many searches. Reset only touches the vertices
// a prior search actually reached, so repeated bounded searches (CH
// witness search, arc-flags per-cell sweeps) stay cheap.
type State struct {
	Dist    []uint32
	Pred    []graph.VertexID
	color   []color
	touched []graph.VertexID
	Q       *queue.Fast
}

// NewState allocates a State for a graph of n vertices.
func NewState(n uint32) *State {
	s := &State{
		Dist:  make([]uint32, n),
		Pred:  make([]graph.VertexID, n),
		color: make([]color, n),
		Q:     queue.NewFast(n),
	}
	for v := range s.Dist {
		s.Dist[v] = Infinity
		s.Pred[v] = graph.VertexID(v)
	}
	return s
}

// Reset restores every vertex touched by the previous search to its
// initial state and clears the queue for reuse.
func (s *State) Reset() {
	for _, v := range s.touched {
		s.Dist[v] = Infinity
		s.Pred[v] = v
		s.color[v] = white
	}
	s.touched = s.touched[:0]
	s.Q.Clear()
}

func (s *State) touch(v graph.VertexID) {
	if s.color[v] == white && s.Dist[v] == Infinity {
		s.touched = append(s.touched, v)
	}
}
