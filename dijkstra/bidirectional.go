package dijkstra

import "github.com/azybler/chaf/graph"

// Criterion selects the stopping rule a bidirectional search uses
// once a candidate distance is known.
type Criterion uint8

const (
	// StopSumTops stops once mu <= fwdTop + bwdTop (both queues
	// nonempty). Correct for plain bidirectional Dijkstra, where a
	// settled distance is final.
	StopSumTops Criterion = iota
	// StopMinTop stops once mu <= min(fwdTop, bwdTop), an empty
	// queue's top counting as infinite. This is the rule upward-only
	// CH searches need: a settled vertex's distance there is only an
	// upper bound, so the sum rule would stop too early.
	StopMinTop
)

// Tracker is the termination tracker shared by both halves of a
// bidirectional search: the best known s-t distance, the vertex where
// it was achieved, and the stopping rule in force.
type Tracker struct {
	Mu        uint32
	Meet      graph.VertexID
	Criterion Criterion
}

// NewTracker creates a Tracker with no candidate meeting point yet.
func NewTracker() *Tracker {
	return &Tracker{Mu: Infinity}
}

// Reset restores the tracker for a new search, keeping the criterion.
func (tr *Tracker) Reset() {
	tr.Mu = Infinity
	tr.Meet = 0
}

// shouldStop applies the tracker's criterion to the current queue
// tops (Infinity for an exhausted side).
func (tr *Tracker) shouldStop(fwdTop, bwdTop uint32) bool {
	if tr.Mu == Infinity {
		return false
	}
	if tr.Criterion == StopMinTop {
		m := fwdTop
		if bwdTop < m {
			m = bwdTop
		}
		return tr.Mu <= m
	}
	if fwdTop == Infinity || bwdTop == Infinity {
		return false
	}
	return tr.Mu <= addSat(fwdTop, bwdTop)
}

// considerCandidate registers v as a meeting candidate. It fires on
// every relaxation whose target is already discovered (gray or black)
// by the opposite search: waiting until v is settled on both sides
// would let the stopping rule fire first and miss a meeting vertex
// whose labels are already final, returning an overestimate.
func (tr *Tracker) considerCandidate(v graph.VertexID, dFwd, dBwd uint32) {
	if sum := addSat(dFwd, dBwd); sum < tr.Mu {
		tr.Mu = sum
		tr.Meet = v
	}
}

// RunBidirectional runs a forward search from s over fwd and a
// backward search from t over bwd (the caller-supplied reverse
// adjacency), alternating one Dijkstra step per side and sharing tr as
// the termination tracker. Rather than wrapping each user visitor in a
// combinator that also feeds the tracker, the tracker update is folded
// directly into stepOnce's relaxation loop: every relaxation whose
// target the opposite search has discovered updates mu.
// stFwd/stBwd must be Reset by the caller beforehand. On
// return, stFwd.Dist[t] holds the s-t distance (Infinity if
// unreachable) and stFwd.Pred has been spliced with the backward
// predecessors from tr.Meet to t, inverted, so a single forward
// predecessor walk from t reconstructs the full path.
func RunBidirectional(fwd, bwd graph.Adjacency, s, t graph.VertexID, visFwd, visBwd Visitor, stFwd, stBwd *State, tr *Tracker) uint32 {
	stFwd.touch(s)
	stFwd.Dist[s] = 0
	stFwd.color[s] = gray
	visFwd.DiscoverVertex(s)
	stFwd.Q.Insert(0, uint32(s))

	stBwd.touch(t)
	stBwd.Dist[t] = 0
	stBwd.color[t] = gray
	visBwd.DiscoverVertex(t)
	stBwd.Q.Insert(0, uint32(t))

	if s == t {
		tr.Mu = 0
		tr.Meet = s
	}

	fwdTurn := true
	for {
		fwdEmpty, bwdEmpty := stFwd.Q.IsEmpty(), stBwd.Q.IsEmpty()
		if fwdEmpty && bwdEmpty {
			break
		}
		fwdTop, bwdTop := uint32(Infinity), uint32(Infinity)
		if !fwdEmpty {
			fwdTop = stFwd.Q.PeekMin().Key
		}
		if !bwdEmpty {
			bwdTop = stBwd.Q.PeekMin().Key
		}
		if tr.shouldStop(fwdTop, bwdTop) {
			break
		}

		runFwd := (fwdTurn && !fwdEmpty) || bwdEmpty
		fwdTurn = !fwdTurn

		var cont bool
		if runFwd {
			cont = stepOnce(fwd, visFwd, stFwd, stBwd, tr)
		} else {
			cont = stepOnce(bwd, visBwd, stBwd, stFwd, tr)
		}
		if !cont {
			break
		}
	}

	if tr.Mu != Infinity && tr.Meet != t {
		spliceBackwardPredecessors(stFwd, stBwd, tr.Meet, t)
	}
	stFwd.Dist[t] = tr.Mu
	return tr.Mu
}

// stepOnce performs exactly one Dijkstra pop-and-relax iteration (the
// inner body of Run) for one side of a bidirectional search, feeding
// every relaxation whose target the other side has already discovered
// into the shared tracker. cont reports the visitor's ShouldContinue
// verdict.
func stepOnce(g graph.Adjacency, visitor Visitor, st, other *State, tr *Tracker) (cont bool) {
	if st.Q.IsEmpty() {
		return true
	}
	top := st.Q.PeekMin()
	st.Q.DeleteMin()
	v := graph.VertexID(top.DataID)
	d := top.Key
	if d != st.Dist[v] {
		return true // stale entry, nothing to do
	}
	visitor.ExamineVertex(v)

	for _, l := range g.Out(v) {
		visitor.ExamineEdge(v, l)
		if !visitor.ShouldRelax(v, l) {
			continue
		}
		nd := d + l.Weight
		if nd < st.Dist[l.To] {
			oldDist := st.Dist[l.To]
			st.touch(l.To)
			st.Dist[l.To] = nd
			st.Pred[l.To] = v
			if st.color[l.To] == white {
				visitor.DiscoverVertex(l.To)
				st.color[l.To] = gray
				st.Q.Insert(nd, uint32(l.To))
			} else {
				st.Q.DecreaseKey(oldDist, uint32(l.To), nd)
			}
			if other.color[l.To] != white {
				tr.considerCandidate(l.To, st.Dist[l.To], other.Dist[l.To])
			}
			visitor.EdgeRelaxed(v, l)
		} else {
			visitor.EdgeNotRelaxed(v, l)
		}
	}

	st.color[v] = black
	visitor.FinishVertex(v)
	return visitor.ShouldContinue()
}

func addSat(a, b uint32) uint32 {
	if a == Infinity || b == Infinity {
		return Infinity
	}
	s := a + b
	if s < a { // overflow
		return Infinity
	}
	return s
}

// spliceBackwardPredecessors walks bwd's predecessor chain from meet to
// t and copies it, inverted, into fwd's predecessor map, so a forward
// walk from t through fwd.Pred reaches s through meet.
func spliceBackwardPredecessors(fwd, bwd *State, meet, t graph.VertexID) {
	cur := meet
	for cur != t {
		next := bwd.Pred[cur]
		fwd.Pred[next] = cur
		cur = next
	}
}
