package ch

import "github.com/azybler/chaf/graph"

// shortcutEdge is one (u,v) shortcut produced while contracting a
// single vertex, before it is spliced into the residual graph.
type shortcutEdge struct {
	U, V, Unpack graph.VertexID
	Weight       uint32
}

type shortcutKey struct{ u, v graph.VertexID }

// Contract runs Contraction Hierarchies preprocessing over g using
// strategy to pick the contraction order, with dijLimit as the witness
// search's per-side hop budget. dijLimit is a tuning knob with no
// principled default, so callers must choose one; larger values find
// more witnesses and insert fewer shortcuts at higher preprocessing
// cost. It returns the finished Graph: the original
// static graph, the total order assigned to every vertex, and the
// shortcut-augmented residual DynamicGraph queries run over.
func Contract(g *graph.Graph, strategy Strategy, dijLimit int) *Graph {
	n := g.NumVertices()
	up := Prepare(g)
	order := NewOrder(n)
	pool := newWitnessPool(n)
	shortcutsOf := make(map[shortcutKey]graph.VertexID)

	var curOrder uint32
	for {
		c, ok := strategy.Next(up, order)
		if !ok {
			break
		}
		order.Set(c, curOrder)
		curOrder++

		shortcuts := contractVertex(pool, up, order, c, dijLimit)

		// Remove every out-link (c,x) with order(x) <= order(c)
		// before splicing in shortcuts, so the new links added below
		// aren't immediately swept up by this same predicate.
		up.RemoveOutEdgeIf(c, func(to graph.VertexID, weight uint32, dir graph.Direction, unpack graph.VertexID) bool {
			return order.Get(to) <= order.Get(c)
		})

		for _, sc := range shortcuts {
			up.AddEdge(sc.U, sc.V, sc.Weight, graph.Forward, sc.Unpack)
			up.AddEdge(sc.V, sc.U, sc.Weight, graph.Backward, sc.Unpack)
			shortcutsOf[shortcutKey{sc.U, sc.V}] = sc.Unpack
			shortcutsOf[shortcutKey{sc.V, sc.U}] = sc.Unpack
		}

		if hl, ok := strategy.(*LazyPriorityStrategy); ok {
			hl.OnContracted(up, order, c, shortcuts)
		}
	}

	return &Graph{Orig: g, Order: order, Up: up, Shortcuts: shortcutsOf}
}

// contractVertex computes the shortcuts contracting c requires: for
// every admissible (u,c,v) triple with u != v and both neighbors still
// active, run a witness search and keep the minimal shortcut weight
// per (u,v) pair among all incoming neighbors that require it.
func contractVertex(pool *witnessPool, up *graph.DynamicGraph, order Order, c graph.VertexID, dijLimit int) []shortcutEdge {
	orderC := order.Get(c)

	var incoming, outgoing []graph.Link
	for _, l := range up.In(c) {
		if l.Dir.AdmitsForward() && order.Get(l.To) > orderC {
			incoming = append(incoming, l)
		}
	}
	for _, l := range up.Out(c) {
		if l.Dir.AdmitsForward() && order.Get(l.To) > orderC {
			outgoing = append(outgoing, l)
		}
	}

	if len(incoming) == 0 || len(outgoing) == 0 {
		return nil
	}

	best := make(map[shortcutKey]uint32)
	for _, in := range incoming {
		u := in.To
		for _, out := range outgoing {
			v := out.To
			if u == v {
				continue
			}
			l := in.Weight + out.Weight
			key := shortcutKey{u, v}
			if existing, ok := best[key]; ok && existing <= l {
				continue
			}
			if witnessSearch(pool, up, order, c, u, v, l, dijLimit) {
				continue // witness path shorter than l found: shortcut not needed
			}
			best[key] = l
		}
	}

	shortcuts := make([]shortcutEdge, 0, len(best))
	for k, w := range best {
		shortcuts = append(shortcuts, shortcutEdge{U: k.u, V: k.v, Weight: w, Unpack: c})
	}
	return shortcuts
}
