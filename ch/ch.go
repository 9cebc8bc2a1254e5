// Package ch implements Contraction Hierarchies preprocessing and
// querying: preparation of the undirected-with-direction-bit view, a
// hop-limited witness search reusing the dijkstra package's kernel,
// pluggable contraction-ordering strategies, the contraction loop
// itself, and the bidirectional upward-edge CH query with path
// unpacking.
package ch

import "github.com/azybler/chaf/graph"

// Infinity marks a vertex not yet assigned a contraction order.
const Infinity = ^uint32(0)

// Order is the CH order map order: V -> N ∪ {∞}.
// Lower means contracted earlier, i.e. less important.
type Order struct {
	rank []uint32
}

// NewOrder creates an Order for n vertices, all unassigned (Infinity).
func NewOrder(n uint32) Order {
	o := Order{rank: make([]uint32, n)}
	for i := range o.rank {
		o.rank[i] = Infinity
	}
	return o
}

// OrderFromRanks wraps a loaded rank vector as an Order.
func OrderFromRanks(ranks []uint32) Order { return Order{rank: ranks} }

// Ranks exposes the backing rank vector, indexed by vertex id, for
// persistence.
func (o Order) Ranks() []uint32 { return o.rank }

// Get returns v's order, or Infinity if not yet assigned.
func (o Order) Get(v graph.VertexID) uint32 { return o.rank[v] }

// Set assigns v's order.
func (o Order) Set(v graph.VertexID, rank uint32) { o.rank[v] = rank }

// Contracted reports whether v has been assigned a finite order.
func (o Order) Contracted(v graph.VertexID) bool { return o.rank[v] != Infinity }

// Graph bundles the original static graph with the finished contraction
// order and the shortcut-augmented dynamic graph, so a query has
// everything it needs in one value. After Contract returns, every
// vertex carries a finite order and shortcuts are part of the graph.
type Graph struct {
	Orig  *graph.Graph
	Order Order
	Up    *graph.DynamicGraph // shortcut-augmented residual graph, all directions

	// Shortcuts maps every shortcut ever created, in both directions,
	// to the vertex whose contraction produced it. It is independent
	// of Up's live link arena (which sheds the downward-facing copy
	// of every edge as contraction proceeds) so
	// path unpacking (Unpack) can recurse through a shortcut's
	// constituents even after the graph has discarded the copy that
	// would otherwise let it look the edge back up.
	Shortcuts map[shortcutKey]graph.VertexID
}

// Shortcut is one directed shortcut in exportable form: the edge
// (From, To) of the given Weight bypasses Mid.
type Shortcut struct {
	From, To, Mid graph.VertexID
	Weight        uint32
}

// NewGraph reassembles a Graph from parts loaded from storage: the
// original static graph, the contraction order, the residual dynamic
// graph, and the shortcut list (each entry registers both traversal
// orientations, as Contract does).
func NewGraph(orig *graph.Graph, order Order, up *graph.DynamicGraph, shortcuts []Shortcut) *Graph {
	m := make(map[shortcutKey]graph.VertexID, 2*len(shortcuts))
	for _, s := range shortcuts {
		m[shortcutKey{s.From, s.To}] = s.Mid
		m[shortcutKey{s.To, s.From}] = s.Mid
	}
	return &Graph{Orig: orig, Order: order, Up: up, Shortcuts: m}
}
