// Package dijkstra implements the forward and bidirectional Dijkstra
// kernels shared by plain shortest-path queries, CH witness search and
// queries, and arc-flags preprocessing and queries. The kernels are
// driven entirely through the Visitor extension points:
// callers customize relaxation and termination without the kernel
// itself knowing anything about CH order, arc-flag cells, or hop
// budgets.
package dijkstra

import "github.com/azybler/chaf/graph"

// Visitor is the set of extension points the kernels invoke during a
// search. Embedding BaseVisitor supplies permissive defaults so a
// caller overrides only the handful of methods it cares about, no
// heap allocation per edge.
type Visitor interface {
	InitializeVertex(v graph.VertexID)
	DiscoverVertex(v graph.VertexID)
	ExamineVertex(v graph.VertexID)
	ExamineEdge(from graph.VertexID, l graph.Link)
	ShouldRelax(from graph.VertexID, l graph.Link) bool
	EdgeRelaxed(from graph.VertexID, l graph.Link)
	EdgeNotRelaxed(from graph.VertexID, l graph.Link)
	FinishVertex(v graph.VertexID)
	ShouldContinue() bool
}

// BaseVisitor implements every Visitor method as a no-op, with
// ShouldRelax and ShouldContinue defaulting to true. Embed it in a
// concrete visitor and override only what differs from plain Dijkstra.
type BaseVisitor struct{}

func (BaseVisitor) InitializeVertex(graph.VertexID) {}
func (BaseVisitor) DiscoverVertex(graph.VertexID) {}
func (BaseVisitor) ExamineVertex(graph.VertexID) {}
func (BaseVisitor) ExamineEdge(graph.VertexID, graph.Link) {}
func (BaseVisitor) ShouldRelax(graph.VertexID, graph.Link) bool { return true }
func (BaseVisitor) EdgeRelaxed(graph.VertexID, graph.Link) {}
func (BaseVisitor) EdgeNotRelaxed(graph.VertexID, graph.Link) {}
func (BaseVisitor) FinishVertex(graph.VertexID) {}
func (BaseVisitor) ShouldContinue() bool { return true }
