// Package ioadapter holds the I/O collaborators of the routing core:
// readers and writers for the plain-text graph, partition, arc-flags
// and verification formats, an OSM extract reader, and a
// nearest-vertex spatial index for resolving coordinates to vertex
// ids. The core packages (graph, dijkstra, ch, arcflags) never import
// this package; data flows the other way, from an adapter into a
// graph.Builder and from a preprocessed graph back out through a
// writer.
package ioadapter
