package ioadapter

import (
	"errors"

	"github.com/tidwall/rtree"

	"github.com/azybler/chaf/graph"
)

// ErrPointTooFar is returned when a query point is farther from every
// vertex than the caller's limit.
var ErrPointTooFar = errors.New("ioadapter: point too far from any vertex")

// snapCandidates is how many nearest-by-degree candidates Snap
// re-measures with haversine. Degree-space order can disagree with
// meter-space order because longitude degrees shrink with latitude,
// so the single nearest box is not always the nearest vertex.
const snapCandidates = 8

// NearestVertex resolves a geographic point to the closest graph
// vertex, backed by an R-tree over the vertex coordinates. It is how
// a caller turns a lat/lon pair into a query endpoint for a graph
// built from an OSM extract.
type NearestVertex struct {
	tr     rtree.RTreeG[graph.VertexID]
	coords []Coord
}

// NewNearestVertex indexes coords; the i-th entry is vertex i's
// position.
func NewNearestVertex(coords []Coord) *NearestVertex {
	nv := &NearestVertex{coords: coords}
	for i, c := range coords {
		pt := [2]float64{c.Lon, c.Lat}
		nv.tr.Insert(pt, pt, graph.VertexID(i))
	}
	return nv
}

// Snap returns the vertex nearest to (lat, lon), or ErrPointTooFar if
// none lies within maxMeters.
func (nv *NearestVertex) Snap(lat, lon, maxMeters float64) (graph.VertexID, error) {
	pt := [2]float64{lon, lat}

	best := graph.NoVertex
	bestDist := maxMeters
	seen := 0
	nv.tr.Nearby(
		func(min, max [2]float64, _ graph.VertexID, _ bool) float64 {
			return boxDist(pt, min, max)
		},
		func(min, max [2]float64, v graph.VertexID, dist float64) bool {
			c := nv.coords[v]
			if d := haversine(lat, lon, c.Lat, c.Lon); d <= bestDist {
				best = v
				bestDist = d
			}
			seen++
			return seen < snapCandidates
		})

	if best == graph.NoVertex {
		return 0, ErrPointTooFar
	}
	return best, nil
}

// boxDist is the squared degree-space distance from pt to the box
// [min, max], the priority Nearby expands candidates in.
func boxDist(pt, min, max [2]float64) float64 {
	var d float64
	for i := 0; i < 2; i++ {
		if pt[i] < min[i] {
			d += (min[i] - pt[i]) * (min[i] - pt[i])
		} else if pt[i] > max[i] {
			d += (pt[i] - max[i]) * (pt[i] - max[i])
		}
	}
	return d
}
