package ioadapter

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"github.com/azybler/chaf/graph"
)

// Coord is one vertex's geographic position, carried alongside the
// edge list so callers can build a NearestVertex index.
type Coord struct {
	Lat, Lon float64
}

// OSMResult is the output of ReadOSM: a direction-expanded edge list
// ready for graph.Builder, plus per-vertex coordinates indexed by the
// compact vertex ids the edges use.
type OSMResult struct {
	Edges       []graph.InputEdge
	NumVertices uint32
	Coords      []Coord
}

// drivable lists the highway tag values a car may use.
var drivable = map[string]bool{
	"motorway":       true,
	"motorway_link":  true,
	"trunk":          true,
	"trunk_link":     true,
	"primary":        true,
	"primary_link":   true,
	"secondary":      true,
	"secondary_link": true,
	"tertiary":       true,
	"tertiary_link":  true,
	"unclassified":   true,
	"residential":    true,
	"living_street":  true,
	"service":        true,
}

func wayUsable(tags osm.Tags) bool {
	if !drivable[tags.Find("highway")] {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	switch tags.Find("access") {
	case "no", "private":
		return false
	}
	return tags.Find("motor_vehicle") != "no"
}

// wayDirections reports which directions a way is traversable in,
// from its oneway and junction tags.
func wayDirections(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true
	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}
	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		forward, backward = false, false // time-dependent, skip entirely
	}
	return forward, backward
}

type osmWay struct {
	nodes    []osm.NodeID
	forward  bool
	backward bool
}

// ReadOSM reads an OSM PBF extract and returns the drivable road
// network as a direction-expanded edge list with haversine weights in
// meters (rounded, minimum 1). The reader is consumed twice, ways
// first and then the nodes those ways reference, so it must seek.
func ReadOSM(ctx context.Context, rs io.ReadSeeker) (*OSMResult, error) {
	referenced := make(map[osm.NodeID]struct{})
	var ways []osmWay

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok || !wayUsable(w.Tags) || len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := wayDirections(w.Tags)
		if !fwd && !bwd {
			continue
		}
		nodes := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodes[i] = wn.ID
			referenced[wn.ID] = struct{}{}
		}
		ways = append(ways, osmWay{nodes: nodes, forward: fwd, backward: bwd})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("ioadapter: osm ways: %w", err)
	}
	scanner.Close()

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("ioadapter: osm rewind: %w", err)
	}

	coordOf := make(map[osm.NodeID]Coord, len(referenced))
	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referenced[n.ID]; needed {
			coordOf[n.ID] = Coord{Lat: n.Lat, Lon: n.Lon}
		}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("ioadapter: osm nodes: %w", err)
	}
	scanner.Close()

	res := &OSMResult{}
	compact := make(map[osm.NodeID]graph.VertexID, len(coordOf))
	vertexOf := func(id osm.NodeID) graph.VertexID {
		if v, ok := compact[id]; ok {
			return v
		}
		v := graph.VertexID(len(res.Coords))
		compact[id] = v
		res.Coords = append(res.Coords, coordOf[id])
		return v
	}

	for _, w := range ways {
		for i := 0; i+1 < len(w.nodes); i++ {
			a, aOk := coordOf[w.nodes[i]]
			b, bOk := coordOf[w.nodes[i+1]]
			if !aOk || !bOk {
				continue // way refers to a node the extract does not carry
			}
			weight := uint32(math.Round(haversine(a.Lat, a.Lon, b.Lat, b.Lon)))
			if weight == 0 {
				weight = 1
			}
			u, v := vertexOf(w.nodes[i]), vertexOf(w.nodes[i+1])
			if w.forward {
				res.Edges = append(res.Edges, graph.InputEdge{From: u, To: v, Weight: weight, Dir: graph.Forward})
			}
			if w.backward {
				res.Edges = append(res.Edges, graph.InputEdge{From: v, To: u, Weight: weight, Dir: graph.Forward})
			}
		}
	}
	res.NumVertices = uint32(len(res.Coords))
	return res, nil
}
