package ch

import "github.com/azybler/chaf/graph"

// maxUnpackDepth bounds the recursive expansion depth as a safety net
// against a corrupted Shortcuts table ever producing a cycle; a
// correctly built hierarchy never approaches it since each expansion
// strictly increases order-depth toward contracted-first vertices.
const maxUnpackDepth = 1000

// Unpack walks the spliced forward predecessor chain from t back to s
// (pred must be dijkstra.RunBidirectional's post-run predecessor map,
// see Query) and replaces every shortcut edge along it with its
// constituents, recursively, until only original edges remain.
// shortcuts is chg.Shortcuts: the lookup goes through the
// (u,v)->middle map rather than the residual graph, which drops a
// shortcut's downward copy once its higher-order endpoint is itself
// contracted (see Graph.Shortcuts).
func Unpack(shortcuts map[shortcutKey]graph.VertexID, s, t graph.VertexID, pred []graph.VertexID) []graph.VertexID {
	var coarse []graph.VertexID
	for v := t; ; v = pred[v] {
		coarse = append(coarse, v)
		if v == s {
			break
		}
	}
	for i, j := 0, len(coarse)-1; i < j; i, j = i+1, j-1 {
		coarse[i], coarse[j] = coarse[j], coarse[i]
	}

	out := []graph.VertexID{coarse[0]}
	for i := 0; i+1 < len(coarse); i++ {
		unpackEdge(shortcuts, coarse[i], coarse[i+1], &out)
	}
	return out
}

type unpackFrame struct {
	u, v  graph.VertexID
	depth int
}

// unpackEdge appends v (and, recursively, every vertex an intervening
// shortcut passes through) to out, given that (u,v) is one edge of the
// coarse path.
func unpackEdge(shortcuts map[shortcutKey]graph.VertexID, u, v graph.VertexID, out *[]graph.VertexID) {
	stack := []unpackFrame{{u, v, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		mid, isShortcut := shortcuts[shortcutKey{f.u, f.v}]
		if !isShortcut || f.depth > maxUnpackDepth {
			*out = append(*out, f.v)
			continue
		}
		// Push in reverse order so f.u->mid is processed before mid->f.v.
		stack = append(stack, unpackFrame{mid, f.v, f.depth + 1})
		stack = append(stack, unpackFrame{f.u, mid, f.depth + 1})
	}
}
