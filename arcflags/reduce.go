package arcflags

import (
	"math"
	"sort"

	"github.com/azybler/chaf/graph"
	"github.com/azybler/chaf/internal/bitset"
)

// field bundles the getter/setter pair for one of a graph's two flag
// sets, so the reduction passes below operate identically on FlagsFwd
// or FlagsBwd without duplicating the algorithm.
type field struct {
	get func(*graph.EdgeProps) bitset.Set
	set func(*graph.EdgeProps, bitset.Set)
}

var fieldFwd = field{
	get: func(p *graph.EdgeProps) bitset.Set { return p.FlagsFwd },
	set: func(p *graph.EdgeProps, s bitset.Set) { p.FlagsFwd = s },
}

var fieldBwd = field{
	get: func(p *graph.EdgeProps) bitset.Set { return p.FlagsBwd },
	set: func(p *graph.EdgeProps, s bitset.Set) { p.FlagsBwd = s },
}

// distinctFlags collects every distinct flag value carried by g's edges
// (via f), keyed by its bitset.Key, along with how many edges carry it.
func distinctFlags(g *graph.Graph, f field) (values map[string]bitset.Set, counts map[string]int) {
	values = make(map[string]bitset.Set)
	counts = make(map[string]int)
	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		flag := f.get(g.Props(e))
		key := flag.Key()
		values[key] = flag
		counts[key]++
	}
	return values, counts
}

// ensureAllOnes returns the k-bit all-ones flag's key, registering the
// flag in values if no edge happens to already carry it. The all-ones
// flag is always retained as the correctness fallback, so it must
// exist as a candidate even when nothing in the graph needs every bit
// set.
func ensureAllOnes(values map[string]bitset.Set, k int) string {
	allOnes := bitset.New(k)
	for i := 0; i < k; i++ {
		allOnes.Set(i)
	}
	key := allOnes.Key()
	if _, ok := values[key]; !ok {
		values[key] = allOnes
	}
	return key
}

// selectRetained is the selection step shared by the greedy and
// ranked passes: stable-sort the distinct flags ascending by score,
// breaking ties by popcount and then by bit pattern, and retain the top ceil(N*(1-filter)) most popular,
// plus the all-ones flag unconditionally.
func selectRetained(values map[string]bitset.Set, scores map[string]float64, filter float64, k int) map[string]bool {
	type entry struct {
		key      string
		score    float64
		popcount int
	}
	entries := make([]entry, 0, len(values))
	for key, v := range values {
		entries = append(entries, entry{key: key, score: scores[key], popcount: v.PopCount()})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score < entries[j].score
		}
		if entries[i].popcount != entries[j].popcount {
			return entries[i].popcount < entries[j].popcount
		}
		return entries[i].key < entries[j].key
	})

	n := len(entries)
	retainCount := int(math.Ceil(float64(n) * (1 - filter)))
	if retainCount < 0 {
		retainCount = 0
	}
	if retainCount > n {
		retainCount = n
	}
	retained := make(map[string]bool, retainCount+1)
	for i := n - retainCount; i < n; i++ {
		retained[entries[i].key] = true
	}
	retained[ensureAllOnes(values, k)] = true
	return retained
}

// combinations returns every size-sized subset of items, as index lists
// into items, in the order generated by a straightforward recursive
// descent. Used only for the BFS neighborhood search below, whose
// maxDistance defaults to 1, a single pass over items, growing
// combinatorially only if a caller raises it.
func combinations(items []int, size int) [][]int {
	var result [][]int
	combo := make([]int, 0, size)
	var rec func(start int)
	rec = func(start int) {
		if len(combo) == size {
			cp := make([]int, size)
			copy(cp, combo)
			result = append(result, cp)
			return
		}
		for i := start; i < len(items); i++ {
			combo = append(combo, items[i])
			rec(i + 1)
			combo = combo[:len(combo)-1]
		}
	}
	rec(0)
	return result
}

// bfsNeighborhood is the first mapping step for a dropped flag: it
// tries flipping 1, then 2, ... up to maxDistance of f's unset bits
// and returns the first resulting flag that is itself a retained flag,
// nearest distance first.
func bfsNeighborhood(f bitset.Set, retained map[string]bool, values map[string]bitset.Set, maxDistance, k int) (bitset.Set, bool) {
	var unset []int
	for i := 0; i < k; i++ {
		if !f.Bit(i) {
			unset = append(unset, i)
		}
	}
	for d := 1; d <= maxDistance; d++ {
		for _, combo := range combinations(unset, d) {
			cand := f.Clone()
			for _, bit := range combo {
				cand.Set(bit)
			}
			key := cand.Key()
			if retained[key] {
				return values[key], true
			}
		}
	}
	return bitset.Set{}, false
}

// mapFlag maps one non-retained
// flag onto a retained replacement: the BFS neighborhood search, then (failing that) a scan of the
// retained flags by increasing popcount for the first superset, which always
// succeeds since the all-ones flag is unconditionally retained.
func mapFlag(f bitset.Set, retained map[string]bool, retainedByPopcount []bitset.Set, values map[string]bitset.Set, maxDistance, k int) bitset.Set {
	if cand, ok := bfsNeighborhood(f, retained, values, maxDistance, k); ok {
		return cand
	}
	for _, r := range retainedByPopcount {
		if r.Superset(f) {
			return r
		}
	}
	panic("arcflags: no retained superset found (all-ones flag should always match)")
}

// buildMapping produces, for every distinct flag, the retained flag it
// should be replaced by (itself, if already retained).
func buildMapping(values map[string]bitset.Set, retained map[string]bool, maxDistance, k int) map[string]bitset.Set {
	retainedByPopcount := make([]bitset.Set, 0, len(retained))
	for key := range retained {
		retainedByPopcount = append(retainedByPopcount, values[key])
	}
	sort.Slice(retainedByPopcount, func(i, j int) bool {
		return retainedByPopcount[i].PopCount() < retainedByPopcount[j].PopCount()
	})

	mapping := make(map[string]bitset.Set, len(values))
	for key, f := range values {
		if retained[key] {
			mapping[key] = f
			continue
		}
		mapping[key] = mapFlag(f, retained, retainedByPopcount, values, maxDistance, k)
	}
	return mapping
}

func applyMapping(g *graph.Graph, f field, mapping map[string]bitset.Set) {
	for e := graph.EdgeID(0); e < graph.EdgeID(g.NumEdges()); e++ {
		p := g.Props(e)
		f.set(p, mapping[f.get(p).Key()])
	}
}

func flagBitLen(g *graph.Graph, f field) int {
	if g.NumEdges() == 0 {
		return 0
	}
	return f.get(g.Props(0)).Len()
}

func reduceGreedy(g *graph.Graph, filter float64, maxDistance int, f field) int {
	if g.NumEdges() == 0 {
		return 0
	}
	k := flagBitLen(g, f)
	values, counts := distinctFlags(g, f)
	scores := make(map[string]float64, len(counts))
	for key, c := range counts {
		scores[key] = float64(c)
	}
	retained := selectRetained(values, scores, filter, k)
	mapping := buildMapping(values, retained, maxDistance, k)
	applyMapping(g, f, mapping)
	return len(retained)
}

// rankedScores computes the ranked pass scores: before selection, every
// flag's count is propagated to the flags reachable by flipping up to
// breakDistance of its unset bits, fading exponentially by alpha per
// bit (breakDistance=0, the reference default, makes this identical to
// the plain counts greedy uses).
func rankedScores(values map[string]bitset.Set, counts map[string]int, breakDistance int, alpha float64) map[string]float64 {
	scores := make(map[string]float64, len(values))
	for key := range values {
		scores[key] = 0
	}
	for srcKey, c := range counts {
		src := values[srcKey]
		for dstKey, dst := range values {
			if !dst.Superset(src) {
				continue
			}
			d := dst.PopCount() - src.PopCount()
			if d > breakDistance {
				continue
			}
			scores[dstKey] += float64(c) * math.Pow(alpha, float64(d))
		}
	}
	return scores
}

func reduceRanked(g *graph.Graph, filter float64, maxDistance, breakDistance int, alpha float64, f field) int {
	if g.NumEdges() == 0 {
		return 0
	}
	k := flagBitLen(g, f)
	values, counts := distinctFlags(g, f)
	scores := rankedScores(values, counts, breakDistance, alpha)
	retained := selectRetained(values, scores, filter, k)
	mapping := buildMapping(values, retained, maxDistance, k)
	applyMapping(g, f, mapping)
	return len(retained)
}

// ReduceGreedy runs the greedy flag reduction over the forward
// flag set: clusters g's distinct FlagsFwd values down to the
// ceil(N*(1-filter)) most popular plus the all-ones fallback, remapping
// every dropped flag onto a retained superset. Returns the number of
// distinct flags retained. maxDistance is the BFS radius of the first
// mapping step; 1 is the customary default.
func ReduceGreedy(g *graph.Graph, filter float64, maxDistance int) int {
	return reduceGreedy(g, filter, maxDistance, fieldFwd)
}

// ReduceGreedyBackward is ReduceGreedy over the backward flag set
// (FlagsBwd), for the bidirectional variant.
func ReduceGreedyBackward(g *graph.Graph, filter float64, maxDistance int) int {
	return reduceGreedy(g, filter, maxDistance, fieldBwd)
}

// ReduceRanked runs the ranked flag reduction over the forward
// flag set: popularity is first propagated to nearby supersets with
// exponential fade alpha (customarily 0.5) out to breakDistance extra
// bits (customarily 0), then the same retain/map steps as ReduceGreedy
// run against the propagated scores.
func ReduceRanked(g *graph.Graph, filter float64, maxDistance, breakDistance int, alpha float64) int {
	return reduceRanked(g, filter, maxDistance, breakDistance, alpha, fieldFwd)
}

// ReduceRankedBackward is ReduceRanked over the backward flag set.
func ReduceRankedBackward(g *graph.Graph, filter float64, maxDistance, breakDistance int, alpha float64) int {
	return reduceRanked(g, filter, maxDistance, breakDistance, alpha, fieldBwd)
}
