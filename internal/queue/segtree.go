package queue

// SegTree is the queue variant backed by a segment tree over the fixed
// data_id range [0, n): each leaf holds the current key for one
// data_id (or the NoData sentinel when absent), and each internal node
// holds the minimum of its children. Point updates and the global
// minimum are both O(log n), same as a binary heap, but a decrease-key
// never needs a sift: it is a single leaf write plus one walk to the
// root. arity controls the branching factor of the tree (2 gives the
// classic binary segment tree; higher arity trades tree height for a
// wider per-node scan at each level).
type SegTree struct {
	arity       int
	tree        []Item   // flattened levels, leaves first, root last
	levelOffset []int    // levelOffset[i] is the flat start index of level i
	present     []bool
}

func sentinelItem() Item { return Item{Key: NoData, DataID: NoData} }

// NewSegTree creates a segment tree queue with branching factor arity,
// sized for data_id values in [0, n).
func NewSegTree(arity int, n uint32) *SegTree {
	if arity < 2 {
		arity = 2
	}
	q := &SegTree{arity: arity}
	q.levelOffset = q.computeLevelOffsets(int(n))
	total := q.levelOffset[len(q.levelOffset)-1] + 1
	q.tree = make([]Item, total)
	for i := range q.tree {
		q.tree[i] = sentinelItem()
	}
	q.present = make([]bool, n)
	return q
}

// computeLevelOffsets lays out level 0 (n leaves, or 1 if n == 0) and
// each subsequent level of ceil(prev/arity) nodes, stopping once a
// level of size 1 (the root) has been appended.
func (q *SegTree) computeLevelOffsets(n int) []int {
	levelLen := n
	if levelLen == 0 {
		levelLen = 1
	}
	offsets := []int{0}
	total := levelLen
	for levelLen > 1 {
		levelLen = (levelLen + q.arity - 1) / q.arity
		offsets = append(offsets, total)
		total += levelLen
	}
	return offsets
}

func (q *SegTree) rootIndex() int {
	return q.levelOffset[len(q.levelOffset)-1]
}

func (q *SegTree) levelSize(level int) int {
	if level+1 < len(q.levelOffset) {
		return q.levelOffset[level+1] - q.levelOffset[level]
	}
	return 1
}

func (q *SegTree) leafIndex(dataID uint32) int {
	return q.levelOffset[0] + int(dataID)
}

// recompute recalculates the parent of (level, idxInLevel) from its
// arity-wide group of children and propagates upward while the value
// changed.
func (q *SegTree) recompute(level, idxInLevel int) {
	if level >= len(q.levelOffset)-1 {
		return
	}
	group := idxInLevel / q.arity
	start := q.levelOffset[level] + group*q.arity
	end := start + q.arity
	limit := q.levelOffset[level] + q.levelSize(level)
	if end > limit {
		end = limit
	}
	best := sentinelItem()
	for i := start; i < end; i++ {
		if less(q.tree[i], best) {
			best = q.tree[i]
		}
	}
	parentLevel := level + 1
	parentIdx := group
	pPos := q.levelOffset[parentLevel] + parentIdx
	if q.tree[pPos] == best {
		return
	}
	q.tree[pPos] = best
	q.recompute(parentLevel, parentIdx)
}

func (q *SegTree) setLeaf(dataID uint32, it Item) {
	pos := q.leafIndex(dataID)
	q.tree[pos] = it
	q.recompute(0, int(dataID))
}

// Insert adds (key, dataID); dataID must not already be enqueued.
func (q *SegTree) Insert(key uint32, dataID uint32) {
	q.present[dataID] = true
	q.setLeaf(dataID, Item{Key: key, DataID: dataID})
}

// DecreaseKey lowers dataID's key.
func (q *SegTree) DecreaseKey(oldKey, dataID, newKey uint32) {
	q.setLeaf(dataID, Item{Key: newKey, DataID: dataID})
}

// PeekMin returns the global minimum without removing it.
func (q *SegTree) PeekMin() Item {
	top := q.tree[q.rootIndex()]
	if top.DataID == NoData {
		return sentinelItem()
	}
	return top
}

// DeleteMin removes the global minimum.
func (q *SegTree) DeleteMin() {
	top := q.PeekMin()
	if top.DataID == NoData {
		return
	}
	q.present[top.DataID] = false
	q.setLeaf(top.DataID, sentinelItem())
}

// IsEmpty reports whether the queue holds no items.
func (q *SegTree) IsEmpty() bool {
	return q.PeekMin().DataID == NoData
}
