package queue

import "container/heap"

// Fast is the binary heap variant used by the Dijkstra kernels: each
// deleted item is stamped with the current value of a single generation
// counter, so Clear bumps the generation rather than resetting the
// per-item stamps, and
// reusing a Fast queue across many bounded searches (witness search,
// repeated point queries) costs O(1) between runs. An item cannot be
// inserted twice within the same generation.
type Fast struct {
	h           itemHeap
	deletedGen  []uint32
	generation  uint32
}

// NewFast creates a Fast queue sized for data_id values in [0, n).
func NewFast(n uint32) *Fast {
	return &Fast{
		deletedGen: make([]uint32, n),
		generation: 1,
	}
}

// Clear resets the queue for a new search in O(1).
func (q *Fast) Clear() {
	q.generation++
	q.h = q.h[:0]
}

func (q *Fast) skipStale() {
	for len(q.h) > 0 && q.deletedGen[q.h[0].DataID] == q.generation {
		heap.Pop(&q.h)
	}
}

// Insert adds (key, dataID). dataID must not already be enqueued in
// the current generation.
func (q *Fast) Insert(key uint32, dataID uint32) {
	heap.Push(&q.h, Item{Key: key, DataID: dataID})
}

// DecreaseKey pushes a fresh entry for dataID; the stale entry is left
// for skipStale to discard lazily.
func (q *Fast) DecreaseKey(oldKey, dataID, newKey uint32) {
	q.Insert(newKey, dataID)
}

// PeekMin returns the current minimum without removing it.
func (q *Fast) PeekMin() Item {
	q.skipStale()
	if len(q.h) == 0 {
		return Item{Key: NoData, DataID: NoData}
	}
	return q.h[0]
}

// DeleteMin removes the current minimum.
func (q *Fast) DeleteMin() {
	q.skipStale()
	if len(q.h) == 0 {
		return
	}
	q.deletedGen[q.h[0].DataID] = q.generation
	heap.Pop(&q.h)
	q.skipStale()
}

// IsEmpty reports whether any live item remains in this generation.
func (q *Fast) IsEmpty() bool {
	q.skipStale()
	return len(q.h) == 0
}
