package queue

import "container/heap"

// itemHeap is a container/heap.Interface over Item, ordered by Item.Key
// then Item.DataID.
type itemHeap []Item

func (h itemHeap) Len() int            { return len(h) }
func (h itemHeap) Less(i, j int) bool  { return less(h[i], h[j]) }
func (h itemHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *itemHeap) Push(x any)         { *h = append(*h, x.(Item)) }
func (h *itemHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

// Lazy is the binary heap with lazy deletion: every insert and
// decrease-key pushes a fresh heap entry, and stale or tombstoned
// entries are skipped lazily at delete time. Memory grows with the
// number of inserts and decrease-keys, not with the live set size, so
// it is best suited to searches where items are rarely re-inserted.
type Lazy struct {
	h       itemHeap
	keys    []uint32
	deleted []bool
}

// NewLazy creates a Lazy queue sized for data_id values in [0, n).
func NewLazy(n uint32) *Lazy {
	return &Lazy{
		keys:    make([]uint32, n),
		deleted: make([]bool, n),
	}
}

func (q *Lazy) skipStale() {
	for len(q.h) > 0 {
		top := q.h[0]
		if q.deleted[top.DataID] || top.Key != q.keys[top.DataID] {
			heap.Pop(&q.h)
			continue
		}
		break
	}
}

// Insert adds (key, dataID); dataID must not currently be enqueued.
func (q *Lazy) Insert(key uint32, dataID uint32) {
	q.keys[dataID] = key
	q.deleted[dataID] = false
	heap.Push(&q.h, Item{Key: key, DataID: dataID})
}

// DecreaseKey lowers dataID's key; the stale entry at oldKey is left in
// place and skipped lazily.
func (q *Lazy) DecreaseKey(oldKey, dataID, newKey uint32) {
	q.Insert(newKey, dataID)
}

// PeekMin returns the current minimum without removing it.
func (q *Lazy) PeekMin() Item {
	q.skipStale()
	if len(q.h) == 0 {
		return Item{Key: NoData, DataID: NoData}
	}
	return q.h[0]
}

// DeleteMin removes the current minimum.
func (q *Lazy) DeleteMin() {
	q.skipStale()
	if len(q.h) == 0 {
		return
	}
	q.deleted[q.h[0].DataID] = true
	heap.Pop(&q.h)
	q.skipStale()
}

// IsEmpty reports whether any live item remains.
func (q *Lazy) IsEmpty() bool {
	q.skipStale()
	return len(q.h) == 0
}
