package queue

// DAry is a D-ary heap with explicit position tracking, so
// DecreaseKey can sift an existing entry in place instead of pushing a
// duplicate. D is fixed at construction; 4 is a reasonable default for
// cache-line locality on typical contraction and query workloads.
type DAry struct {
	d    int
	h    []Item
	pos  []int // dataID -> index in h, or -1 if absent
}

// NewDAry creates a D-ary heap with fan-out d, sized for data_id values
// in [0, n).
func NewDAry(d int, n uint32) *DAry {
	if d < 2 {
		d = 2
	}
	pos := make([]int, n)
	for i := range pos {
		pos[i] = -1
	}
	return &DAry{d: d, pos: pos}
}

func (q *DAry) parent(i int) int { return (i - 1) / q.d }
func (q *DAry) firstChild(i int) int { return i*q.d + 1 }

func (q *DAry) swap(i, j int) {
	q.h[i], q.h[j] = q.h[j], q.h[i]
	q.pos[q.h[i].DataID] = i
	q.pos[q.h[j].DataID] = j
}

func (q *DAry) siftUp(i int) {
	for i > 0 {
		p := q.parent(i)
		if !less(q.h[i], q.h[p]) {
			break
		}
		q.swap(i, p)
		i = p
	}
}

func (q *DAry) siftDown(i int) {
	n := len(q.h)
	for {
		first := q.firstChild(i)
		if first >= n {
			break
		}
		smallest := i
		last := first + q.d
		if last > n {
			last = n
		}
		for c := first; c < last; c++ {
			if less(q.h[c], q.h[smallest]) {
				smallest = c
			}
		}
		if smallest == i {
			break
		}
		q.swap(i, smallest)
		i = smallest
	}
}

// Insert adds (key, dataID); dataID must not already be enqueued.
func (q *DAry) Insert(key uint32, dataID uint32) {
	i := len(q.h)
	q.h = append(q.h, Item{Key: key, DataID: dataID})
	q.pos[dataID] = i
	q.siftUp(i)
}

// DecreaseKey lowers dataID's key in place.
func (q *DAry) DecreaseKey(oldKey, dataID, newKey uint32) {
	i := q.pos[dataID]
	q.h[i].Key = newKey
	q.siftUp(i)
}

// PeekMin returns the current minimum without removing it.
func (q *DAry) PeekMin() Item {
	if len(q.h) == 0 {
		return Item{Key: NoData, DataID: NoData}
	}
	return q.h[0]
}

// DeleteMin removes the current minimum.
func (q *DAry) DeleteMin() {
	n := len(q.h)
	if n == 0 {
		return
	}
	q.pos[q.h[0].DataID] = -1
	last := n - 1
	if last > 0 {
		q.h[0] = q.h[last]
		q.pos[q.h[0].DataID] = 0
	}
	q.h = q.h[:last]
	if last > 0 {
		q.siftDown(0)
	}
}

// IsEmpty reports whether the heap holds no items.
func (q *DAry) IsEmpty() bool {
	return len(q.h) == 0
}
