package queue

// Fib is a Fibonacci heap: DecreaseKey is O(1) amortized by cutting the
// node free and splicing it into the root list, which is what makes
// this variant attractive for the contraction ordering's repeated
// priority updates on a changing neighborhood. DeleteMin is O(log n)
// amortized via the usual consolidate-by-degree pass.
type Fib struct {
	nodes []fibNode // indexed by dataID; nodes[i].inUse reports liveness
	min   int32     // dataID of the minimum root, or -1
	count int
}

type fibNode struct {
	key        uint32
	parent     int32
	child      int32
	left       int32
	right      int32
	degree     int32
	mark       bool
	inUse      bool
	inRootList bool
}

const fibNil = int32(-1)

// NewFib creates a Fibonacci heap sized for data_id values in [0, n).
func NewFib(n uint32) *Fib {
	nodes := make([]fibNode, n)
	for i := range nodes {
		nodes[i] = fibNode{parent: fibNil, child: fibNil, left: fibNil, right: fibNil}
	}
	return &Fib{nodes: nodes, min: fibNil}
}

func (q *Fib) addToRootList(id int32) {
	q.nodes[id].parent = fibNil
	q.nodes[id].inRootList = true
	if q.min == fibNil {
		q.nodes[id].left = id
		q.nodes[id].right = id
		q.min = id
		return
	}
	m := q.min
	r := q.nodes[m].right
	q.nodes[m].right = id
	q.nodes[id].left = m
	q.nodes[id].right = r
	q.nodes[r].left = id
	if q.nodes[id].key < q.nodes[q.min].key || (q.nodes[id].key == q.nodes[q.min].key && id < q.min) {
		q.min = id
	}
}

func (q *Fib) removeFromRootList(id int32) {
	l, r := q.nodes[id].left, q.nodes[id].right
	if l == id {
		// sole root
		return
	}
	q.nodes[l].right = r
	q.nodes[r].left = l
}

// Insert adds (key, dataID); dataID must not already be enqueued.
func (q *Fib) Insert(key uint32, dataID uint32) {
	id := int32(dataID)
	n := &q.nodes[id]
	n.key = key
	n.child = fibNil
	n.degree = 0
	n.mark = false
	n.inUse = true
	q.addToRootList(id)
	q.count++
}

func (q *Fib) cut(id, parent int32) {
	q.removeFromRootList(id) // safe even when id lives in a child ring; see linkRing below
	p := &q.nodes[parent]
	p.degree--
	if p.degree == 0 {
		p.child = fibNil
	} else if p.child == id {
		p.child = q.nodes[id].right
	}
	q.addToRootList(id)
	q.nodes[id].mark = false
}

func (q *Fib) cascadingCut(id int32) {
	p := q.nodes[id].parent
	if p == fibNil {
		return
	}
	if !q.nodes[id].mark {
		q.nodes[id].mark = true
		return
	}
	q.cut(id, p)
	q.cascadingCut(p)
}

// DecreaseKey lowers dataID's key, cutting it to the root list if the
// heap property would otherwise be violated.
func (q *Fib) DecreaseKey(oldKey, dataID, newKey uint32) {
	id := int32(dataID)
	q.nodes[id].key = newKey
	p := q.nodes[id].parent
	if p != fibNil && (newKey < q.nodes[p].key || (newKey == q.nodes[p].key && id < p)) {
		q.cut(id, p)
		q.cascadingCut(p)
	}
	if newKey < q.nodes[q.min].key || (newKey == q.nodes[q.min].key && id < q.min) {
		q.min = id
	}
}

// PeekMin returns the current minimum without removing it.
func (q *Fib) PeekMin() Item {
	if q.min == fibNil {
		return Item{Key: NoData, DataID: NoData}
	}
	return Item{Key: q.nodes[q.min].key, DataID: uint32(q.min)}
}

func (q *Fib) link(child, parent int32) {
	q.removeFromRootList(child)
	c := &q.nodes[child]
	c.parent = parent
	c.mark = false
	c.inRootList = false
	p := &q.nodes[parent]
	if p.child == fibNil {
		p.child = child
		c.left = child
		c.right = child
	} else {
		first := p.child
		r := q.nodes[first].right
		q.nodes[first].right = child
		c.left = first
		c.right = r
		q.nodes[r].left = child
	}
	p.degree++
}

// DeleteMin removes the current minimum and consolidates the root list.
func (q *Fib) DeleteMin() {
	z := q.min
	if z == fibNil {
		return
	}
	// move z's children into the root list
	if q.nodes[z].child != fibNil {
		first := q.nodes[z].child
		c := first
		for {
			next := q.nodes[c].right
			q.addToRootList(c)
			if next == first {
				break
			}
			c = next
		}
	}
	q.removeFromRootList(z)
	q.nodes[z].inUse = false
	q.count--
	if z == q.nodes[z].right && q.nodes[z].child == fibNil {
		q.min = fibNil
	} else {
		q.min = q.nodes[z].right
		q.consolidate()
	}
}

func (q *Fib) consolidate() {
	if q.min == fibNil {
		return
	}
	maxDegree := 64
	degreeTable := make([]int32, maxDegree)
	for i := range degreeTable {
		degreeTable[i] = fibNil
	}

	var roots []int32
	start := q.min
	cur := start
	for {
		roots = append(roots, cur)
		cur = q.nodes[cur].right
		if cur == start {
			break
		}
	}

	for _, x0 := range roots {
		x := x0
		if !q.nodes[x].inRootList {
			continue
		}
		d := int(q.nodes[x].degree)
		for d < maxDegree && degreeTable[d] != fibNil {
			y := degreeTable[d]
			if q.nodes[y].key < q.nodes[x].key || (q.nodes[y].key == q.nodes[x].key && y < x) {
				x, y = y, x
			}
			q.link(y, x)
			degreeTable[d] = fibNil
			d++
		}
		if d < maxDegree {
			degreeTable[d] = x
		}
	}

	q.min = fibNil
	for _, x := range degreeTable {
		if x == fibNil {
			continue
		}
		q.nodes[x].left = x
		q.nodes[x].right = x
		q.nodes[x].parent = fibNil
		q.nodes[x].inRootList = true
		if q.min == fibNil {
			q.min = x
			continue
		}
		m := q.min
		r := q.nodes[m].right
		q.nodes[m].right = x
		q.nodes[x].left = m
		q.nodes[x].right = r
		q.nodes[r].left = x
		if q.nodes[x].key < q.nodes[q.min].key || (q.nodes[x].key == q.nodes[q.min].key && x < q.min) {
			q.min = x
		}
	}
}

// IsEmpty reports whether the heap holds no items.
func (q *Fib) IsEmpty() bool {
	return q.min == fibNil
}
