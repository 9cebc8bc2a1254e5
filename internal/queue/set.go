package queue

import "sort"

// Set is the set-based queue variant: every (key, data_id) pair is
// kept in a sorted slice. Insert and
// DecreaseKey are O(log n + n) due to the shift on insertion; it suits
// small instances rather than production-size graphs.
type Set struct {
	items []Item
}

// NewSet creates an empty set-based queue.
func NewSet() *Set {
	return &Set{}
}

func (s *Set) search(it Item) int {
	return sort.Search(len(s.items), func(i int) bool {
		return !less(s.items[i], it)
	})
}

// Insert adds (key, dataID); dataID must not already be enqueued.
func (s *Set) Insert(key uint32, dataID uint32) {
	it := Item{Key: key, DataID: dataID}
	i := s.search(it)
	s.items = append(s.items, Item{})
	copy(s.items[i+1:], s.items[i:])
	s.items[i] = it
}

// Remove deletes the (key, dataID) pair if present.
func (s *Set) Remove(key uint32, dataID uint32) {
	it := Item{Key: key, DataID: dataID}
	i := s.search(it)
	if i < len(s.items) && s.items[i] == it {
		s.items = append(s.items[:i], s.items[i+1:]...)
	}
}

// DecreaseKey moves dataID from oldKey to newKey.
func (s *Set) DecreaseKey(oldKey, dataID, newKey uint32) {
	s.Remove(oldKey, dataID)
	s.Insert(newKey, dataID)
}

// PeekMin returns the smallest item without removing it.
func (s *Set) PeekMin() Item {
	if len(s.items) == 0 {
		return Item{Key: NoData, DataID: NoData}
	}
	return s.items[0]
}

// DeleteMin removes the smallest item.
func (s *Set) DeleteMin() {
	if len(s.items) == 0 {
		return
	}
	s.items = s.items[1:]
}

// IsEmpty reports whether the queue holds no items.
func (s *Set) IsEmpty() bool {
	return len(s.items) == 0
}
