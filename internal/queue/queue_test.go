package queue

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// newAll builds one instance of every queue variant sized for n
// data_ids, so a single test body can assert the shared contract
// across all of them.
func newAll(n uint32) map[string]Interface {
	return map[string]Interface{
		"set":     NewSet(),
		"lazy":    NewLazy(n),
		"fast":    NewFast(n),
		"dary2":   NewDAry(2, n),
		"dary4":   NewDAry(4, n),
		"fib":     NewFib(n),
		"segtree": NewSegTree(2, n),
	}
}

func TestQueueVariants_EmptyIsEmpty(t *testing.T) {
	for name, q := range newAll(8) {
		require.True(t, q.IsEmpty(), name)
		require.Equal(t, uint32(NoData), q.PeekMin().DataID, name)
	}
}

func TestQueueVariants_InsertAndDrainInOrder(t *testing.T) {
	for name, q := range newAll(6) {
		q.Insert(30, 0)
		q.Insert(10, 1)
		q.Insert(20, 2)
		q.Insert(10, 3)

		var order []uint32
		for !q.IsEmpty() {
			order = append(order, q.PeekMin().DataID)
			q.DeleteMin()
		}
		// ties between equal keys break by ascending data_id.
		require.Equal(t, []uint32{1, 3, 2, 0}, order, name)
	}
}

func TestQueueVariants_DecreaseKeyReordersMin(t *testing.T) {
	for name, q := range newAll(4) {
		q.Insert(100, 0)
		q.Insert(200, 1)
		q.Insert(300, 2)

		q.DecreaseKey(300, 2, 5)
		require.Equal(t, Item{Key: 5, DataID: 2}, q.PeekMin(), name)

		q.DeleteMin()
		require.Equal(t, Item{Key: 100, DataID: 0}, q.PeekMin(), name)
	}
}

func TestQueueVariants_RandomizedAgainstModel(t *testing.T) {
	const n = 64
	rng := rand.New(rand.NewSource(1))

	for name, q := range newAll(n) {
		model := map[uint32]uint32{} // dataID -> key, mirrors the queue contents
		// Deleted ids are never re-inserted: the fast variant forbids
		// re-insertion within one generation, and the shared sequence
		// must stay within the strictest variant's contract.
		retired := map[uint32]bool{}

		insert := func(key, id uint32) {
			q.Insert(key, id)
			model[id] = key
		}
		decrease := func(id, newKey uint32) {
			old := model[id]
			q.DecreaseKey(old, id, newKey)
			model[id] = newKey
		}
		popMin := func() (uint32, bool) {
			if len(model) == 0 {
				return 0, false
			}
			var best uint32
			found := false
			for id, key := range model {
				if !found || key < model[best] || (key == model[best] && id < best) {
					best = id
					found = true
				}
			}
			delete(model, best)
			return best, true
		}

		for step := 0; step < 500; step++ {
			switch {
			case len(model) == 0 || rng.Intn(3) != 0:
				id := uint32(rng.Intn(n))
				if _, ok := model[id]; ok {
					continue
				}
				if retired[id] {
					continue
				}
				insert(uint32(rng.Intn(1000)), id)
			case rng.Intn(2) == 0:
				var id uint32
				for k := range model {
					id = k
					break
				}
				if model[id] == 0 {
					continue
				}
				decrease(id, uint32(rng.Intn(int(model[id]))))
			default:
				wantID, ok := popMin()
				if !ok {
					continue
				}
				got := q.PeekMin()
				require.Equal(t, wantID, got.DataID, name)
				q.DeleteMin()
				retired[wantID] = true
			}
		}
	}
}

func TestFast_ClearResetsGeneration(t *testing.T) {
	q := NewFast(4)
	q.Insert(5, 0)
	q.Insert(1, 1)
	require.Equal(t, uint32(1), q.PeekMin().DataID)
	q.DeleteMin()
	q.Clear()
	require.True(t, q.IsEmpty())

	q.Insert(5, 0)
	require.Equal(t, uint32(0), q.PeekMin().DataID)
}
