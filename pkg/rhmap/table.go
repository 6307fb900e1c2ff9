package rhmap

import "github.com/scottcagno/robinhood/pkg/hash"

// slot represents a single cell in the probe table. A slot is occupied
// when entry is not nil, and dist is only meaningful while it is.
type slot[K comparable, V any] struct {
	dist  uint
	entry *Entry[K, V]
}

// table is the open addressing half of a Map. It never owns entries, it
// only points into the store.
type table[K comparable, V any] struct {
	hash  hash.Func[K]
	slots []slot[K, V]
}

func (t *table[K, V]) capacity() uint {
	return uint(len(t.slots))
}

// home returns the initial slot index for key
func (t *table[K, V]) home(key K) uint {
	return uint(t.hash(key) % uint64(len(t.slots)))
}

// next advances i by one slot, wrapping around at the end
func (t *table[K, V]) next(i uint) uint {
	i++
	if i == uint(len(t.slots)) {
		i = 0
	}
	return i
}

// place threads e into the table using robin hood insertion. If the key
// is already present the existing entry is returned and nothing changes.
// The caller must make sure there is at least one empty slot.
func (t *table[K, V]) place(e *Entry[K, V]) *Entry[K, V] {
	i := t.home(e.key)
	var dist uint
	for {
		s := &t.slots[i]
		// we found a spot, take it
		if s.entry == nil {
			s.dist, s.entry = dist, e
			return nil
		}
		if s.entry.key == e.key {
			return s.entry
		}
		// the occupant is closer to home than we are, so it gives up
		// the slot and continues probing in our place
		if s.dist < dist {
			s.dist, dist = dist, s.dist
			s.entry, e = e, s.entry
		}
		dist++
		i = t.next(i)
	}
}

// locate returns the slot index holding key. Probing stops at the first
// empty slot, or as soon as our distance exceeds the slot's distance,
// since key could not have been placed any further than that.
func (t *table[K, V]) locate(key K) (uint, bool) {
	if len(t.slots) == 0 {
		return 0, false
	}
	i := t.home(key)
	for dist := uint(0); dist < uint(len(t.slots)); dist++ {
		s := &t.slots[i]
		if s.entry == nil || dist > s.dist {
			return 0, false
		}
		if s.dist == dist && s.entry.key == key {
			return i, true
		}
		i = t.next(i)
	}
	return 0, false
}

// evict empties slot i and closes the gap by shifting the rest of the
// chain one slot backward
func (t *table[K, V]) evict(i uint) {
	t.slots[i] = slot[K, V]{}
	for j := t.next(i); t.slots[j].entry != nil && t.slots[j].dist > 0; j = t.next(j) {
		t.slots[i] = t.slots[j]
		t.slots[i].dist--
		t.slots[j] = slot[K, V]{}
		i = j
	}
}

// clearChains empties every slot reachable from the home slot of each
// entry starting at e. Chains are contiguous and end at an empty slot, so
// this visits only occupied slots instead of the whole table.
func (t *table[K, V]) clearChains(e *Entry[K, V]) {
	if len(t.slots) == 0 {
		return
	}
	for ; e != nil; e = e.Next() {
		i := t.home(e.key)
		for n := 0; n < len(t.slots) && t.slots[i].entry != nil; n++ {
			t.slots[i] = slot[K, V]{}
			i = t.next(i)
		}
	}
}

// rebuild replaces the slots with a fresh set of the given capacity and
// re-places every entry starting at e, in order. No entries are created.
func (t *table[K, V]) rebuild(capacity uint, e *Entry[K, V]) {
	t.slots = make([]slot[K, V], capacity)
	for ; e != nil; e = e.Next() {
		t.place(e)
	}
}

// maxDist returns the highest probe distance in the table
func (t *table[K, V]) maxDist() uint {
	var hdist uint
	for i := range t.slots {
		if t.slots[i].entry != nil && t.slots[i].dist > hdist {
			hdist = t.slots[i].dist
		}
	}
	return hdist
}
