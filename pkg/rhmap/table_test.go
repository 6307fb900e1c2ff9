package rhmap

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scottcagno/robinhood/pkg/hash"
)

// checkTable verifies the probe table against the store: every entry is
// reachable, distances match their home slot, chains are contiguous and
// distances never jump by more than one between neighbours.
func checkTable[K comparable, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()
	tb := &m.table
	c := tb.capacity()
	var occupied int
	for i := range tb.slots {
		s := tb.slots[i]
		if s.entry == nil {
			continue
		}
		occupied++
		home := tb.home(s.entry.key)
		require.Equal(t, (uint(i)+c-home)%c, s.dist, "slot %d has wrong distance", i)
		for j := home; j != uint(i); j = tb.next(j) {
			require.NotNil(t, tb.slots[j].entry, "chain for slot %d is broken at %d", i, j)
		}
		if nx := tb.slots[tb.next(uint(i))]; nx.entry != nil {
			require.LessOrEqual(t, nx.dist, s.dist+1, "slot %d breaks robin hood ordering", i)
		}
		require.Same(t, s.entry, m.Find(s.entry.key))
	}
	require.Equal(t, m.Len(), occupied)
	require.LessOrEqual(t, uint(m.Len())*m.opts.RebuildThreshold, c)
	for e := m.Front(); e != nil; e = e.Next() {
		_, ok := tb.locate(e.key)
		require.True(t, ok, "entry %v is not reachable from the table", e.key)
	}
}

func Test_table_place(t *testing.T) {
	s := newStore[string, int]()
	tb := table[string, int]{hash: hash.Constant[string](0), slots: make([]slot[string, int], 8)}
	a, b, c := s.pushBack("a", 1), s.pushBack("b", 2), s.pushBack("c", 3)
	require.Nil(t, tb.place(a))
	require.Nil(t, tb.place(b))
	require.Nil(t, tb.place(c))
	for i, e := range []*Entry[string, int]{a, b, c} {
		require.Same(t, e, tb.slots[i].entry)
		require.Equal(t, uint(i), tb.slots[i].dist)
	}
	dup := s.pushBack("b", 9)
	require.Same(t, b, tb.place(dup))
	require.Nil(t, tb.slots[3].entry)
}

func Test_table_placeDisplaces(t *testing.T) {
	homes := map[string]uint64{"a": 0, "b": 0, "c": 1, "d": 1}
	s := newStore[string, int]()
	tb := table[string, int]{
		hash:  func(k string) uint64 { return homes[k] },
		slots: make([]slot[string, int], 8),
	}
	for _, k := range []string{"a", "c", "b", "d"} {
		tb.place(s.pushBack(k, 0))
	}
	// b (dist 1) takes slot 1 from c (dist 0), which then lands behind it
	got := make([]string, 0, 4)
	for i := 0; i < 4; i++ {
		got = append(got, tb.slots[i].entry.key)
	}
	require.Equal(t, []string{"a", "b", "c", "d"}, got)
	require.Equal(t, uint(2), tb.slots[3].dist)
	require.Equal(t, uint(2), tb.maxDist())
}

func Test_table_locateStopsEarly(t *testing.T) {
	s := newStore[int, int]()
	tb := table[int, int]{hash: func(k int) uint64 { return uint64(k) }, slots: make([]slot[int, int], 16)}
	for k := 0; k < 4; k++ {
		tb.place(s.pushBack(k, k))
	}
	// key 17 has home 1, which holds key 1 at distance 0; at slot 2 we are
	// at distance 1 while key 2 sits at distance 0, so we give up there
	_, ok := tb.locate(17)
	require.False(t, ok)
	_, ok = tb.locate(3)
	require.True(t, ok)
}

func Test_table_evictShiftsBack(t *testing.T) {
	s := newStore[string, int]()
	tb := table[string, int]{hash: hash.Constant[string](6), slots: make([]slot[string, int], 8)}
	keys := []string{"a", "b", "c", "d"}
	for _, k := range keys {
		tb.place(s.pushBack(k, 0))
	}
	// chain wraps: a@6 b@7 c@0 d@1
	i, ok := tb.locate("b")
	require.True(t, ok)
	require.Equal(t, uint(7), i)
	tb.evict(i)
	require.Equal(t, "c", tb.slots[7].entry.key)
	require.Equal(t, uint(1), tb.slots[7].dist)
	require.Equal(t, "d", tb.slots[0].entry.key)
	require.Equal(t, uint(2), tb.slots[0].dist)
	require.Nil(t, tb.slots[1].entry)
	for _, k := range []string{"a", "c", "d"} {
		_, ok := tb.locate(k)
		require.True(t, ok, k)
	}
}

func Test_table_evictStopsAtHome(t *testing.T) {
	s := newStore[int, int]()
	tb := table[int, int]{hash: func(k int) uint64 { return uint64(k) }, slots: make([]slot[int, int], 8)}
	for _, k := range []int{2, 3, 11} {
		tb.place(s.pushBack(k, 0))
	}
	// 2@2 3@3 11@4; removing 2 leaves 3 in place since it sits at home
	i, _ := tb.locate(2)
	tb.evict(i)
	require.Nil(t, tb.slots[2].entry)
	require.Equal(t, 3, tb.slots[3].entry.key)
	require.Equal(t, 11, tb.slots[4].entry.key)
	require.Equal(t, uint(1), tb.slots[4].dist)
}

func Test_table_clearChains(t *testing.T) {
	m := New[int, int]()
	for i := 0; i < 100; i++ {
		m.Insert(i, i)
	}
	m.table.clearChains(m.store.front())
	for i := range m.table.slots {
		require.Nil(t, m.table.slots[i].entry)
	}
}

func Test_table_rebuildKeepsEntries(t *testing.T) {
	m := New[string, int]()
	for i, w := range words {
		m.Insert(w, i)
	}
	handles := make([]*Entry[string, int], 0, len(words))
	for _, w := range words {
		handles = append(handles, m.Find(w))
	}
	m.rebuild(uint(m.Cap()*4 + 1))
	checkTable(t, m)
	for i, w := range words {
		require.Same(t, handles[i], m.Find(w))
	}
}
