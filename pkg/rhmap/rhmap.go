package rhmap

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/scottcagno/robinhood/pkg/hash"
)

// Pair is a key value pair used to build a Map from a literal list
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// Iterator is the callback used by Range. Returning false stops the range.
type Iterator[K comparable, V any] func(key K, value V) bool

// Map is a hash map that iterates in insertion order. The zero value is not
// usable, create one with New or NewWithHasher. A Map must not be copied by
// value, use Clone instead.
type Map[K comparable, V any] struct {
	opts     Options
	table    table[K, V]
	store    *store[K, V]
	rebuilds uint
}

// New returns an empty Map using the default hash function for K
func New[K comparable, V any](opts ...Option) *Map[K, V] {
	return NewWithHasher[K, V](nil, opts...)
}

// NewWithHasher returns an empty Map using the supplied hash function. If
// h is nil, the default hash function for K is used.
func NewWithHasher[K comparable, V any](h hash.Func[K], opts ...Option) *Map[K, V] {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return newMap[K, V](h, o)
}

func newMap[K comparable, V any](h hash.Func[K], o Options) *Map[K, V] {
	if h == nil {
		h = hash.Default[K]()
	}
	o.normalize()
	m := &Map[K, V]{
		opts:  o,
		table: table[K, V]{hash: h},
		store: newStore[K, V](),
	}
	m.Reserve(o.Capacity)
	return m
}

// Collect returns a Map holding every pair produced by seq. When a key
// repeats, the first value wins.
func Collect[K comparable, V any](seq iter.Seq2[K, V], opts ...Option) *Map[K, V] {
	m := New[K, V](opts...)
	m.InsertAll(seq)
	return m
}

// Of returns a Map holding the given pairs. When a key repeats, the first
// value wins.
func Of[K comparable, V any](pairs ...Pair[K, V]) *Map[K, V] {
	m := New[K, V](WithCapacity(len(pairs)))
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// Len returns the number of entries currently in the Map
func (m *Map[K, V]) Len() int {
	return m.store.count
}

// Empty reports whether the Map holds no entries
func (m *Map[K, V]) Empty() bool {
	return m.store.count == 0
}

// Hasher returns the hash function used by the Map
func (m *Map[K, V]) Hasher() hash.Func[K] {
	return m.table.hash
}

// Insert adds key with value if key is not already present, and reports
// whether it did. An existing value is never overwritten.
func (m *Map[K, V]) Insert(key K, value V) bool {
	_, inserted := m.insert(key, value)
	return inserted
}

// InsertAll inserts every pair produced by seq
func (m *Map[K, V]) InsertAll(seq iter.Seq2[K, V]) {
	for k, v := range seq {
		m.insert(k, v)
	}
}

// insert returns the entry for key, creating it when absent
func (m *Map[K, V]) insert(key K, value V) (*Entry[K, V], bool) {
	if i, ok := m.table.locate(key); ok {
		return m.table.slots[i].entry, false
	}
	m.Reserve(m.store.count + 1)
	e := m.store.pushBack(key, value)
	m.table.place(e)
	return e, true
}

// Erase removes key and reports whether it was present
func (m *Map[K, V]) Erase(key K) bool {
	i, ok := m.table.locate(key)
	if !ok {
		return false
	}
	e := m.table.slots[i].entry
	m.table.evict(i)
	m.store.remove(e)
	return true
}

// Find returns the entry for key, or nil if there is none
func (m *Map[K, V]) Find(key K) *Entry[K, V] {
	i, ok := m.table.locate(key)
	if !ok {
		return nil
	}
	return m.table.slots[i].entry
}

// Contains reports whether key is present
func (m *Map[K, V]) Contains(key K) bool {
	_, ok := m.table.locate(key)
	return ok
}

// Ref returns a pointer to the value for key, inserting the zero value
// first if key is absent. The pointer is valid until key is erased.
func (m *Map[K, V]) Ref(key K) *V {
	var zero V
	e, _ := m.insert(key, zero)
	return &e.Value
}

// At returns the value for key. If key is absent the error wraps
// ErrKeyNotFound.
func (m *Map[K, V]) At(key K) (V, error) {
	e := m.Find(key)
	if e == nil {
		var zero V
		return zero, errors.Wrapf(ErrKeyNotFound, "key %v", key)
	}
	return e.Value, nil
}

// Clear removes every entry. The table keeps its capacity.
func (m *Map[K, V]) Clear() {
	m.table.clearChains(m.store.front())
	m.store.reset()
}

// Reserve grows the table, if needed, so that n entries fit without
// another rebuild
func (m *Map[K, V]) Reserve(n int) {
	if n <= 0 {
		return
	}
	hi, need := bits.Mul(uint(n), m.opts.RebuildThreshold)
	if hi != 0 {
		panic(errors.Newf("rhmap: cannot reserve room for %d entries", n))
	}
	c := m.table.capacity()
	if need <= c {
		return
	}
	m.rebuild(m.opts.nextCapacity(c, need))
}

// rebuild re-places every entry into a fresh table of the given capacity
func (m *Map[K, V]) rebuild(capacity uint) {
	from := m.table.capacity()
	m.table.rebuild(capacity, m.store.front())
	m.rebuilds++
	m.opts.Logger.Debug("rebuilt probe table",
		zap.Uint("from", from),
		zap.Uint("to", capacity),
		zap.Int("entries", m.store.count))
}

// Clone returns an independent copy of the Map. The copy is built by
// inserting every entry into a freshly sized table.
func (m *Map[K, V]) Clone() *Map[K, V] {
	o := m.opts
	o.Capacity = m.Len()
	c := newMap[K, V](m.table.hash, o)
	for e := m.store.front(); e != nil; e = e.Next() {
		c.insert(e.key, e.Value)
	}
	return c
}

// Assign replaces the contents of m with a copy of src, including its hash
// function and options. Entries previously held by m are dropped.
func (m *Map[K, V]) Assign(src *Map[K, V]) {
	if m == src {
		return
	}
	m.Clear()
	m.table.hash = src.table.hash
	m.opts = src.opts
	m.Reserve(src.Len())
	for e := src.store.front(); e != nil; e = e.Next() {
		m.insert(e.key, e.Value)
	}
}

// Front returns the oldest entry, or nil if the Map is empty
func (m *Map[K, V]) Front() *Entry[K, V] {
	return m.store.front()
}

// Back returns the newest entry, or nil if the Map is empty
func (m *Map[K, V]) Back() *Entry[K, V] {
	return m.store.back()
}

// Range calls it for every entry in insertion order until it returns false.
// It is safe to erase any key, or to Clear the map, from within it; erased
// entries are not visited.
func (m *Map[K, V]) Range(it Iterator[K, V]) {
	m.store.walk(func(e *Entry[K, V]) bool {
		return it(e.key, e.Value)
	})
}

// All returns an iterator over every key value pair in insertion order
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.Range(yield)
	}
}

// Keys returns an iterator over every key in insertion order
func (m *Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.Range(func(key K, _ V) bool {
			return yield(key)
		})
	}
}

// Values returns an iterator over every value in insertion order
func (m *Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		m.Range(func(_ K, value V) bool {
			return yield(value)
		})
	}
}

// Cap returns the number of slots in the probe table
func (m *Map[K, V]) Cap() int {
	return int(m.table.capacity())
}

// LoadFactor returns the ratio of entries to slots
func (m *Map[K, V]) LoadFactor() float64 {
	if m.table.capacity() == 0 {
		return 0
	}
	return float64(m.store.count) / float64(m.table.capacity())
}

// MaxProbeDistance returns the highest distance from home of any entry
func (m *Map[K, V]) MaxProbeDistance() int {
	return int(m.table.maxDist())
}

// Rebuilds returns how many times the probe table has been rebuilt
func (m *Map[K, V]) Rebuilds() int {
	return int(m.rebuilds)
}

func (m *Map[K, V]) String() string {
	var sb strings.Builder
	sb.WriteString("map[")
	for e := m.store.front(); e != nil; e = e.Next() {
		if e != m.store.head.next {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%v", e.key, e.Value)
	}
	sb.WriteByte(']')
	return sb.String()
}
