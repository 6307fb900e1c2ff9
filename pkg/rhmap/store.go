package rhmap

// Entry is a single key value pair held by a Map. A pointer to an Entry
// stays valid until that entry is erased or the map is cleared, no matter
// how many times the probe table is rebuilt in the meantime.
type Entry[K comparable, V any] struct {
	key        K
	Value      V
	prev, next *Entry[K, V]
	store      *store[K, V]
}

// Key returns the entry's key
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Next returns the entry inserted after e, or nil
func (e *Entry[K, V]) Next() *Entry[K, V] {
	if e.store == nil || e.next == e.store.tail {
		return nil
	}
	return e.next
}

// Prev returns the entry inserted before e, or nil
func (e *Entry[K, V]) Prev() *Entry[K, V] {
	if e.store == nil || e.prev == e.store.head {
		return nil
	}
	return e.prev
}

// store owns every entry of a Map and keeps them in insertion order
// (doubly linked, with head and tail sentinels)
type store[K comparable, V any] struct {
	head, tail *Entry[K, V]
	count      int
}

func newStore[K comparable, V any]() *store[K, V] {
	s := &store[K, V]{
		head: new(Entry[K, V]),
		tail: new(Entry[K, V]),
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	return s
}

// pushBack appends a new entry and returns it
func (s *store[K, V]) pushBack(key K, value V) *Entry[K, V] {
	e := &Entry[K, V]{
		key:   key,
		Value: value,
		prev:  s.tail.prev,
		next:  s.tail,
		store: s,
	}
	s.tail.prev.next = e
	s.tail.prev = e
	s.count++
	return e
}

// remove unlinks e and detaches it from the store. A detached entry keeps
// its next pointer so a walk that is sitting on it can still find its way
// back to the live entries.
func (s *store[K, V]) remove(e *Entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev, e.store = nil, nil
	s.count--
}

func (s *store[K, V]) front() *Entry[K, V] {
	if s.count == 0 {
		return nil
	}
	return s.head.next
}

// walk calls fn for every live entry from the front until fn returns
// false. Entries removed by fn are skipped by following the next pointers
// they kept. Entries appended by fn after the walk has passed the last live
// entry may not be visited.
func (s *store[K, V]) walk(fn func(e *Entry[K, V]) bool) {
	for e := s.head.next; e != nil && e != s.tail; e = e.next {
		if e.store == nil {
			continue
		}
		if !fn(e) {
			return
		}
	}
}

func (s *store[K, V]) back() *Entry[K, V] {
	if s.count == 0 {
		return nil
	}
	return s.tail.prev
}

// reset detaches every entry so stale handles stop iterating. The detached
// entries still chain forward to the tail, like remove.
func (s *store[K, V]) reset() {
	for e := s.head.next; e != s.tail; e = e.next {
		e.prev, e.store = nil, nil
	}
	s.head.next = s.tail
	s.tail.prev = s.head
	s.count = 0
}
