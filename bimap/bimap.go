// Package bimap is a two-way map used to translate between protocol values and
// their textual names
package bimap

import (
	"sync"
)

// BiMap holds a forward and an inverse map kept in sync
type BiMap[K comparable, V comparable] struct {
	s         sync.RWMutex
	immutable bool
	forward   map[K]V
	inverse   map[V]K
}

// New returns a BiMap loaded with the given pairs, or an empty one if forward is nil
func New[K comparable, V comparable](forward map[K]V) *BiMap[K, V] {
	b := &BiMap[K, V]{
		forward: make(map[K]V, len(forward)),
		inverse: make(map[V]K, len(forward)),
	}
	for k, v := range forward {
		b.forward[k] = v
		b.inverse[v] = k
	}
	return b
}

// Insert puts a key and value pair. Panics if the map has been made immutable
func (b *BiMap[K, V]) Insert(k K, v V) {
	b.s.Lock()
	defer b.s.Unlock()
	if b.immutable {
		panic("Cannot modify immutable map")
	}
	if old, ok := b.forward[k]; ok {
		delete(b.inverse, old)
	}
	if old, ok := b.inverse[v]; ok {
		delete(b.forward, old)
	}
	b.forward[k] = v
	b.inverse[v] = k
}

func (b *BiMap[K, V]) Exists(k K) bool {
	b.s.RLock()
	defer b.s.RUnlock()
	_, ok := b.forward[k]
	return ok
}

func (b *BiMap[K, V]) ExistsInverse(v V) bool {
	b.s.RLock()
	defer b.s.RUnlock()
	_, ok := b.inverse[v]
	return ok
}

// Get returns the value for k
func (b *BiMap[K, V]) Get(k K) (V, bool) {
	b.s.RLock()
	defer b.s.RUnlock()
	v, ok := b.forward[k]
	return v, ok
}

// GetInverse returns the key for v
func (b *BiMap[K, V]) GetInverse(v V) (K, bool) {
	b.s.RLock()
	defer b.s.RUnlock()
	k, ok := b.inverse[v]
	return k, ok
}

func (b *BiMap[K, V]) Delete(k K) {
	b.s.Lock()
	defer b.s.Unlock()
	if b.immutable {
		panic("Cannot modify immutable map")
	}
	v, ok := b.forward[k]
	if !ok {
		return
	}
	delete(b.forward, k)
	delete(b.inverse, v)
}

func (b *BiMap[K, V]) DeleteInverse(v V) {
	b.s.Lock()
	defer b.s.Unlock()
	if b.immutable {
		panic("Cannot modify immutable map")
	}
	k, ok := b.inverse[v]
	if !ok {
		return
	}
	delete(b.inverse, v)
	delete(b.forward, k)
}

func (b *BiMap[K, V]) Size() int {
	b.s.RLock()
	defer b.s.RUnlock()
	return len(b.forward)
}

// MakeImmutable freezes the map. Further changes panic
func (b *BiMap[K, V]) MakeImmutable() *BiMap[K, V] {
	b.s.Lock()
	defer b.s.Unlock()
	b.immutable = true
	return b
}

// Keys returns the forward keys in no particular order
func (b *BiMap[K, V]) Keys() []K {
	b.s.RLock()
	defer b.s.RUnlock()
	keys := make([]K, 0, len(b.forward))
	for k := range b.forward {
		keys = append(keys, k)
	}
	return keys
}

// GetForwardMap returns a copy of the forward map
func (b *BiMap[K, V]) GetForwardMap() map[K]V {
	b.s.RLock()
	defer b.s.RUnlock()
	m := make(map[K]V, len(b.forward))
	for k, v := range b.forward {
		m[k] = v
	}
	return m
}

// GetInverseMap returns a copy of the inverse map
func (b *BiMap[K, V]) GetInverseMap() map[V]K {
	b.s.RLock()
	defer b.s.RUnlock()
	m := make(map[V]K, len(b.inverse))
	for v, k := range b.inverse {
		m[v] = k
	}
	return m
}
