// Package orderedmap provides a generic map that remembers insertion order.
package orderedmap

import (
	"container/list"
	"iter"
)

// OrderedMap stores key-value pairs in insertion order. Overwriting a key keeps its
// original position. Not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	store map[K]*list.Element
	keys  *list.List
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// New creates an empty OrderedMap
func New[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		store: map[K]*list.Element{},
		keys:  list.New(),
	}
}

// Set stores val under key. An existing key keeps its position.
func (o *OrderedMap[K, V]) Set(key K, val V) {
	if e, exists := o.store[key]; exists {
		e.Value = entry[K, V]{key: key, value: val}
		return
	}

	o.store[key] = o.keys.PushBack(entry[K, V]{key: key, value: val})
}

// Get returns the value associated with key.
// If the key doesn't exist, the second return value will be false.
func (o *OrderedMap[K, V]) Get(key K) (V, bool) {
	e, exists := o.store[key]
	if !exists {
		return *new(V), false
	}

	return e.Value.(entry[K, V]).value, true
}

// Has reports whether key is present
func (o *OrderedMap[K, V]) Has(key K) bool {
	_, exists := o.store[key]
	return exists
}

// Delete removes key and its value.
func (o *OrderedMap[K, V]) Delete(key K) {
	e, exists := o.store[key]
	if !exists {
		return
	}

	o.keys.Remove(e)
	delete(o.store, key)
}

// Len returns the number of keys
func (o *OrderedMap[K, V]) Len() int {
	if o == nil {
		return 0
	}

	return o.keys.Len()
}

// All iterates over the pairs from oldest to newest.
func (o *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if o == nil {
			return
		}
		for e := o.keys.Front(); e != nil; e = e.Next() {
			kv := e.Value.(entry[K, V])
			if !yield(kv.key, kv.value) {
				return
			}
		}
	}
}

// Backward iterates over the pairs from newest to oldest.
func (o *OrderedMap[K, V]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if o == nil {
			return
		}
		for e := o.keys.Back(); e != nil; e = e.Prev() {
			kv := e.Value.(entry[K, V])
			if !yield(kv.key, kv.value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order
func (o *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}

	return keys
}

// Values returns the values in insertion order
func (o *OrderedMap[K, V]) Values() []V {
	values := make([]V, 0, o.Len())
	for _, v := range o.All() {
		values = append(values, v)
	}

	return values
}

// Clone returns a shallow copy preserving order.
func (o *OrderedMap[K, V]) Clone() *OrderedMap[K, V] {
	c := New[K, V]()
	for k, v := range o.All() {
		c.Set(k, v)
	}

	return c
}
