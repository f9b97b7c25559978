// Package queue provides a generic FIFO with optional capacity bound.
package queue

// Q is a generic queue backed by a ring buffer. A bounded Q evicts its oldest item
// when an Enqueue would exceed the capacity.
type Q[T any] struct {
	items    []T
	head     int
	size     int
	capacity int
}

// New creates an unbounded Q
func New[T any]() *Q[T] {
	return &Q[T]{}
}

// NewBounded creates a Q holding at most capacity items. A capacity below 1 means unbounded.
func NewBounded[T any](capacity int) *Q[T] {
	if capacity < 1 {
		return New[T]()
	}

	return &Q[T]{items: make([]T, capacity), capacity: capacity}
}

// Enqueue adds an item to the back of the queue. It returns the evicted item, if any.
func (q *Q[T]) Enqueue(item T) (evicted T, ok bool) {
	if q.capacity > 0 && q.size == q.capacity {
		evicted, ok = q.items[q.head], true
		q.items[q.head] = item
		q.head = (q.head + 1) % q.capacity
		return evicted, ok
	}

	if q.size == len(q.items) {
		q.grow()
	}
	q.items[(q.head+q.size)%len(q.items)] = item
	q.size++

	return evicted, false
}

// Dequeue removes and returns the front item
func (q *Q[T]) Dequeue() (T, bool) {
	var zero T
	if q.size == 0 {
		return zero, false
	}

	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.size--

	return item, true
}

// Back returns the most recently enqueued item
func (q *Q[T]) Back() (T, bool) {
	return q.At(q.size - 1)
}

// Len returns the number of items in the Q
func (q *Q[T]) Len() int {
	return q.size
}

// Cap returns the capacity bound, 0 when unbounded
func (q *Q[T]) Cap() int {
	return q.capacity
}

// At returns the item at index, 0 being the oldest
func (q *Q[T]) At(index int) (T, bool) {
	if index < 0 || index >= q.size {
		var zero T
		return zero, false
	}

	return q.items[(q.head+index)%len(q.items)], true
}

// Slice copies the items, oldest first
func (q *Q[T]) Slice() []T {
	out := make([]T, q.size)
	for i := range out {
		out[i], _ = q.At(i)
	}

	return out
}

// Clear removes all items
func (q *Q[T]) Clear() {
	var zero T
	for i := range q.items {
		q.items[i] = zero
	}
	q.head, q.size = 0, 0
}

type IterationCallback[T any] func(item T, index int) (keepGoing bool)

// ForEach iterates over the items from front to back. Returning false stops early.
func (q *Q[T]) ForEach(callback IterationCallback[T]) {
	for i := 0; i < q.size; i++ {
		item, _ := q.At(i)
		if !callback(item, i) {
			break
		}
	}
}

// ForEachReverse iterates over the items from back to front.
func (q *Q[T]) ForEachReverse(callback IterationCallback[T]) {
	for i := q.size - 1; i >= 0; i-- {
		item, _ := q.At(i)
		if !callback(item, i) {
			break
		}
	}
}

func (q *Q[T]) grow() {
	n := len(q.items) * 2
	if n == 0 {
		n = 8
	}

	items := make([]T, n)
	for i := 0; i < q.size; i++ {
		items[i] = q.items[(q.head+i)%len(q.items)]
	}
	q.items, q.head = items, 0
}
