// Package queue holds the buffers used between the simulation and its sinks.
package queue

import (
	"sync"
)

// Queue is an append-only buffer that is drained as a whole.
// It is safe for concurrent use.
type Queue[T any] struct {
	mu    sync.Mutex
	items []T
}

// New creates an empty queue with room for hint items.
func New[T any](hint int) *Queue[T] {
	if hint < 0 {
		hint = 0
	}
	return &Queue[T]{items: make([]T, 0, hint)}
}

// Push appends items in order.
func (q *Queue[T]) Push(items ...T) {
	q.mu.Lock()
	q.items = append(q.items, items...)
	q.mu.Unlock()
}

// PushFront puts items ahead of everything already buffered, keeping their
// relative order.
func (q *Queue[T]) PushFront(items ...T) {
	if len(items) == 0 {
		return
	}
	q.mu.Lock()
	merged := make([]T, 0, len(items)+len(q.items))
	merged = append(merged, items...)
	q.items = append(merged, q.items...)
	q.mu.Unlock()
}

// Len returns the number of buffered items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Empty returns true if nothing is buffered.
func (q *Queue[T]) Empty() bool {
	return q.Len() == 0
}

// Clear drops every buffered item.
func (q *Queue[T]) Clear() {
	q.mu.Lock()
	q.items = q.items[:0]
	q.mu.Unlock()
}

// Drain returns all items in push order and leaves the queue empty.
// The returned slice is owned by the caller.
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = make([]T, 0, cap(out))
	return out
}
