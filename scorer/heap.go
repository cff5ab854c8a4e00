package scorer

import (
	"container/heap"
	"slices"
)

// BoundedHeap keeps the best `capacity` items pushed into it. It is a
// min-heap on less, so the root is the worst retained item and is the one
// evicted when a better item arrives. Ties never evict, so among equal
// items the earliest pushed survive.
type BoundedHeap[T any] struct {
	impl     heapImpl[T]
	capacity int
}

type heapImpl[T any] struct {
	items []T
	less  func(a, b T) bool
}

func (h heapImpl[T]) Len() int           { return len(h.items) }
func (h heapImpl[T]) Less(i, j int) bool { return h.less(h.items[i], h.items[j]) }
func (h heapImpl[T]) Swap(i, j int)      { h.items[i], h.items[j] = h.items[j], h.items[i] }

func (h *heapImpl[T]) Push(x any) {
	h.items = append(h.items, x.(T))
}

func (h *heapImpl[T]) Pop() any {
	old := h.items
	n := len(old)
	x := old[n-1]
	var zero T
	old[n-1] = zero
	h.items = old[:n-1]
	return x
}

// NewBoundedHeap creates a heap retaining at most capacity items, ordered
// by less.
func NewBoundedHeap[T any](capacity int, less func(a, b T) bool) *BoundedHeap[T] {
	return &BoundedHeap[T]{
		impl:     heapImpl[T]{items: make([]T, 0, max(capacity, 0)), less: less},
		capacity: capacity,
	}
}

// Push offers an item and returns true if it was retained.
func (h *BoundedHeap[T]) Push(x T) bool {
	if h.capacity <= 0 {
		return false
	}
	if h.impl.Len() < h.capacity {
		heap.Push(&h.impl, x)
		return true
	}
	if !h.impl.less(h.impl.items[0], x) {
		return false
	}
	h.impl.items[0] = x
	heap.Fix(&h.impl, 0)
	return true
}

// Pop removes and returns the worst retained item.
func (h *BoundedHeap[T]) Pop() T {
	return heap.Pop(&h.impl).(T)
}

func (h *BoundedHeap[T]) Len() int {
	return h.impl.Len()
}

func (h *BoundedHeap[T]) Cap() int {
	return h.capacity
}

// Min returns the worst retained item without removing it.
func (h *BoundedHeap[T]) Min() T {
	return h.impl.items[0]
}

// All returns the retained items in the heap's internal order.
func (h *BoundedHeap[T]) All() []T {
	return h.impl.items
}

// Sorted returns a copy of the retained items, best first.
func (h *BoundedHeap[T]) Sorted() []T {
	out := slices.Clone(h.impl.items)
	slices.SortStableFunc(out, func(a, b T) int {
		switch {
		case h.impl.less(b, a):
			return -1
		case h.impl.less(a, b):
			return 1
		}
		return 0
	})
	return out
}
