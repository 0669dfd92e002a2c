package pool

import "bytes"

// Resettable is implemented by objects that can be cleared before reuse.
type Resettable interface {
	Reset()
}

// Pool is a bounded free list of reusable objects.
type Pool[T Resettable] struct {
	items chan T
	newFn func() T
}

// New creates a Pool holding at most capacity idle objects; newFn builds one when the pool is empty.
func New[T Resettable](capacity int, newFn func() T) *Pool[T] {
	return &Pool[T]{
		items: make(chan T, capacity),
		newFn: newFn,
	}
}

// Get returns an idle object or a fresh one from newFn.
func (p *Pool[T]) Get() T {
	select {
	case item := <-p.items:
		return item
	default:
		return p.newFn()
	}
}

// Put resets item and keeps it for reuse; it is dropped when the pool is full.
func (p *Pool[T]) Put(item T) {
	item.Reset()

	select {
	case p.items <- item:
	default:
	}
}

// Len reports the number of idle objects.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// NewBufferPool returns a pool of byte buffers for encoding responses.
func NewBufferPool(capacity int) *Pool[*bytes.Buffer] {
	return New(capacity, func() *bytes.Buffer {
		return new(bytes.Buffer)
	})
}
