// Package queue implements the bounded, concurrent producer/consumer
// queue the block-streaming pipeline uses to hand stream blocks
// between its reader, worker pool and writer goroutines, generalizing
// the push/pop/deactivate lifecycle the original streaming pipeline
// built its ConcurrentQueue around.
package queue

import (
	"sync"

	"github.com/itohio/rastershift/x/sirius"
)

// Queue is a bounded FIFO queue with an explicit active/inactive
// lifecycle: once Deactivate is called, Push stops accepting new
// items and CanPop/Pop drain whatever remains before reporting empty.
// A Queue is safe for concurrent use by multiple producers and
// consumers.
type Queue[T any] struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	notFull  *sync.Cond
	items    []T
	capacity int
	active   bool
}

// New returns an active queue that holds at most capacity items
// before Push blocks.
func New[T any](capacity int) *Queue[T] {
	q := &Queue[T]{
		items:    make([]T, 0, capacity),
		capacity: capacity,
		active:   true,
	}
	q.notEmpty = sync.NewCond(&q.mu)
	q.notFull = sync.NewCond(&q.mu)
	return q
}

// Push appends item to the queue, blocking while the queue is full.
// It returns sirius.ErrQueueInactive without enqueuing item if the
// queue has been deactivated.
func (q *Queue[T]) Push(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.active && len(q.items) >= q.capacity {
		q.notFull.Wait()
	}
	if !q.active {
		return sirius.ErrQueueInactive
	}
	q.items = append(q.items, item)
	q.notEmpty.Signal()
	return nil
}

// CanPop reports whether a subsequent Pop call can return an item:
// true while the queue holds items, or while it is still active and
// might receive more. It blocks until either condition is known.
func (q *Queue[T]) CanPop() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && q.active {
		q.notEmpty.Wait()
	}
	return len(q.items) > 0
}

// Pop removes and returns the oldest item. It returns
// sirius.ErrQueueInactive if the queue was empty and deactivated.
func (q *Queue[T]) Pop() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.items) == 0 && q.active {
		q.notEmpty.Wait()
	}
	if len(q.items) == 0 {
		var zero T
		return zero, sirius.ErrQueueInactive
	}
	item := q.items[0]
	q.items = q.items[1:]
	q.notFull.Signal()
	return item, nil
}

// IsActive reports whether the queue still accepts new pushes.
func (q *Queue[T]) IsActive() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.active
}

// Deactivate stops the queue from accepting new pushes and wakes any
// goroutine blocked in Push, CanPop or Pop. Items already queued may
// still be drained by Pop.
func (q *Queue[T]) Deactivate() {
	q.mu.Lock()
	q.active = false
	q.mu.Unlock()
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}

// DeactivateAndClear deactivates the queue and discards any items
// still buffered, used when a downstream failure means the remaining
// items will never be consumed.
func (q *Queue[T]) DeactivateAndClear() {
	q.mu.Lock()
	q.active = false
	q.items = nil
	q.mu.Unlock()
	q.notEmpty.Broadcast()
	q.notFull.Broadcast()
}
