package queue

import (
	"fmt"
	"sync"
)

// DefaultBufferSize is the default queue capacity.
const DefaultBufferSize = 1024

// InMemoryQueue implements a bounded in-memory queue.
type InMemoryQueue struct {
	lock  sync.Mutex
	items []interface{}
	size  int
}

// NewInMemoryQueue creates a new queue with the given capacity.
func NewInMemoryQueue(size int) *InMemoryQueue {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &InMemoryQueue{size: size}
}

// Enqueue adds an item to the end of the queue.
func (q *InMemoryQueue) Enqueue(item interface{}) error {
	q.lock.Lock()
	defer q.lock.Unlock()
	if len(q.items) >= q.size {
		return fmt.Errorf("queue is full (%d items)", q.size)
	}
	q.items = append(q.items, item)
	return nil
}

// ReadAllMessages drains and returns all pending items in arrival order.
func (q *InMemoryQueue) ReadAllMessages() ([]interface{}, error) {
	q.lock.Lock()
	defer q.lock.Unlock()
	items := q.items
	q.items = nil
	return items, nil
}

// Size returns the current number of pending items.
func (q *InMemoryQueue) Size() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.items)
}

// ClearQueue discards all pending items.
func (q *InMemoryQueue) ClearQueue() error {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.items = nil
	return nil
}
