// Package dispatch owns the in-process delivery queue and its single
// background worker. Delivery is best-effort and at-most-once: items are
// destroyed on dequeue and never re-enqueued, and a failed send to one
// recipient never affects the others.
package dispatch

import (
	"sync"

	"github.com/google/uuid"
)

// Item is one pending delivery: a rendered message bound to a recipient.
type Item struct {
	ID          string
	RecipientID string
	Text        string
}

// Queue is a FIFO of delivery items, safe for concurrent producers and a
// single consumer. Enqueue never blocks on network I/O or queue capacity.
type Queue struct {
	mu    sync.Mutex
	items []Item
	// wake nudges an idle worker; capacity 1 so producers never block.
	wake chan struct{}
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{
		wake: make(chan struct{}, 1),
	}
}

// EnqueueFanout pushes one item per recipient, preserving the iteration
// order of recipients, and returns immediately.
func (q *Queue) EnqueueFanout(recipients []string, text string) {
	if len(recipients) == 0 {
		return
	}

	q.mu.Lock()
	for _, r := range recipients {
		q.items = append(q.items, Item{
			ID:          uuid.New().String(),
			RecipientID: r,
			Text:        text,
		})
	}
	depth := len(q.items)
	q.mu.Unlock()

	ItemsEnqueuedTotal.Add(float64(len(recipients)))
	QueueDepth.Set(float64(depth))

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// Dequeue pops the oldest item. The boolean is false when the queue is empty.
func (q *Queue) Dequeue() (Item, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return Item{}, false
	}

	item := q.items[0]
	q.items = q.items[1:]
	QueueDepth.Set(float64(len(q.items)))
	return item, true
}

// Len returns the current queue depth.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
