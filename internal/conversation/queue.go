// Copyright (c) 2025 OmniEmployee Project
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"sync"

	"github.com/omniemployee/omnichat/internal/api"
)

// defaultQueueCapacity is the initial backing capacity. A turn rarely
// produces more than a few hundred events; the queue grows past this
// rather than blocking the producer.
const defaultQueueCapacity = 512

// QueuedEvent is one stream event tagged with the turn it belongs to.
// The tag travels with the event so the consumer can fence it on
// arrival, however late that is.
type QueuedEvent struct {
	Turn  Turn
	Event api.StreamEvent
}

// Queue carries decoded stream events from the network worker to the
// state owner in strict FIFO order. The producer side is the stream
// callback; the consumer side is the update loop, which drains events
// one at a time on a tick.
//
// The queue is unbounded: an abandoned stream keeps producing until
// its connection closes, and a blocked producer would keep the stream
// goroutine alive forever once the consumer stops draining it.
type Queue struct {
	mu     sync.Mutex
	events []QueuedEvent
}

// NewQueue creates an empty event queue.
func NewQueue() *Queue {
	return NewQueueSize(defaultQueueCapacity)
}

// NewQueueSize creates an event queue with the given initial capacity.
func NewQueueSize(size int) *Queue {
	return &Queue{events: make([]QueuedEvent, 0, size)}
}

// Push enqueues an event. Never blocks.
func (q *Queue) Push(turn Turn, event api.StreamEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, QueuedEvent{Turn: turn, Event: event})
}

// TryPop dequeues the oldest event without blocking. Returns false
// when the queue is empty.
func (q *Queue) TryPop() (QueuedEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.events) == 0 {
		return QueuedEvent{}, false
	}
	qe := q.events[0]
	q.events[0] = QueuedEvent{}
	q.events = q.events[1:]
	if len(q.events) == 0 {
		// Release the backing array once drained so a long turn's
		// buffer does not outlive the turn.
		q.events = nil
	}
	return qe, true
}

// Len returns the number of events waiting.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
