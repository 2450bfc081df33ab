package notify

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
)

// Notification is one transient user-facing message. Nothing here survives a
// restart.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"createdAt"`
}

// Queue holds pending notifications in insertion order and drops each one on
// its own timer. Subscribers get a copy of every push for live delivery.
type Queue struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []Notification
	timers map[string]*time.Timer
	subs   map[chan Notification]struct{}
}

// NewQueue builds a queue whose entries expire after ttl. The 4 second
// default matches the original toast timeout.
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = 4 * time.Second
	}

	return &Queue{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
		subs:   make(map[chan Notification]struct{}),
	}
}

// Push queues a message and schedules its removal. Slow subscribers are
// skipped rather than blocked on.
func (q *Queue) Push(message string, severity Severity) Notification {
	n := Notification{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now().UTC(),
	}

	q.mu.Lock()
	q.items = append(q.items, n)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() { q.expire(n.ID) })

	for ch := range q.subs {
		select {
		case ch <- n:
		default:
		}
	}
	q.mu.Unlock()

	return n
}

// List returns pending notifications in insertion order.
func (q *Queue) List() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Subscribe registers a live feed. The returned cancel func must be called
// once the consumer goes away.
func (q *Queue) Subscribe() (<-chan Notification, func()) {
	ch := make(chan Notification, 16)

	q.mu.Lock()
	q.subs[ch] = struct{}{}
	q.mu.Unlock()

	cancel := func() {
		q.mu.Lock()
		if _, ok := q.subs[ch]; ok {
			delete(q.subs, ch)
			close(ch)
		}
		q.mu.Unlock()
	}
	return ch, cancel
}

// Close stops all pending expiry timers. Used on shutdown and in tests.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	for ch := range q.subs {
		delete(q.subs, ch)
		close(ch)
	}
	q.items = nil
}

func (q *Queue) expire(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.timers, id)
	q.items = slices.DeleteFunc(q.items, func(n Notification) bool {
		return n.ID == id
	})
}
