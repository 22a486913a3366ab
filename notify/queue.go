package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/reactive/cell"
	apperrors "github.com/kbukum/reactive/errors"
	"github.com/kbukum/reactive/scheduler"
)

// Level classifies a notification message.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Message is a single queued notification.
type Message struct {
	ID    string `json:"id"`
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// DefaultCapacity bounds the queue when no explicit capacity is set.
const DefaultCapacity = 16

// Queue holds notifications in arrival order and evicts each one TTL
// after it was pushed. When the queue is full, the oldest message is
// evicted early to make room.
type Queue struct {
	ttl      time.Duration
	capacity int
	sched    scheduler.Scheduler
	out      *cell.Cell[[]Message]

	mu       sync.Mutex
	messages []Message
	timers   map[string]scheduler.Handle
	closed   bool
}

// Option configures a Queue.
type Option func(*Queue)

// WithScheduler replaces the default real-time scheduler.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(q *Queue) { q.sched = s }
}

// WithCapacity bounds the number of simultaneously queued messages.
func WithCapacity(n int) Option {
	return func(q *Queue) {
		if n > 0 {
			q.capacity = n
		}
	}
}

// NewQueue creates a queue whose messages live for ttl.
func NewQueue(ttl time.Duration, opts ...Option) *Queue {
	q := &Queue{
		ttl:      ttl,
		capacity: DefaultCapacity,
		sched:    scheduler.Real(),
		out:      cell.New([]Message(nil)),
		timers:   make(map[string]scheduler.Handle),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Push queues a message and arms its eviction timer. Fails once the
// queue is closed.
func (q *Queue) Push(level Level, text string) (Message, error) {
	msg := Message{
		ID:    uuid.NewString(),
		Level: level,
		Text:  text,
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return Message{}, apperrors.SourceDisposed("notification queue")
	}

	if len(q.messages) >= q.capacity {
		oldest := q.messages[0]
		q.removeLocked(oldest.ID)
	}

	q.messages = append(q.messages, msg)
	id := msg.ID
	q.timers[id] = q.sched.Schedule(func() { q.evict(id) }, q.ttl)
	q.mu.Unlock()

	q.publish()
	return msg, nil
}

// Dismiss removes a message before its TTL expires. Returns false if
// the ID is not queued.
func (q *Queue) Dismiss(id string) bool {
	q.mu.Lock()
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.publish()
	}
	return removed
}

// evict is the TTL timer callback for one message.
func (q *Queue) evict(id string) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	removed := q.removeLocked(id)
	q.mu.Unlock()

	if removed {
		q.publish()
	}
}

// removeLocked cancels the message's timer and drops it from the list.
func (q *Queue) removeLocked(id string) bool {
	if h, ok := q.timers[id]; ok {
		q.sched.Cancel(h)
		delete(q.timers, id)
	}
	for i, m := range q.messages {
		if m.ID == id {
			q.messages = append(q.messages[:i], q.messages[i+1:]...)
			return true
		}
	}
	return false
}

// publish writes the current snapshot to the reactive output.
func (q *Queue) publish() {
	q.out.Write(q.Messages())
}

// Messages returns a snapshot of queued messages in arrival order.
func (q *Queue) Messages() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot := make([]Message, len(q.messages))
	copy(snapshot, q.messages)
	return snapshot
}

// Len returns the number of queued messages.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Subscribe registers fn to receive the queue snapshot after every
// push, dismissal, and eviction.
func (q *Queue) Subscribe(fn func([]Message)) (cell.Unsubscribe, error) {
	return q.out.Subscribe(fn)
}

// Close cancels all pending evictions and rejects further pushes.
// Queued messages are dropped. Idempotent.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	for id, h := range q.timers {
		q.sched.Cancel(h)
		delete(q.timers, id)
	}
	q.messages = nil
	q.mu.Unlock()

	q.out.Dispose()
}
