package scheduler

import (
	"sync"
	"time"
)

// NewManual creates a deterministic Scheduler for tests. Virtual time
// stands still until Advance is called; due callbacks then fire
// synchronously in deadline order.
func NewManual() *Manual {
	return &Manual{}
}

// Manual is a Scheduler whose clock only moves when Advance is called.
//
// Callbacks fired during Advance run synchronously on the calling
// goroutine and may schedule or cancel timers themselves; a callback
// scheduled within the advanced window fires in the same Advance call.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	deadline  time.Duration
	seq       uint64
	fn        func()
	cancelled bool
}

func (m *Manual) Schedule(fn func(), delay time.Duration) Handle {
	if delay < 0 {
		delay = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{
		deadline: m.now + delay,
		seq:      m.seq,
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) Cancel(h Handle) {
	t, ok := h.(*manualTimer)
	if !ok {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t.cancelled = true
}

// Advance moves virtual time forward by d. Every non-cancelled callback
// whose deadline falls within the window fires synchronously before
// Advance returns, in deadline order (FIFO among equal deadlines).
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		t := m.popDueLocked(target)
		if t == nil {
			break
		}
		if t.deadline > m.now {
			m.now = t.deadline
		}
		// Fire outside the lock so the callback can schedule or cancel.
		m.mu.Unlock()
		t.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Tick fires callbacks that are already due (zero-delay registrations)
// without moving time forward. Equivalent to Advance(0).
func (m *Manual) Tick() {
	m.Advance(0)
}

// Pending returns the number of scheduled, not-yet-fired callbacks.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, t := range m.timers {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Now returns the current virtual time as an offset from construction.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// popDueLocked removes and returns the earliest due timer at or before
// target, dropping cancelled entries along the way. Returns nil when
// nothing is due.
func (m *Manual) popDueLocked(target time.Duration) *manualTimer {
	best := -1
	kept := m.timers[:0]
	for _, t := range m.timers {
		if t.cancelled {
			continue
		}
		kept = append(kept, t)
		i := len(kept) - 1
		if t.deadline > target {
			continue
		}
		if best == -1 || earlier(kept[i], kept[best]) {
			best = i
		}
	}
	m.timers = kept

	if best == -1 {
		return nil
	}
	t := m.timers[best]
	m.timers = append(m.timers[:best], m.timers[best+1:]...)
	return t
}

func earlier(a, b *manualTimer) bool {
	if a.deadline != b.deadline {
		return a.deadline < b.deadline
	}
	return a.seq < b.seq
}
