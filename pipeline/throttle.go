package pipeline

import (
	"sync"
	"time"

	"github.com/kbukum/reactive/cell"
	apperrors "github.com/kbukum/reactive/errors"
	"github.com/kbukum/reactive/scheduler"
)

// Throttled is a pipeline whose output takes the first source value of
// each interval window. Later values inside the same window are
// dropped, not deferred.
type Throttled[T any] struct {
	out      *cell.Cell[T]
	interval time.Duration
	opts     options

	mu       sync.Mutex
	inWindow bool
	window   scheduler.Handle
	unsub    cell.Unsubscribe
	disposed bool
}

// Throttle creates a throttled pipeline over source. The output is
// seeded with the source's current value. The first change opens an
// interval window and passes through immediately; changes inside an
// open window are dropped. An interval of zero passes every change
// through.
func Throttle[T any](source cell.Source[T], interval time.Duration, opts ...Option) (*Throttled[T], error) {
	if interval < 0 {
		return nil, apperrors.InvalidDelay(interval)
	}

	t := &Throttled[T]{
		out:      cell.New(source.Read()),
		interval: interval,
		opts:     buildOptions("throttle", opts),
	}

	unsub, err := source.Subscribe(t.observe)
	if err != nil {
		return nil, apperrors.InvalidSource(err)
	}
	t.unsub = unsub
	return t, nil
}

func (t *Throttled[T]) observe(v T) {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	if t.inWindow {
		t.mu.Unlock()
		if t.opts.metrics != nil {
			t.opts.metrics.recordDropped(t.opts.name)
		}
		return
	}
	if t.interval > 0 {
		t.inWindow = true
		t.window = t.opts.sched.Schedule(t.closeWindow, t.interval)
		if t.opts.metrics != nil {
			t.opts.metrics.recordScheduled(t.opts.name)
		}
	}
	t.mu.Unlock()

	t.out.Write(v)
	if t.opts.metrics != nil {
		t.opts.metrics.recordSettled(t.opts.name)
	}
}

func (t *Throttled[T]) closeWindow() {
	t.mu.Lock()
	t.inWindow = false
	t.window = nil
	t.mu.Unlock()
}

// Read returns the last emitted value.
func (t *Throttled[T]) Read() T {
	return t.out.Read()
}

// Subscribe registers fn to be called on every emitted value.
func (t *Throttled[T]) Subscribe(fn func(T)) (cell.Unsubscribe, error) {
	return t.out.Subscribe(fn)
}

// Dispose detaches from the source and cancels the window timer.
// Idempotent.
func (t *Throttled[T]) Dispose() {
	t.mu.Lock()
	if t.disposed {
		t.mu.Unlock()
		return
	}
	t.disposed = true
	if t.window != nil {
		t.opts.sched.Cancel(t.window)
		t.window = nil
	}
	unsub := t.unsub
	t.unsub = nil
	t.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

var _ cell.Source[int] = (*Throttled[int])(nil)
