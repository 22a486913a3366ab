package pipeline

import (
	"sync"
	"time"

	"github.com/kbukum/reactive/cell"
	apperrors "github.com/kbukum/reactive/errors"
	"github.com/kbukum/reactive/logger"
	"github.com/kbukum/reactive/scheduler"
)

// Debounced is a pipeline whose output updates only after its source
// has been quiet for the full delay. It exposes the same read/subscribe
// surface as a cell, plus Dispose.
type Debounced[T any] struct {
	out   *cell.Cell[T]
	delay time.Duration
	opts  options

	mu       sync.Mutex
	pending  scheduler.Handle
	gen      uint64
	unsub    cell.Unsubscribe
	disposed bool
}

// Debounce creates a debounced pipeline over source. The output is
// seeded with the source's current value — no delay applies to the
// initial value. Every source change cancels the pending timer (if
// any) and schedules a fresh one, so a burst of changes settles exactly
// once, with the last value, delay after the last change.
//
// A delay of zero settles on the scheduler's next tick, never
// synchronously. Negative delays and disposed sources are rejected
// synchronously; no partial pipeline is left behind.
func Debounce[T any](source cell.Source[T], delay time.Duration, opts ...Option) (*Debounced[T], error) {
	if delay < 0 {
		return nil, apperrors.InvalidDelay(delay)
	}

	d := &Debounced[T]{
		out:   cell.New(source.Read()),
		delay: delay,
		opts:  buildOptions("debounce", opts),
	}

	unsub, err := source.Subscribe(d.observe)
	if err != nil {
		return nil, apperrors.InvalidSource(err)
	}
	d.unsub = unsub

	if d.opts.log != nil {
		d.opts.log.Debug("pipeline created", logger.Fields(
			logger.FieldPipeline, d.opts.name,
			logger.FieldDelay, delay.Milliseconds(),
		))
	}
	return d, nil
}

// observe handles one source change: preempt the pending timer, then
// arm a new one carrying the observed value.
func (d *Debounced[T]) observe(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}

	if d.pending != nil {
		d.opts.sched.Cancel(d.pending)
		if d.opts.metrics != nil {
			d.opts.metrics.recordCancelled(d.opts.name)
		}
	}

	// The generation guards against a timer whose cancellation raced
	// its fire: a stale callback sees a newer gen and does nothing.
	d.gen++
	gen := d.gen
	d.pending = d.opts.sched.Schedule(func() { d.settle(gen, v) }, d.delay)
	if d.opts.metrics != nil {
		d.opts.metrics.recordScheduled(d.opts.name)
	}
}

// settle runs when a timer fires unpreempted: the carried value becomes
// the output value.
func (d *Debounced[T]) settle(gen uint64, v T) {
	d.mu.Lock()
	if d.disposed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	// Write outside the lock; observers may call back into the pipeline.
	d.out.Write(v)

	if d.opts.metrics != nil {
		d.opts.metrics.recordSettled(d.opts.name)
	}
	if d.opts.log != nil {
		d.opts.log.Debug("value settled", logger.Fields(
			logger.FieldPipeline, d.opts.name,
		))
	}
}

// Read returns the last settled value.
func (d *Debounced[T]) Read() T {
	return d.out.Read()
}

// Subscribe registers fn to be called on every settle.
func (d *Debounced[T]) Subscribe(fn func(T)) (cell.Unsubscribe, error) {
	return d.out.Subscribe(fn)
}

// Dispose detaches from the source and cancels any pending timer. The
// output value at dispose time stays readable but never mutates again,
// even if a timer fire races the disposal. Idempotent.
func (d *Debounced[T]) Dispose() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	d.disposed = true
	if d.pending != nil {
		d.opts.sched.Cancel(d.pending)
		d.pending = nil
	}
	d.gen++
	unsub := d.unsub
	d.unsub = nil
	d.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	if d.opts.log != nil {
		d.opts.log.Debug("pipeline disposed", logger.Fields(
			logger.FieldPipeline, d.opts.name,
		))
	}
}

var _ cell.Source[int] = (*Debounced[int])(nil)
