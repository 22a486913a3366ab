package cell

import (
	"sync"

	apperrors "github.com/kbukum/reactive/errors"
)

// Unsubscribe removes the observer registered by the Subscribe call
// that returned it. Calling it more than once is a no-op.
type Unsubscribe func()

// Source is the read/subscribe contract consumed by derived cells and
// pipelines. *Cell, *Derived, and pipeline outputs all satisfy it.
type Source[T any] interface {
	// Read returns the current value.
	Read() T
	// Subscribe registers fn to be called synchronously on every write,
	// in subscription order. It fails once the source is disposed.
	Subscribe(fn func(T)) (Unsubscribe, error)
}

// Cell is a mutable holder of a value of type T. Observers registered
// with Subscribe are notified synchronously, in subscription order, on
// every Write — including writes of a value equal to the current one.
//
// Cell is safe for concurrent use, but notification is synchronous on
// the writing goroutine: observers run before Write returns.
type Cell[T any] struct {
	mu        sync.Mutex
	value     T
	observers []*observer[T]
	disposed  bool
}

type observer[T any] struct {
	fn      func(T)
	removed bool
}

// New creates a cell holding initial.
func New[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Read returns the current value. Reading a disposed cell returns the
// last value it held.
func (c *Cell[T]) Read() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Write stores v and notifies observers in subscription order.
// Writes to a disposed cell are dropped.
func (c *Cell[T]) Write(v T) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.value = v
	// Snapshot so observers can subscribe/unsubscribe reentrantly.
	active := make([]*observer[T], 0, len(c.observers))
	for _, o := range c.observers {
		if !o.removed {
			active = append(active, o)
		}
	}
	c.mu.Unlock()

	for _, o := range active {
		o.fn(v)
	}
}

// Subscribe registers fn as an observer. The returned Unsubscribe
// removes exactly that registration and is idempotent.
func (c *Cell[T]) Subscribe(fn func(T)) (Unsubscribe, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.disposed {
		return nil, apperrors.SourceDisposed("cell")
	}

	o := &observer[T]{fn: fn}
	c.observers = append(c.observers, o)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if o.removed {
			return
		}
		o.removed = true
		for i, cur := range c.observers {
			if cur == o {
				c.observers = append(c.observers[:i], c.observers[i+1:]...)
				break
			}
		}
	}, nil
}

// Dispose makes the cell inert: all observers are dropped, further
// writes are ignored, and new subscriptions fail. Idempotent.
func (c *Cell[T]) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.disposed = true
	for _, o := range c.observers {
		o.removed = true
	}
	c.observers = nil
}

// Disposed reports whether the cell has been disposed.
func (c *Cell[T]) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Observers returns the number of registered observers.
func (c *Cell[T]) Observers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.observers)
}
