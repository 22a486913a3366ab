package cell

import (
	"sync"

	apperrors "github.com/kbukum/reactive/errors"
)

// Derived is a read-only cell computed from a source through a pure
// transform. It updates synchronously whenever the source is written.
type Derived[S, T any] struct {
	out *Cell[T]

	mu       sync.Mutex
	unsub    Unsubscribe
	disposed bool
}

// Derive creates a derived cell over source. The output is seeded with
// fn applied to the source's current value; every subsequent source
// write recomputes it synchronously. Fails with an INVALID_SOURCE error
// if source is already disposed.
func Derive[S, T any](source Source[S], fn func(S) T) (*Derived[S, T], error) {
	d := &Derived[S, T]{
		out: New(fn(source.Read())),
	}

	unsub, err := source.Subscribe(func(v S) {
		d.out.Write(fn(v))
	})
	if err != nil {
		return nil, apperrors.InvalidSource(err)
	}
	d.unsub = unsub
	return d, nil
}

// Read returns the current derived value.
func (d *Derived[S, T]) Read() T {
	return d.out.Read()
}

// Subscribe registers fn as an observer of the derived value.
func (d *Derived[S, T]) Subscribe(fn func(T)) (Unsubscribe, error) {
	return d.out.Subscribe(fn)
}

// Dispose detaches from the source. The last derived value stays
// readable, but no further updates occur. Idempotent.
func (d *Derived[S, T]) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.disposed = true
	if d.unsub != nil {
		d.unsub()
	}
}
