package persist

import (
	"encoding/json"

	"github.com/kbukum/reactive/cell"
	apperrors "github.com/kbukum/reactive/errors"
	"github.com/kbukum/reactive/logger"
)

// Cell is a reactive cell mirrored to one key of a Store. Writes are
// serialized to the store before observers see them; construction
// hydrates from the store when the key exists.
type Cell[T any] struct {
	store Store
	key   string
	inner *cell.Cell[T]
}

// NewCell hydrates a cell from store[key], falling back to initial when
// the key is absent. A stored payload that no longer unmarshals into T
// is discarded in favor of initial rather than failing construction.
func NewCell[T any](store Store, key string, initial T) (*Cell[T], error) {
	value := initial

	data, found, err := store.Load(key)
	if err != nil {
		return nil, apperrors.Storage(err).WithDetail("key", key)
	}
	if found {
		if err := json.Unmarshal(data, &value); err != nil {
			logger.Warn("discarding unreadable stored value",
				logger.Fields("key", key, logger.FieldError, err.Error()))
			value = initial
		}
	}

	return &Cell[T]{
		store: store,
		key:   key,
		inner: cell.New(value),
	}, nil
}

// Write mirrors v to the store, then updates the cell and notifies
// observers. If the store write fails, the in-memory value is left
// untouched and observers are not notified.
func (p *Cell[T]) Write(v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.InvalidInput("value", "not serializable").WithCause(err)
	}
	if err := p.store.Save(p.key, data); err != nil {
		return apperrors.Storage(err).WithDetail("key", p.key)
	}
	p.inner.Write(v)
	return nil
}

// Read returns the current value.
func (p *Cell[T]) Read() T {
	return p.inner.Read()
}

// Subscribe registers fn to be called on every successful write.
func (p *Cell[T]) Subscribe(fn func(T)) (cell.Unsubscribe, error) {
	return p.inner.Subscribe(fn)
}

// Key returns the store key this cell mirrors to.
func (p *Cell[T]) Key() string {
	return p.key
}

// Clear removes the mirrored key from the store. The in-memory value is
// unchanged.
func (p *Cell[T]) Clear() error {
	if err := p.store.Delete(p.key); err != nil {
		return apperrors.Storage(err).WithDetail("key", p.key)
	}
	return nil
}

// Dispose makes the cell inert. The stored value is kept for the next
// hydration.
func (p *Cell[T]) Dispose() {
	p.inner.Dispose()
}

var _ cell.Source[int] = (*Cell[int])(nil)
