package server

import (
	"encoding/json"

	"github.com/kbukum/reactive/cell"
	apperrors "github.com/kbukum/reactive/errors"
)

// ExposedCell is a type-erased view of a reactive cell for JSON access.
// Handlers depend on this interface so cells of any value type can be
// served from the same routes.
type ExposedCell interface {
	// Name returns the cell's registered name.
	Name() string
	// Value returns the cell's current value.
	Value() any
	// Set decodes raw JSON into the cell's value type and writes it.
	Set(raw json.RawMessage) error
	// Writable reports whether Set is supported.
	Writable() bool
}

type exposedCell[T any] struct {
	name  string
	src   cell.Source[T]
	write func(T) error
}

// ExposeCell adapts a typed cell for registration with the API.
func ExposeCell[T any](name string, c *cell.Cell[T]) ExposedCell {
	return ExposeWritable[T](name, c, func(v T) error {
		c.Write(v)
		return nil
	})
}

// ExposeWritable adapts any source with a separate write function, for
// cells whose writes can fail, such as store-backed ones.
func ExposeWritable[T any](name string, src cell.Source[T], write func(T) error) ExposedCell {
	return &exposedCell[T]{name: name, src: src, write: write}
}

func (e *exposedCell[T]) Name() string { return e.name }

func (e *exposedCell[T]) Value() any { return e.src.Read() }

func (e *exposedCell[T]) Set(raw json.RawMessage) error {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return apperrors.InvalidInput("value", err.Error())
	}
	return e.write(v)
}

func (e *exposedCell[T]) Writable() bool { return true }

type exposedSource[T any] struct {
	name string
	src  cell.Source[T]
}

// ExposeSource adapts a read-only source, such as a debounced or
// derived cell, for registration with the API. Writes are rejected
// with an invalid-input error.
func ExposeSource[T any](name string, src cell.Source[T]) ExposedCell {
	return &exposedSource[T]{name: name, src: src}
}

func (e *exposedSource[T]) Name() string { return e.name }

func (e *exposedSource[T]) Value() any { return e.src.Read() }

func (e *exposedSource[T]) Set(json.RawMessage) error {
	return apperrors.InvalidInput("value", "cell "+e.name+" is read-only")
}

func (e *exposedSource[T]) Writable() bool { return false }
