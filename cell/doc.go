// Package cell provides the reactive cell primitive: a mutable value
// holder that notifies registered observers synchronously on every
// write.
//
// Cells deliberately mirror change events, not value identity — writing
// a value equal to the current one still notifies observers. Dependency
// edges are explicit: consumers subscribe and hold the returned
// Unsubscribe, there is no ambient tracking.
package cell
