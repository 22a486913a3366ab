// Package pipeline provides temporal operators over reactive cells.
//
// A pipeline observes a source cell and maintains its own output cell
// whose mutations are governed by a timer policy:
//
//   - Debounce: the output updates only after the source has been quiet
//     for the full delay. Rapid bursts collapse into a single settle of
//     the last value.
//   - Throttle: the output takes the first value of each interval
//     window; later values inside the window are dropped.
//
// Pipelines own their output cell and pending timer exclusively. The
// source is shared and never written. Timers go through an injectable
// scheduler so tests can drive them deterministically.
//
// # Usage
//
//	src := cell.New("")
//	deb, err := pipeline.Debounce[string](src, 300*time.Millisecond)
//	if err != nil { ... }
//	defer deb.Dispose()
//
//	deb.Subscribe(func(q string) { runSearch(q) })
//	src.Write("a")
//	src.Write("ab") // only "ab" settles, 300ms after this write
package pipeline
