// Package scheduler provides an injectable timer facility for the
// reactive kit.
//
// Production code accepts a Scheduler instead of calling time.AfterFunc
// directly. Real() provides the standard library behavior; NewManual()
// provides a deterministic scheduler for tests where virtual time
// advances only when Advance is called, so timer-driven behavior can be
// asserted without sleeps.
package scheduler
