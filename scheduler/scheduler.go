package scheduler

import "time"

// Handle represents a scheduled, not-yet-fired callback. Handles are
// opaque tokens; pass them back to the Scheduler that produced them.
// A nil Handle is inert.
type Handle interface{}

// Scheduler registers callbacks to run after a delay and cancels
// not-yet-fired registrations.
type Scheduler interface {
	// Schedule runs fn once after delay. A delay of zero means "next
	// tick": fn never runs synchronously inside the Schedule call.
	// Negative delays are treated as zero.
	Schedule(fn func(), delay time.Duration) Handle

	// Cancel prevents a pending callback from firing. Cancelling an
	// already-fired, already-cancelled, or nil handle is a safe no-op.
	Cancel(h Handle)
}
