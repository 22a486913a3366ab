package scheduler

import "time"

// Real returns the production Scheduler backed by the runtime's timers.
func Real() Scheduler { return realScheduler{} }

type realScheduler struct{}

func (realScheduler) Schedule(fn func(), delay time.Duration) Handle {
	if delay < 0 {
		delay = 0
	}
	return time.AfterFunc(delay, fn)
}

func (realScheduler) Cancel(h Handle) {
	if t, ok := h.(*time.Timer); ok {
		t.Stop()
	}
}
