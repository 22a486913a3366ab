package pipeline

import (
	"github.com/kbukum/reactive/logger"
	"github.com/kbukum/reactive/scheduler"
)

// Option configures a pipeline at construction time.
type Option func(*options)

type options struct {
	name    string
	sched   scheduler.Scheduler
	log     *logger.Logger
	metrics *Metrics
}

func buildOptions(name string, opts []Option) options {
	o := options{
		name:  name,
		sched: scheduler.Real(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName tags the pipeline for logs and metrics.
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

// WithScheduler replaces the default real-time scheduler. Tests inject
// scheduler.NewManual() to drive timers deterministically.
func WithScheduler(s scheduler.Scheduler) Option {
	return func(o *options) { o.sched = s }
}

// WithLogger enables debug logging of timer activity.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records scheduled/cancelled/settled/dropped counts.
func WithMetrics(m *Metrics) Option {
	return func(o *options) { o.metrics = m }
}
