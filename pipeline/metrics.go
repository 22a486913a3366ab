package pipeline

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds OpenTelemetry instruments for pipeline timer activity.
// A single Metrics instance can be shared by many pipelines; samples
// are attributed by pipeline name.
type Metrics struct {
	scheduled metric.Int64Counter
	cancelled metric.Int64Counter
	settled   metric.Int64Counter
	dropped   metric.Int64Counter
}

// NewMetrics creates pipeline instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	scheduled, err := meter.Int64Counter("pipeline.timer.scheduled",
		metric.WithDescription("Timers scheduled by pipelines"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.timer.scheduled counter: %w", err)
	}

	cancelled, err := meter.Int64Counter("pipeline.timer.cancelled",
		metric.WithDescription("Pending timers preempted by a newer source change"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.timer.cancelled counter: %w", err)
	}

	settled, err := meter.Int64Counter("pipeline.value.settled",
		metric.WithDescription("Values that settled into pipeline outputs"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.value.settled counter: %w", err)
	}

	dropped, err := meter.Int64Counter("pipeline.value.dropped",
		metric.WithDescription("Values dropped inside a throttle window"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.value.dropped counter: %w", err)
	}

	return &Metrics{
		scheduled: scheduled,
		cancelled: cancelled,
		settled:   settled,
		dropped:   dropped,
	}, nil
}

func (m *Metrics) recordScheduled(name string) {
	m.scheduled.Add(context.Background(), 1, pipelineAttr(name))
}

func (m *Metrics) recordCancelled(name string) {
	m.cancelled.Add(context.Background(), 1, pipelineAttr(name))
}

func (m *Metrics) recordSettled(name string) {
	m.settled.Add(context.Background(), 1, pipelineAttr(name))
}

func (m *Metrics) recordDropped(name string) {
	m.dropped.Add(context.Background(), 1, pipelineAttr(name))
}

func pipelineAttr(name string) metric.AddOption {
	return metric.WithAttributes(attribute.String("pipeline", name))
}
