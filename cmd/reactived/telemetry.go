package main

import (
	"context"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/reactive/component"
	"github.com/kbukum/reactive/observability"
)

// telemetryComponent owns the OpenTelemetry providers so their
// lifecycle follows the rest of the application.
type telemetryComponent struct {
	cfg         TelemetryConfig
	serviceName string
	serviceVer  string
	environment string

	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

var _ component.Component = (*telemetryComponent)(nil)

func newTelemetryComponent(cfg TelemetryConfig, name, ver, env string) *telemetryComponent {
	return &telemetryComponent{
		cfg:         cfg,
		serviceName: name,
		serviceVer:  ver,
		environment: env,
	}
}

func (t *telemetryComponent) Name() string { return "telemetry" }

func (t *telemetryComponent) Start(ctx context.Context) error {
	if !t.cfg.Enabled {
		return nil
	}

	tracerCfg := observability.DefaultTracerConfig(t.serviceName)
	tracerCfg.ServiceVersion = t.serviceVer
	tracerCfg.Environment = t.environment
	tracerCfg.Endpoint = t.cfg.Endpoint

	tp, err := observability.InitTracer(ctx, tracerCfg)
	if err != nil {
		return err
	}
	t.tp = tp

	meterCfg := observability.DefaultMeterConfig(t.serviceName)
	meterCfg.ServiceVersion = t.serviceVer
	meterCfg.Environment = t.environment
	meterCfg.Endpoint = t.cfg.Endpoint

	mp, err := observability.InitMeter(ctx, meterCfg)
	if err != nil {
		return err
	}
	t.mp = mp

	return nil
}

func (t *telemetryComponent) Stop(ctx context.Context) error {
	var firstErr error
	if t.mp != nil {
		if err := t.mp.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if t.tp != nil {
		if err := t.tp.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *telemetryComponent) Health(_ context.Context) component.Health {
	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	if !t.cfg.Enabled {
		h.Message = "telemetry disabled"
	}
	return h
}
