package main

import (
	"fmt"

	"github.com/kbukum/reactive/config"
	"github.com/kbukum/reactive/server"
	"github.com/kbukum/reactive/validation"
	"github.com/kbukum/reactive/version"
)

// Config is the reactived service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server    server.Config   `yaml:"server" mapstructure:"server"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Notify    NotifyConfig    `yaml:"notify" mapstructure:"notify"`
	Persist   PersistConfig   `yaml:"persist" mapstructure:"persist"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// PipelineConfig tunes the query pipelines.
type PipelineConfig struct {
	DebounceMS int `yaml:"debounce_ms" mapstructure:"debounce_ms" validate:"gte=0"`
	ThrottleMS int `yaml:"throttle_ms" mapstructure:"throttle_ms" validate:"gte=0"`
}

// NotifyConfig tunes the notification queue.
type NotifyConfig struct {
	TTLSeconds int `yaml:"ttl_seconds" mapstructure:"ttl_seconds" validate:"gte=0"`
	Capacity   int `yaml:"capacity" mapstructure:"capacity" validate:"gte=0"`
}

// PersistConfig controls cell persistence.
type PersistConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
}

// TelemetryConfig controls OTLP export.
type TelemetryConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
}

// ApplyDefaults fills unset fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "reactived"
	}
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()

	if c.Pipeline.DebounceMS == 0 {
		c.Pipeline.DebounceMS = 300
	}
	if c.Pipeline.ThrottleMS == 0 {
		c.Pipeline.ThrottleMS = 100
	}
	if c.Notify.TTLSeconds == 0 {
		c.Notify.TTLSeconds = 5
	}
	if c.Notify.Capacity == 0 {
		c.Notify.Capacity = 16
	}
	if c.Persist.Dir == "" {
		c.Persist.Dir = "data"
	}
	if c.Telemetry.Endpoint == "" {
		c.Telemetry.Endpoint = "localhost:4318"
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
