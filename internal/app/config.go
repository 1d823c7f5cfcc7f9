package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// GraphPaths are graph files or directories holding them.
	GraphPaths []string
	// Ticks to run; 0 runs until the context is canceled.
	Ticks uint64
	// Watch lists port addresses reported after every tick.
	Watch []string

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
	Workers         int
	Interval        time.Duration

	MonitorURL   string
	MonitorEvent string
}

func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.GraphPaths) == 0 {
		return nil, errors.New("a graph path is required")
	}
	for _, p := range cfg.GraphPaths {
		if p == "" {
			return nil, errors.New("graph paths cannot be empty")
		}
	}
	if cfg.Workers < 1 {
		return nil, errors.New("workers must be at least 1")
	}
	if cfg.Interval < 0 {
		return nil, errors.New("interval cannot be negative")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, errors.New("healthcheck port must be between 0 and 65535")
	}
	return &cfg, nil
}
