package config

import (
	"errors"
	"time"
)

const defaultStatsPollingInterval = 5 * time.Minute

type PollerConfig struct {
	StatsPollingInterval time.Duration `mapstructure:"stats-polling-interval"`
	// EventPublishTimeout bounds publishing of a single committed event
	EventPublishTimeout time.Duration `mapstructure:"event-publish-timeout"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	}

	if cfg.EventPublishTimeout < 0 {
		return errors.New("event-publish-timeout must not be negative")
	}

	return nil
}
