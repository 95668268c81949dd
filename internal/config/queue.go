package config

import (
	"errors"
	"time"
)

const (
	defaultQueueMaxRetryTimes = 5
	defaultQueueRetryInterval = 500 * time.Millisecond
)

// QueueConfig configures publishing of committed engine events to RabbitMQ.
type QueueConfig struct {
	Url           string        `mapstructure:"url"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	Exchange      string        `mapstructure:"exchange"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.User == "" {
		return errors.New("missing queue user")
	}

	if cfg.Password == "" {
		return errors.New("missing queue password")
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultQueueMaxRetryTimes
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultQueueRetryInterval
	}

	return nil
}
