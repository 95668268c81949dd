package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerConfig_Validate(t *testing.T) {
	t.Run("all fields set", func(t *testing.T) {
		cfg := &PollerConfig{
			StatsPollingInterval: 3 * time.Minute,
			EventPublishTimeout:  5 * time.Second,
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, 3*time.Minute, cfg.StatsPollingInterval)
	})

	t.Run("stats polling interval not set - should use default", func(t *testing.T) {
		cfg := &PollerConfig{}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, defaultStatsPollingInterval, cfg.StatsPollingInterval)
		assert.Equal(t, 5*time.Minute, cfg.StatsPollingInterval)
	})

	t.Run("stats polling interval negative - should use default", func(t *testing.T) {
		cfg := &PollerConfig{
			StatsPollingInterval: -1 * time.Minute,
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, defaultStatsPollingInterval, cfg.StatsPollingInterval)
	})

	t.Run("negative publish timeout - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			EventPublishTimeout: -time.Second,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "event-publish-timeout must not be negative")
	})
}
