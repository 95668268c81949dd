package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "GENOME"

type Config struct {
	Db      DbConfig       `mapstructure:"db"`
	Engine  EngineConfig   `mapstructure:"engine"`
	Genesis *GenesisConfig `mapstructure:"genesis"`
	Queue   *QueueConfig   `mapstructure:"queue"`
	Poller  PollerConfig   `mapstructure:"poller"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return err
	}

	if err := cfg.Engine.Validate(); err != nil {
		return err
	}

	// genesis is only needed by the initialize command
	if cfg.Genesis != nil {
		if err := cfg.Genesis.Validate(); err != nil {
			return err
		}
	}

	// events are published only when a queue is configured
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return err
		}
	}

	if err := cfg.Poller.Validate(); err != nil {
		return err
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return err
	}

	return nil
}

// New returns a fully parsed Config object from a given file path.
// Values can be overridden with environment variables, e.g. GENOME_DB__ADDRESS
// for db.address.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}
