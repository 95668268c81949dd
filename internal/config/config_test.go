package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYaml = `
db:
  username: root
  password: example
  address: "mongodb://localhost:27017/?directConnection=true"
  db-name: genome
engine:
  program-id: Stake11111111111111111111111111111111111111
  role-record-rent: 1000
  roster-entry-rent: 250
genesis:
  admin: Vote111111111111111111111111111111111111111
  platform-wallet: SysvarC1ock11111111111111111111111111111111
  fee-mint: So11111111111111111111111111111111111111112
  platform-fee: 10
  verifier-fee: 10
  max-organizer-fee: 5000
  min-teams: 2
  max-teams: 20
  consensus-rate: 66.0
  false-precision: 0.000065
  max-verifiers: 128
poller:
  stats-polling-interval: 30s
metrics:
  host: 0.0.0.0
  port: 2112
`

func validConfig() *Config {
	return &Config{
		Db: DbConfig{
			Username: "test",
			Password: "test",
			Address:  "mongodb://localhost:27017",
			DbName:   "test",
		},
		Engine: EngineConfig{
			ProgramID: solana.StakeProgramID.String(),
		},
		Poller: PollerConfig{
			StatsPollingInterval: 10 * time.Second,
		},
		Metrics: MetricsConfig{
			Host: "0.0.0.0",
			Port: 2112,
		},
	}
}

func TestConfig_OptionalSections(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
	assert.Nil(t, cfg.Queue)
	assert.Nil(t, cfg.Genesis)

	t.Run("queue present is validated", func(t *testing.T) {
		cfg := validConfig()
		cfg.Queue = &QueueConfig{Url: "localhost:5672"}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing queue user")

		cfg.Queue.User = "guest"
		cfg.Queue.Password = "guest"
		require.NoError(t, cfg.Validate())
		assert.Equal(t, uint(defaultQueueMaxRetryTimes), cfg.Queue.MaxRetryTimes)
		assert.Equal(t, defaultQueueRetryInterval, cfg.Queue.RetryInterval)
	})
	t.Run("invalid genesis is rejected", func(t *testing.T) {
		cfg := validConfig()
		cfg.Genesis = &GenesisConfig{
			Admin:          solana.SystemProgramID.String(),
			PlatformWallet: solana.SystemProgramID.String(),
			FeeMint:        solana.SolMint.String(),
			MinTeams:       2,
			MaxTeams:       20,
			ConsensusRate:  120,
			FalsePrecision: 0.01,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "consensus-rate")
	})
	t.Run("bad program id", func(t *testing.T) {
		cfg := validConfig()
		cfg.Engine.ProgramID = "not-base58"
		assert.Error(t, cfg.Validate())
	})
}

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(configYaml), 0o600))

	t.Run("file values", func(t *testing.T) {
		cfg, err := New(path)
		require.NoError(t, err)

		assert.Equal(t, "genome", cfg.Db.DbName)
		assert.Equal(t, solana.StakeProgramID, cfg.Engine.ProgramKey())
		assert.Nil(t, cfg.Engine.DeployerKey())
		assert.Equal(t, uint64(250), cfg.Engine.RosterEntryRent)
		require.NotNil(t, cfg.Genesis)
		assert.Equal(t, 66.0, cfg.Genesis.ConsensusRate)
		assert.Equal(t, uint16(128), cfg.Genesis.MaxVerifiers)
		assert.Equal(t, 30*time.Second, cfg.Poller.StatsPollingInterval)
	})
	t.Run("env override", func(t *testing.T) {
		t.Setenv("GENOME_DB__DB_NAME", "from-env")

		cfg, err := New(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.Db.DbName)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := New(filepath.Join(t.TempDir(), "absent.yml"))
		assert.Error(t, err)
	})
}

func TestMetricsConfig_Validate(t *testing.T) {
	cfg := &MetricsConfig{Host: "0.0.0.0", Port: 70000}
	assert.Error(t, cfg.Validate())

	cfg = &MetricsConfig{Host: "localhost", Port: 2112}
	assert.Error(t, cfg.Validate())
}
