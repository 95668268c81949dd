package config

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// EngineConfig holds deployment constants of the escrow engine. They are not
// part of the persisted global configuration.
type EngineConfig struct {
	// ProgramID seeds every derived escrow address
	ProgramID string `mapstructure:"program-id"`
	// Deployer is the only identity allowed to initialize singletons. Empty
	// means anyone may call initialize once.
	Deployer string `mapstructure:"deployer"`
	// lamports locked in every role record
	RoleRecordRent uint64 `mapstructure:"role-record-rent"`
	// lamports locked per verifier roster slot
	RosterEntryRent uint64 `mapstructure:"roster-entry-rent"`
}

func (cfg *EngineConfig) Validate() error {
	if _, err := solana.PublicKeyFromBase58(cfg.ProgramID); err != nil {
		return fmt.Errorf("invalid engine program-id: %w", err)
	}

	if cfg.Deployer != "" {
		if _, err := solana.PublicKeyFromBase58(cfg.Deployer); err != nil {
			return fmt.Errorf("invalid engine deployer: %w", err)
		}
	}

	return nil
}

func (cfg *EngineConfig) ProgramKey() solana.PublicKey {
	return solana.MustPublicKeyFromBase58(cfg.ProgramID)
}

// DeployerKey returns nil when no deployer is configured.
func (cfg *EngineConfig) DeployerKey() *solana.PublicKey {
	if cfg.Deployer == "" {
		return nil
	}
	key := solana.MustPublicKeyFromBase58(cfg.Deployer)
	return &key
}
