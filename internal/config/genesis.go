package config

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// GenesisConfig is the payload the initialize command submits to create the
// global configuration.
type GenesisConfig struct {
	Admin           string  `mapstructure:"admin"`
	PlatformWallet  string  `mapstructure:"platform-wallet"`
	FeeMint         string  `mapstructure:"fee-mint"`
	PlatformFee     uint64  `mapstructure:"platform-fee"`
	VerifierFee     uint64  `mapstructure:"verifier-fee"`
	MaxOrganizerFee uint64  `mapstructure:"max-organizer-fee"`
	MinTeams        uint16  `mapstructure:"min-teams"`
	MaxTeams        uint16  `mapstructure:"max-teams"`
	ConsensusRate   float64 `mapstructure:"consensus-rate"`
	FalsePrecision  float64 `mapstructure:"false-precision"`
	MaxVerifiers    uint16  `mapstructure:"max-verifiers"`
}

func (cfg *GenesisConfig) Validate() error {
	keys := map[string]string{
		"admin":           cfg.Admin,
		"platform-wallet": cfg.PlatformWallet,
		"fee-mint":        cfg.FeeMint,
	}
	for name, value := range keys {
		if _, err := solana.PublicKeyFromBase58(value); err != nil {
			return fmt.Errorf("invalid genesis %s: %w", name, err)
		}
	}

	if cfg.MinTeams == 0 || cfg.MinTeams > cfg.MaxTeams {
		return errors.New("genesis min-teams must be positive and not exceed max-teams")
	}

	if cfg.ConsensusRate <= 0 || cfg.ConsensusRate > 100 {
		return errors.New("genesis consensus-rate must be in (0, 100]")
	}

	if cfg.FalsePrecision <= 0 || cfg.FalsePrecision > 1 {
		return errors.New("genesis false-precision must be in (0, 1]")
	}

	return nil
}
