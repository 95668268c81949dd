package services

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

const seedRoot = "genome-0"

const basisPoints = 10_000

// notInitialized maps a missing record to the existence error callers see.
func notInitialized(err error, what string) error {
	if db.IsNotFoundError(err) {
		return fmt.Errorf("%w: %s", types.ErrAccountNotInitialized, what)
	}
	return err
}

func (s *Service) globalConfig(ctx context.Context, op *operation) (*model.GlobalConfigDocument, error) {
	cfg, err := op.txn.GlobalConfig(ctx)
	if err != nil {
		return nil, notInitialized(err, "global config")
	}
	return cfg, nil
}

// requireAdmin accepts the configured administrator and holders of the
// administrator role.
func (s *Service) requireAdmin(
	ctx context.Context, op *operation, cfg *model.GlobalConfigDocument, caller solana.PublicKey,
) error {
	if caller == cfg.Admin {
		return nil
	}
	_, err := s.requireRole(ctx, op, caller, types.RoleAdministrator)
	return err
}

func (s *Service) requireRole(
	ctx context.Context, op *operation, caller solana.PublicKey, role types.Role,
) (*model.RoleDocument, error) {
	doc, err := op.txn.Role(ctx, caller, role)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s lacks role %s", types.ErrNotAllowed, caller, role)
		}
		return nil, err
	}
	return doc, nil
}

// requireDeployer gates singleton creation. Without a configured deployer the
// fallback check decides.
func (s *Service) requireDeployer(caller solana.PublicKey, fallback func() error) error {
	deployer := s.cfg.Engine.DeployerKey()
	if deployer == nil {
		return fallback()
	}
	if caller != *deployer {
		return fmt.Errorf("%w: %s is not the deployer", types.ErrNotAllowed, caller)
	}
	return nil
}

func (s *Service) deriveAddress(seeds ...[]byte) (solana.PublicKey, error) {
	all := append([][]byte{[]byte(seedRoot)}, seeds...)
	addr, _, err := solana.FindProgramAddress(all, s.cfg.Engine.ProgramKey())
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("failed to derive address: %w", err)
	}
	return addr, nil
}

// tournamentEscrow holds the prize pool of a tournament.
func (s *Service) tournamentEscrow(id uint32) (solana.PublicKey, error) {
	return s.deriveAddress([]byte("tournament"), binary.LittleEndian.AppendUint32(nil, id))
}

// roleAddress holds the rent of a role record.
func (s *Service) roleAddress(identity solana.PublicKey, role types.Role) (solana.PublicKey, error) {
	return s.deriveAddress([]byte("role"), identity.Bytes(), []byte(role.String()))
}

// configVault holds the rent of verifier roster slots.
func (s *Service) configVault() (solana.PublicKey, error) {
	return s.deriveAddress([]byte("config"))
}

func addUint64(a, b uint64) (uint64, error) {
	if math.MaxUint64-a < b {
		return 0, fmt.Errorf("%w: amount overflow", types.ErrInvalidAmount)
	}
	return a + b, nil
}

func mulUint64(a, b uint64) (uint64, error) {
	if a != 0 && b > math.MaxUint64/a {
		return 0, fmt.Errorf("%w: amount overflow", types.ErrInvalidAmount)
	}
	return a * b, nil
}
