package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/NightRunnerEB/Genome-sub000/internal/bloom"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

const DefaultMaxVerifiers = 128

func (req *InitializeRequest) validate() error {
	if len(req.Verifiers) != 0 {
		return fmt.Errorf("%w: the list of verifiers must be empty", types.ErrInvalidParams)
	}
	if req.Admin.IsZero() || req.PlatformWallet.IsZero() || req.FeeMint.IsZero() {
		return fmt.Errorf("%w: admin, platform wallet and fee mint are required", types.ErrInvalidParams)
	}
	if !(req.ConsensusRate > 0 && req.ConsensusRate <= 100) {
		return fmt.Errorf("%w: consensus rate %v out of (0, 100]", types.ErrInvalidParams, req.ConsensusRate)
	}
	if req.MinTeams == 0 || req.MinTeams > req.MaxTeams {
		return fmt.Errorf("%w: teams bounds [%d, %d]", types.ErrInvalidParams, req.MinTeams, req.MaxTeams)
	}
	if req.MaxOrganizerFee > basisPoints {
		return fmt.Errorf("%w: max organizer fee %d above %d bps", types.ErrInvalidParams, req.MaxOrganizerFee, basisPoints)
	}
	if !bloom.ValidPrecision(req.FalsePrecision) {
		return fmt.Errorf("%w: %v", types.ErrInvalidPrecision, req.FalsePrecision)
	}
	return nil
}

// Initialize creates the global configuration singleton.
func (s *Service) Initialize(ctx context.Context, caller solana.PublicKey, req InitializeRequest) error {
	return s.execute(ctx, types.ActionInitialize.String(), caller, func(ctx context.Context, op *operation) error {
		if err := s.requireDeployer(caller, func() error { return nil }); err != nil {
			return err
		}

		_, err := op.txn.GlobalConfig(ctx)
		if err == nil {
			return fmt.Errorf("%w: global config", types.ErrAlreadyInitialized)
		}
		if !db.IsNotFoundError(err) {
			return err
		}

		if err := req.validate(); err != nil {
			return err
		}

		maxVerifiers := req.MaxVerifiers
		if maxVerifiers == 0 {
			maxVerifiers = DefaultMaxVerifiers
		}

		op.txn.PutGlobalConfig(&model.GlobalConfigDocument{
			ID:              model.GlobalConfigID,
			Admin:           req.Admin,
			PlatformWallet:  req.PlatformWallet,
			FeeMint:         req.FeeMint,
			PlatformFee:     req.PlatformFee,
			VerifierFee:     req.VerifierFee,
			MaxOrganizerFee: req.MaxOrganizerFee,
			MinTeams:        req.MinTeams,
			MaxTeams:        req.MaxTeams,
			ConsensusRate:   req.ConsensusRate,
			FalsePrecision:  req.FalsePrecision,
			MaxVerifiers:    maxVerifiers,
			Verifiers:       []solana.PublicKey{},
		})

		op.emit(types.NewEvent(types.EventConfigInitialized, caller.String()).
			With("admin", req.Admin.String()).
			With("platform_wallet", req.PlatformWallet.String()).
			With("fee_mint", req.FeeMint.String()))
		return nil
	})
}

func (s *Service) SetBloomPrecision(ctx context.Context, caller solana.PublicKey, req SetBloomPrecisionRequest) error {
	return s.execute(ctx, types.ActionSetBloomPrecision.String(), caller, func(ctx context.Context, op *operation) error {
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, op, cfg, caller); err != nil {
			return err
		}
		if !bloom.ValidPrecision(req.Precision) {
			return fmt.Errorf("%w: %v", types.ErrInvalidPrecision, req.Precision)
		}

		cfg.FalsePrecision = req.Precision
		op.txn.PutGlobalConfig(cfg)

		op.emit(types.NewEvent(types.EventBloomPrecisionSet, caller.String()).
			With("precision", strconv.FormatFloat(req.Precision, 'g', -1, 64)))
		return nil
	})
}

// WithdrawPlatformFee moves collected fees from the platform wallet to the caller.
func (s *Service) WithdrawPlatformFee(ctx context.Context, caller solana.PublicKey, req WithdrawPlatformFeeRequest) error {
	return s.execute(ctx, types.ActionWithdrawPlatformFee.String(), caller, func(ctx context.Context, op *operation) error {
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, op, cfg, caller); err != nil {
			return err
		}
		if req.Amount == 0 {
			return fmt.Errorf("%w: withdraw of zero", types.ErrInvalidAmount)
		}

		if err := op.ledger.Transfer(ctx, cfg.PlatformWallet, caller, cfg.FeeMint, req.Amount); err != nil {
			return err
		}

		op.emit(types.NewEvent(types.EventPlatformFeeWithdrawn, caller.String()).
			WithUint("amount", req.Amount))
		return nil
	})
}
