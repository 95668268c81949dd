package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/ledger"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

// GrantRole allocates a role record for the target, funded with rent from the
// caller. Verifiers also join the quorum roster.
func (s *Service) GrantRole(ctx context.Context, caller solana.PublicKey, req RoleRequest) error {
	return s.execute(ctx, types.ActionGrantRole.String(), caller, func(ctx context.Context, op *operation) error {
		if err := req.Role.Validate(); err != nil {
			return err
		}
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, op, cfg, caller); err != nil {
			return err
		}

		_, err = op.txn.Role(ctx, req.Target, req.Role)
		if err == nil {
			return fmt.Errorf("%w: %s already holds %s", types.ErrRoleAlreadyGranted, req.Target, req.Role)
		}
		if !db.IsNotFoundError(err) {
			return err
		}

		address, err := s.roleAddress(req.Target, req.Role)
		if err != nil {
			return err
		}
		rent := s.cfg.Engine.RoleRecordRent
		if err := op.ledger.Transfer(ctx, caller, address, ledger.NativeMint, rent); err != nil {
			return err
		}

		if req.Role == types.RoleVerifier {
			if err := s.addToRoster(ctx, op, cfg, caller, req.Target); err != nil {
				return err
			}
		}

		op.txn.PutRole(&model.RoleDocument{
			ID:          model.RoleID(req.Target, req.Role),
			Identity:    req.Target,
			Role:        req.Role,
			Address:     address,
			RentDeposit: rent,
		})

		op.emit(types.NewEvent(types.EventRoleGranted, caller.String()).
			With("target", req.Target.String()).
			With("role", req.Role.String()).
			WithUint("rent", rent))
		return nil
	})
}

func (s *Service) addToRoster(
	ctx context.Context, op *operation, cfg *model.GlobalConfigDocument, payer, verifier solana.PublicKey,
) error {
	if len(cfg.Verifiers) >= int(cfg.MaxVerifiers) {
		return fmt.Errorf("%w: roster holds %d", types.ErrMaxVerifiersExceeded, len(cfg.Verifiers))
	}
	if cfg.IsVerifier(verifier) {
		return fmt.Errorf("%w: %s already in roster", types.ErrRoleAlreadyGranted, verifier)
	}

	vault, err := s.configVault()
	if err != nil {
		return err
	}
	rent := s.cfg.Engine.RosterEntryRent
	if err := op.ledger.Transfer(ctx, payer, vault, ledger.NativeMint, rent); err != nil {
		return err
	}

	cfg.RosterRent += rent
	cfg.Verifiers = append(cfg.Verifiers, verifier)
	op.txn.PutGlobalConfig(cfg)
	return nil
}

// RevokeRole destroys the role record and returns its rent to the caller. An
// unclaimed balance is paid out to the former holder first.
func (s *Service) RevokeRole(ctx context.Context, caller solana.PublicKey, req RoleRequest) error {
	return s.execute(ctx, types.ActionRevokeRole.String(), caller, func(ctx context.Context, op *operation) error {
		if err := req.Role.Validate(); err != nil {
			return err
		}
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}
		if err := s.requireAdmin(ctx, op, cfg, caller); err != nil {
			return err
		}

		record, err := op.txn.Role(ctx, req.Target, req.Role)
		if err != nil {
			if db.IsNotFoundError(err) {
				return fmt.Errorf("%w: %s does not hold %s", types.ErrRoleNotFound, req.Target, req.Role)
			}
			return err
		}

		if err := s.deferPayout(ctx, op, req.Target, record.ClaimableBalance); err != nil {
			return err
		}

		if err := op.ledger.Transfer(ctx, record.Address, caller, ledger.NativeMint, record.RentDeposit); err != nil {
			return err
		}

		if req.Role == types.RoleVerifier {
			if err := s.removeFromRoster(ctx, op, cfg, caller, req.Target); err != nil {
				return err
			}
		}

		op.txn.DeleteRole(req.Target, req.Role)

		op.emit(types.NewEvent(types.EventRoleRevoked, caller.String()).
			With("target", req.Target.String()).
			With("role", req.Role.String()).
			WithUint("pending", record.ClaimableBalance))
		return nil
	})
}

// deferPayout moves what a revoked record still owes into the identity's
// pending payout. Nothing leaves the platform wallet here.
func (s *Service) deferPayout(ctx context.Context, op *operation, identity solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return nil
	}
	payout, err := op.txn.PendingPayout(ctx, identity)
	if err != nil {
		if !db.IsNotFoundError(err) {
			return err
		}
		payout = &model.PendingPayoutDocument{ID: identity.String(), Identity: identity}
	}
	total, err := addUint64(payout.Amount, amount)
	if err != nil {
		return err
	}
	payout.Amount = total
	op.txn.PutPendingPayout(payout)
	return nil
}

func (s *Service) removeFromRoster(
	ctx context.Context, op *operation, cfg *model.GlobalConfigDocument, refundTo, verifier solana.PublicKey,
) error {
	idx := slices.Index(cfg.Verifiers, verifier)
	if idx < 0 {
		log.Ctx(ctx).Warn().Stringer("verifier", verifier).Msg("Verifier role without roster entry")
		return nil
	}

	vault, err := s.configVault()
	if err != nil {
		return err
	}
	rent := min(s.cfg.Engine.RosterEntryRent, cfg.RosterRent)
	if err := op.ledger.Transfer(ctx, vault, refundTo, ledger.NativeMint, rent); err != nil {
		return err
	}

	cfg.RosterRent -= rent
	cfg.Verifiers = slices.Delete(cfg.Verifiers, idx, idx+1)
	op.txn.PutGlobalConfig(cfg)
	return nil
}

// accrueClaim credits the claimable balance of a role record.
func (s *Service) accrueClaim(
	ctx context.Context, op *operation, target solana.PublicKey, role types.Role, amount uint64,
) error {
	record, err := op.txn.Role(ctx, target, role)
	if err != nil {
		return err
	}
	balance, err := addUint64(record.ClaimableBalance, amount)
	if err != nil {
		return err
	}
	record.ClaimableBalance = balance
	op.txn.PutRole(record)
	return nil
}

// ClaimRoleFund pays amount of the caller's claimable balance out of the
// platform wallet. The decrement and the payout commit together.
func (s *Service) ClaimRoleFund(ctx context.Context, caller solana.PublicKey, req ClaimRoleFundRequest) error {
	return s.execute(ctx, types.ActionClaimRoleFund.String(), caller, func(ctx context.Context, op *operation) error {
		if err := req.Role.Validate(); err != nil {
			return err
		}
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}

		record, err := op.txn.Role(ctx, caller, req.Role)
		if err != nil {
			return notInitialized(err, "role "+req.Role.String())
		}
		if req.Amount == 0 {
			return fmt.Errorf("%w: claim of zero", types.ErrInvalidAmount)
		}
		if req.Amount > record.ClaimableBalance {
			return fmt.Errorf("%w: claimable %d, requested %d", types.ErrInsufficientFunds, record.ClaimableBalance, req.Amount)
		}

		record.ClaimableBalance -= req.Amount
		op.txn.PutRole(record)

		if err := op.ledger.Transfer(ctx, cfg.PlatformWallet, caller, cfg.FeeMint, req.Amount); err != nil {
			return err
		}

		op.emit(types.NewEvent(types.EventRoleFundClaimed, caller.String()).
			With("role", req.Role.String()).
			WithUint("amount", req.Amount))
		return nil
	})
}

// ClaimPendingPayout pays out balance left behind by revoked role records.
func (s *Service) ClaimPendingPayout(ctx context.Context, caller solana.PublicKey, req ClaimPendingPayoutRequest) error {
	return s.execute(ctx, types.ActionClaimPendingPayout.String(), caller, func(ctx context.Context, op *operation) error {
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}
		if req.Amount == 0 {
			return fmt.Errorf("%w: claim of zero", types.ErrInvalidAmount)
		}

		var owed uint64
		payout, err := op.txn.PendingPayout(ctx, caller)
		switch {
		case err == nil:
			owed = payout.Amount
		case !db.IsNotFoundError(err):
			return err
		}
		if req.Amount > owed {
			return fmt.Errorf("%w: pending %d, requested %d", types.ErrInsufficientFunds, owed, req.Amount)
		}

		payout.Amount -= req.Amount
		if payout.Amount == 0 {
			op.txn.DeletePendingPayout(caller)
		} else {
			op.txn.PutPendingPayout(payout)
		}

		if err := op.ledger.Transfer(ctx, cfg.PlatformWallet, caller, cfg.FeeMint, req.Amount); err != nil {
			return err
		}

		op.emit(types.NewEvent(types.EventPayoutClaimed, caller.String()).
			WithUint("amount", req.Amount))
		return nil
	})
}
