package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// ApproveToken creates or overwrites the approval of a mint.
func (s *Service) ApproveToken(ctx context.Context, caller solana.PublicKey, req ApproveTokenRequest) error {
	return s.execute(ctx, types.ActionApproveToken.String(), caller, func(ctx context.Context, op *operation) error {
		if _, err := s.requireRole(ctx, op, caller, types.RoleOperator); err != nil {
			return err
		}
		if req.Mint.IsZero() {
			return fmt.Errorf("%w: mint is required", types.ErrInvalidParams)
		}

		op.txn.PutAssetApproval(&model.AssetApprovalDocument{
			ID:             req.Mint.String(),
			Mint:           req.Mint,
			MinSponsorPool: req.MinSponsorPool,
			MinEntryFee:    req.MinEntryFee,
		})

		op.emit(types.NewEvent(types.EventTokenApproved, caller.String()).
			With("mint", req.Mint.String()).
			WithUint("min_sponsor_pool", req.MinSponsorPool).
			WithUint("min_entry_fee", req.MinEntryFee))
		return nil
	})
}

func (s *Service) BanToken(ctx context.Context, caller solana.PublicKey, req BanTokenRequest) error {
	return s.execute(ctx, types.ActionBanToken.String(), caller, func(ctx context.Context, op *operation) error {
		if _, err := s.requireRole(ctx, op, caller, types.RoleOperator); err != nil {
			return err
		}
		if _, err := op.txn.AssetApproval(ctx, req.Mint); err != nil {
			return notInitialized(err, "token "+req.Mint.String())
		}

		op.txn.DeleteAssetApproval(req.Mint)

		op.emit(types.NewEvent(types.EventTokenBanned, caller.String()).
			With("mint", req.Mint.String()))
		return nil
	})
}
