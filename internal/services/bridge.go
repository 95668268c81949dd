package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// InitializeBridge creates the bridge collaborator record. Only its
// authorization contract is enforced here.
func (s *Service) InitializeBridge(ctx context.Context, caller solana.PublicKey, req InitializeBridgeRequest) error {
	return s.execute(ctx, types.ActionInitializeBridge.String(), caller, func(ctx context.Context, op *operation) error {
		err := s.requireDeployer(caller, func() error {
			cfg, err := s.globalConfig(ctx, op)
			if err != nil {
				return err
			}
			return s.requireAdmin(ctx, op, cfg, caller)
		})
		if err != nil {
			return err
		}

		_, err = op.txn.BridgeConfig(ctx)
		if err == nil {
			return fmt.Errorf("%w: bridge config", types.ErrAlreadyInitialized)
		}
		if !db.IsNotFoundError(err) {
			return err
		}

		if req.Admin.IsZero() {
			return fmt.Errorf("%w: bridge admin is required", types.ErrInvalidParams)
		}

		op.txn.PutBridgeConfig(&model.BridgeConfigDocument{
			ID:         model.BridgeConfigID,
			Admin:      req.Admin,
			UtsProgram: req.UtsProgram,
			BridgeFee:  req.BridgeFee,
			ChainID:    req.ChainID,
		})

		op.emit(types.NewEvent(types.EventBridgeInitialized, caller.String()).
			With("admin", req.Admin.String()).
			WithUint("bridge_fee", req.BridgeFee).
			WithUint("chain_id", req.ChainID))
		return nil
	})
}

func (s *Service) SetBridgeFee(ctx context.Context, caller solana.PublicKey, req SetBridgeFeeRequest) error {
	return s.execute(ctx, types.ActionSetBridgeFee.String(), caller, func(ctx context.Context, op *operation) error {
		bridge, err := op.txn.BridgeConfig(ctx)
		if err != nil {
			return notInitialized(err, "bridge config")
		}
		if caller != bridge.Admin {
			return fmt.Errorf("%w: %s is not the bridge admin", types.ErrNotAllowed, caller)
		}

		bridge.BridgeFee = req.Fee
		op.txn.PutBridgeConfig(bridge)

		op.emit(types.NewEvent(types.EventBridgeFeeSet, caller.String()).
			WithUint("bridge_fee", req.Fee))
		return nil
	})
}
