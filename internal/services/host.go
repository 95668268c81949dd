package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// Host ledger operations. They model what the execution environment offers
// outside the engine: minting test balances, delegating an allowance and
// plain transfers.

type CreditRequest struct {
	Owner  solana.PublicKey
	Mint   solana.PublicKey
	Amount uint64
}

type ApproveDelegateRequest struct {
	Delegate solana.PublicKey
	Mint     solana.PublicKey
	Amount   uint64
}

type TransferRequest struct {
	To     solana.PublicKey
	Mint   solana.PublicKey
	Amount uint64
}

// Credit mints tokens. Only the deployer may mint when one is configured.
func (s *Service) Credit(ctx context.Context, caller solana.PublicKey, req CreditRequest) error {
	return s.execute(ctx, types.ActionCredit.String(), caller, func(ctx context.Context, op *operation) error {
		if err := s.requireDeployer(caller, func() error { return nil }); err != nil {
			return err
		}
		return op.ledger.Credit(ctx, req.Owner, req.Mint, req.Amount)
	})
}

// ApproveDelegate lets the delegate spend up to amount of the caller's tokens.
func (s *Service) ApproveDelegate(ctx context.Context, caller solana.PublicKey, req ApproveDelegateRequest) error {
	return s.execute(ctx, types.ActionApproveDelegate.String(), caller, func(ctx context.Context, op *operation) error {
		if req.Delegate == caller {
			return fmt.Errorf("%w: cannot delegate to self", types.ErrInvalidParams)
		}
		return op.ledger.Approve(ctx, caller, req.Delegate, req.Mint, req.Amount)
	})
}

func (s *Service) Transfer(ctx context.Context, caller solana.PublicKey, req TransferRequest) error {
	return s.execute(ctx, types.ActionTransfer.String(), caller, func(ctx context.Context, op *operation) error {
		if req.Amount == 0 {
			return fmt.Errorf("%w: transfer of zero", types.ErrInvalidAmount)
		}
		return op.ledger.Transfer(ctx, caller, req.To, req.Mint, req.Amount)
	})
}
