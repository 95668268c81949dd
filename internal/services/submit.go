package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// Action is a named operation submitted on behalf of Caller. Payload holds
// the request struct of the operation, by value or by pointer.
type Action struct {
	Name    types.ActionName
	Caller  solana.PublicKey
	Payload any
}

// Result acknowledges a committed action with the state of the record it
// targeted.
type Result struct {
	Action   types.ActionName
	Snapshot any
}

type handler func(ctx context.Context, caller solana.PublicKey, payload any) (any, error)

// Submit dispatches the action to its operation.
func (s *Service) Submit(ctx context.Context, action Action) (*Result, error) {
	h, ok := s.handlers()[action.Name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown action %q", types.ErrInvalidParams, action.Name)
	}
	snapshot, err := h(ctx, action.Caller, action.Payload)
	if err != nil {
		return nil, err
	}
	return &Result{Action: action.Name, Snapshot: snapshot}, nil
}

func payloadAs[T any](payload any) (T, error) {
	switch p := payload.(type) {
	case T:
		return p, nil
	case *T:
		if p != nil {
			return *p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: payload %T, want %T", types.ErrInvalidParams, payload, zero)
}

// bind adapts an operation and the read of its target record to a handler.
func bind[T any](
	op func(context.Context, solana.PublicKey, T) error,
	snapshot func(context.Context, solana.PublicKey, T) (any, error),
) handler {
	return func(ctx context.Context, caller solana.PublicKey, payload any) (any, error) {
		req, err := payloadAs[T](payload)
		if err != nil {
			return nil, err
		}
		if err := op(ctx, caller, req); err != nil {
			return nil, err
		}
		return snapshot(ctx, caller, req)
	}
}

func (s *Service) handlers() map[types.ActionName]handler {
	globalConfig := func(ctx context.Context) (any, error) { return s.GetGlobalConfig(ctx) }
	bridgeConfig := func(ctx context.Context) (any, error) { return s.GetBridgeConfig(ctx) }
	tournament := func(ctx context.Context, id uint32) (any, error) { return s.GetTournament(ctx, id) }

	return map[types.ActionName]handler{
		types.ActionInitialize: bind(s.Initialize,
			func(ctx context.Context, _ solana.PublicKey, _ InitializeRequest) (any, error) { return globalConfig(ctx) }),
		types.ActionSetBloomPrecision: bind(s.SetBloomPrecision,
			func(ctx context.Context, _ solana.PublicKey, _ SetBloomPrecisionRequest) (any, error) { return globalConfig(ctx) }),
		types.ActionWithdrawPlatformFee: bind(s.WithdrawPlatformFee,
			func(ctx context.Context, _ solana.PublicKey, _ WithdrawPlatformFeeRequest) (any, error) { return globalConfig(ctx) }),
		types.ActionInitializeBridge: bind(s.InitializeBridge,
			func(ctx context.Context, _ solana.PublicKey, _ InitializeBridgeRequest) (any, error) { return bridgeConfig(ctx) }),
		types.ActionSetBridgeFee: bind(s.SetBridgeFee,
			func(ctx context.Context, _ solana.PublicKey, _ SetBridgeFeeRequest) (any, error) { return bridgeConfig(ctx) }),

		types.ActionGrantRole: bind(s.GrantRole,
			func(ctx context.Context, _ solana.PublicKey, req RoleRequest) (any, error) {
				return s.GetRole(ctx, req.Target, req.Role)
			}),
		// the revoked record is gone, the roster may have changed
		types.ActionRevokeRole: bind(s.RevokeRole,
			func(ctx context.Context, _ solana.PublicKey, _ RoleRequest) (any, error) { return globalConfig(ctx) }),
		types.ActionClaimRoleFund: bind(s.ClaimRoleFund,
			func(ctx context.Context, caller solana.PublicKey, req ClaimRoleFundRequest) (any, error) {
				return s.GetRole(ctx, caller, req.Role)
			}),
		types.ActionClaimPendingPayout: bind(s.ClaimPendingPayout,
			func(ctx context.Context, caller solana.PublicKey, _ ClaimPendingPayoutRequest) (any, error) {
				return s.GetPendingPayout(ctx, caller)
			}),

		types.ActionApproveToken: bind(s.ApproveToken,
			func(ctx context.Context, _ solana.PublicKey, req ApproveTokenRequest) (any, error) {
				return s.GetAssetApproval(ctx, req.Mint)
			}),
		types.ActionBanToken: bind(s.BanToken,
			func(context.Context, solana.PublicKey, BanTokenRequest) (any, error) { return nil, nil }),

		types.ActionCreateTournament: func(ctx context.Context, caller solana.PublicKey, payload any) (any, error) {
			req, err := payloadAs[CreateTournamentRequest](payload)
			if err != nil {
				return nil, err
			}
			return s.CreateTournament(ctx, caller, req)
		},
		types.ActionRegisterTournament: bind(s.RegisterTournament,
			func(ctx context.Context, _ solana.PublicKey, req RegisterTournamentRequest) (any, error) {
				return s.GetTeam(ctx, req.TournamentID, req.Captain)
			}),
		types.ActionStartTournament: bind(s.StartTournament,
			func(ctx context.Context, _ solana.PublicKey, req VoteRequest) (any, error) { return tournament(ctx, req.TournamentID) }),
		types.ActionFinishTournament: bind(s.FinishTournament,
			func(ctx context.Context, _ solana.PublicKey, req FinishTournamentRequest) (any, error) {
				return tournament(ctx, req.TournamentID)
			}),
		types.ActionCancelTournament: bind(s.CancelTournament,
			func(ctx context.Context, _ solana.PublicKey, req VoteRequest) (any, error) { return tournament(ctx, req.TournamentID) }),
		types.ActionClaimRefund: bind(s.ClaimRefund,
			func(ctx context.Context, _ solana.PublicKey, req ClaimRequest) (any, error) {
				return s.GetTeam(ctx, req.TournamentID, req.Captain)
			}),
		types.ActionClaimReward: bind(s.ClaimReward,
			func(ctx context.Context, _ solana.PublicKey, req ClaimRequest) (any, error) {
				return s.GetTeam(ctx, req.TournamentID, req.Captain)
			}),
		types.ActionClaimSponsorRefund: bind(s.ClaimSponsorRefund,
			func(ctx context.Context, _ solana.PublicKey, req ClaimSponsorRefundRequest) (any, error) {
				return tournament(ctx, req.TournamentID)
			}),

		types.ActionCredit: bind(s.Credit,
			func(ctx context.Context, _ solana.PublicKey, req CreditRequest) (any, error) {
				return s.GetTokenAccount(ctx, req.Owner, req.Mint)
			}),
		types.ActionApproveDelegate: bind(s.ApproveDelegate,
			func(ctx context.Context, caller solana.PublicKey, req ApproveDelegateRequest) (any, error) {
				return s.GetTokenAccount(ctx, caller, req.Mint)
			}),
		types.ActionTransfer: bind(s.Transfer,
			func(ctx context.Context, caller solana.PublicKey, req TransferRequest) (any, error) {
				return s.GetTokenAccount(ctx, caller, req.Mint)
			}),
	}
}
