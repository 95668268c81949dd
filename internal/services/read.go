package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// Point lookups. None of them takes the operation lock or writes.

func (s *Service) GetGlobalConfig(ctx context.Context) (*model.GlobalConfigDocument, error) {
	doc, err := s.db.GetGlobalConfig(ctx)
	return doc, notInitialized(err, "global config")
}

func (s *Service) GetBridgeConfig(ctx context.Context) (*model.BridgeConfigDocument, error) {
	doc, err := s.db.GetBridgeConfig(ctx)
	return doc, notInitialized(err, "bridge config")
}

func (s *Service) GetTournament(ctx context.Context, id uint32) (*model.TournamentDocument, error) {
	doc, err := s.db.GetTournament(ctx, id)
	return doc, notInitialized(err, fmt.Sprintf("tournament %d", id))
}

func (s *Service) GetTeam(ctx context.Context, tournamentID uint32, captain solana.PublicKey) (*model.TeamDocument, error) {
	doc, err := s.db.GetTeam(ctx, tournamentID, captain)
	return doc, notInitialized(err, fmt.Sprintf("team of %s", captain))
}

func (s *Service) GetRole(ctx context.Context, identity solana.PublicKey, role types.Role) (*model.RoleDocument, error) {
	doc, err := s.db.GetRole(ctx, identity, role)
	return doc, notInitialized(err, fmt.Sprintf("role %s of %s", role, identity))
}

func (s *Service) GetAssetApproval(ctx context.Context, mint solana.PublicKey) (*model.AssetApprovalDocument, error) {
	doc, err := s.db.GetAssetApproval(ctx, mint)
	return doc, notInitialized(err, "token "+mint.String())
}

// GetPendingPayout returns a zero payout for identities that are owed nothing.
func (s *Service) GetPendingPayout(ctx context.Context, identity solana.PublicKey) (*model.PendingPayoutDocument, error) {
	doc, err := s.db.GetPendingPayout(ctx, identity)
	if err != nil {
		if db.IsNotFoundError(err) {
			return &model.PendingPayoutDocument{ID: identity.String(), Identity: identity}, nil
		}
		return nil, err
	}
	return doc, nil
}

// GetTokenAccount returns an empty account for owners that never held the mint.
func (s *Service) GetTokenAccount(ctx context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error) {
	doc, err := s.db.GetTokenAccount(ctx, owner, mint)
	if err != nil {
		if db.IsNotFoundError(err) {
			return &model.TokenAccountDocument{
				ID:    model.TokenAccountID(owner, mint),
				Owner: owner,
				Mint:  mint,
			}, nil
		}
		return nil, err
	}
	return doc, nil
}
