package db

import (
	"context"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

type DbInterface interface {
	Ping(ctx context.Context) error
	/**
	 * GetGlobalConfig retrieves the singleton global configuration.
	 * @param ctx The context
	 * @return The global configuration or NotFoundError if it was never initialized
	 */
	GetGlobalConfig(ctx context.Context) (*model.GlobalConfigDocument, error)
	GetBridgeConfig(ctx context.Context) (*model.BridgeConfigDocument, error)
	/**
	 * GetRole retrieves the role record of an identity.
	 * @param ctx The context
	 * @param identity The role holder
	 * @param role The role kind
	 * @return The role record or NotFoundError
	 */
	GetRole(ctx context.Context, identity solana.PublicKey, role types.Role) (*model.RoleDocument, error)
	// GetPendingPayout returns the balance owed to an identity whose roles were revoked
	GetPendingPayout(ctx context.Context, identity solana.PublicKey) (*model.PendingPayoutDocument, error)
	GetAssetApproval(ctx context.Context, mint solana.PublicKey) (*model.AssetApprovalDocument, error)
	GetTournament(ctx context.Context, id uint32) (*model.TournamentDocument, error)
	// FindTournaments returns all tournaments ordered by id
	FindTournaments(ctx context.Context) ([]*model.TournamentDocument, error)
	GetTeam(ctx context.Context, tournamentID uint32, captain solana.PublicKey) (*model.TeamDocument, error)
	// FindTeamsByTournament returns the teams of a tournament in registration order
	FindTeamsByTournament(ctx context.Context, tournamentID uint32) ([]*model.TeamDocument, error)
	GetTokenAccount(ctx context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error)
	CountTournamentsByStatus(ctx context.Context) (map[types.TournamentStatus]int64, error)
	/**
	 * Commit persists every mutation of the change set, or none of them.
	 * @param ctx The context
	 * @param cs The change set built by a Txn
	 * @return An error if the change set could not be applied
	 */
	Commit(ctx context.Context, cs *ChangeSet) error
}
