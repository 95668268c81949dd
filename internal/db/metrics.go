package db

import (
	"context"
	"time"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetGlobalConfig(ctx context.Context) (result *model.GlobalConfigDocument, err error) {
	//nolint:errcheck
	d.run("GetGlobalConfig", func() error {
		result, err = d.db.GetGlobalConfig(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetBridgeConfig(ctx context.Context) (result *model.BridgeConfigDocument, err error) {
	//nolint:errcheck
	d.run("GetBridgeConfig", func() error {
		result, err = d.db.GetBridgeConfig(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetRole(ctx context.Context, identity solana.PublicKey, role types.Role) (result *model.RoleDocument, err error) {
	//nolint:errcheck
	d.run("GetRole", func() error {
		result, err = d.db.GetRole(ctx, identity, role)
		return err
	})
	return
}

func (d *DbWithMetrics) GetPendingPayout(ctx context.Context, identity solana.PublicKey) (result *model.PendingPayoutDocument, err error) {
	//nolint:errcheck
	d.run("GetPendingPayout", func() error {
		result, err = d.db.GetPendingPayout(ctx, identity)
		return err
	})
	return
}

func (d *DbWithMetrics) GetAssetApproval(ctx context.Context, mint solana.PublicKey) (result *model.AssetApprovalDocument, err error) {
	//nolint:errcheck
	d.run("GetAssetApproval", func() error {
		result, err = d.db.GetAssetApproval(ctx, mint)
		return err
	})
	return
}

func (d *DbWithMetrics) GetTournament(ctx context.Context, id uint32) (result *model.TournamentDocument, err error) {
	//nolint:errcheck
	d.run("GetTournament", func() error {
		result, err = d.db.GetTournament(ctx, id)
		return err
	})
	return
}

func (d *DbWithMetrics) FindTournaments(ctx context.Context) (result []*model.TournamentDocument, err error) {
	//nolint:errcheck
	d.run("FindTournaments", func() error {
		result, err = d.db.FindTournaments(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetTeam(ctx context.Context, tournamentID uint32, captain solana.PublicKey) (result *model.TeamDocument, err error) {
	//nolint:errcheck
	d.run("GetTeam", func() error {
		result, err = d.db.GetTeam(ctx, tournamentID, captain)
		return err
	})
	return
}

func (d *DbWithMetrics) FindTeamsByTournament(ctx context.Context, tournamentID uint32) (result []*model.TeamDocument, err error) {
	//nolint:errcheck
	d.run("FindTeamsByTournament", func() error {
		result, err = d.db.FindTeamsByTournament(ctx, tournamentID)
		return err
	})
	return
}

func (d *DbWithMetrics) GetTokenAccount(ctx context.Context, owner, mint solana.PublicKey) (result *model.TokenAccountDocument, err error) {
	//nolint:errcheck
	d.run("GetTokenAccount", func() error {
		result, err = d.db.GetTokenAccount(ctx, owner, mint)
		return err
	})
	return
}

func (d *DbWithMetrics) CountTournamentsByStatus(ctx context.Context) (result map[types.TournamentStatus]int64, err error) {
	//nolint:errcheck
	d.run("CountTournamentsByStatus", func() error {
		result, err = d.db.CountTournamentsByStatus(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) Commit(ctx context.Context, cs *ChangeSet) error {
	return d.run("Commit", func() error {
		return d.db.Commit(ctx, cs)
	})
}

// run records latency of f under method; not-found lookups are not failures.
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil && !IsNotFoundError(err))
	return err
}
