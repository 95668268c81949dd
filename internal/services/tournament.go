package services

import (
	"context"
	"fmt"
	"math"

	"github.com/NightRunnerEB/Genome-sub000/internal/bloom"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

// validateTournamentConfig applies the creation checks in their documented order.
func (s *Service) validateTournamentConfig(
	c model.TournamentConfig, cfg *model.GlobalConfigDocument, approval *model.AssetApprovalDocument,
) error {
	if c.OrganizerFee > cfg.MaxOrganizerFee {
		return fmt.Errorf("%w: %d above %d", types.ErrInvalidOrganizerFee, c.OrganizerFee, cfg.MaxOrganizerFee)
	}
	if c.EntryFee < approval.MinEntryFee {
		return fmt.Errorf("%w: %d below %d", types.ErrInvalidEntryFee, c.EntryFee, approval.MinEntryFee)
	}
	if c.MinTeams < cfg.MinTeams || c.MinTeams > c.MaxTeams || c.MaxTeams > cfg.MaxTeams {
		return fmt.Errorf(
			"%w: [%d, %d] not within [%d, %d]",
			types.ErrInvalidTeamsCount, c.MinTeams, c.MaxTeams, cfg.MinTeams, cfg.MaxTeams,
		)
	}
	if c.SponsorPool < approval.MinSponsorPool {
		return fmt.Errorf("%w: %d below %d", types.ErrInvalidSponsorPool, c.SponsorPool, approval.MinSponsorPool)
	}
	if c.TeamSize == 0 {
		return fmt.Errorf("%w: team size must be positive", types.ErrInvalidParams)
	}
	players := uint64(c.MaxTeams) * uint64(c.TeamSize)
	if ceiling := bloom.MaxItems(cfg.FalsePrecision); players > ceiling {
		return fmt.Errorf("%w: %d players, ceiling %d", types.ErrMaxPlayersExceeded, players, ceiling)
	}
	if c.ExpirationTime < s.now().Unix() {
		return fmt.Errorf("%w: %d", types.ErrInvalidExpirationTime, c.ExpirationTime)
	}
	return nil
}

// CreateTournament opens a tournament in status New. The organizer pays the
// platform fee and moves the sponsor pool into escrow using the allowance the
// sponsor granted to the organizer.
func (s *Service) CreateTournament(
	ctx context.Context, caller solana.PublicKey, req CreateTournamentRequest,
) (*model.TournamentDocument, error) {
	var created *model.TournamentDocument
	err := s.execute(ctx, types.ActionCreateTournament.String(), caller, func(ctx context.Context, op *operation) error {
		cfg, err := s.globalConfig(ctx, op)
		if err != nil {
			return err
		}
		if _, err := s.requireRole(ctx, op, caller, types.RoleOrganizer); err != nil {
			return err
		}
		approval, err := op.txn.AssetApproval(ctx, req.AssetMint)
		if err != nil {
			return notInitialized(err, "token "+req.AssetMint.String())
		}
		if err := s.validateTournamentConfig(req.Config, cfg, approval); err != nil {
			return err
		}
		if cfg.TournamentNonce == math.MaxUint32 {
			return fmt.Errorf("%w: tournament ids exhausted", types.ErrInvalidParams)
		}

		id := cfg.TournamentNonce
		cfg.TournamentNonce++
		op.txn.PutGlobalConfig(cfg)

		escrow, err := s.tournamentEscrow(id)
		if err != nil {
			return err
		}

		filter, err := bloom.New(uint64(req.Config.MaxTeams)*uint64(req.Config.TeamSize), cfg.FalsePrecision)
		if err != nil {
			return fmt.Errorf("%w: %v", types.ErrInvalidPrecision, err)
		}
		encoded, err := filter.Encode()
		if err != nil {
			return err
		}

		if err := op.ledger.Transfer(ctx, caller, cfg.PlatformWallet, cfg.FeeMint, cfg.PlatformFee); err != nil {
			return err
		}
		if req.Config.SponsorPool > 0 {
			err := op.ledger.TransferFrom(ctx, caller, req.Sponsor, escrow, req.AssetMint, req.Config.SponsorPool)
			if err != nil {
				return err
			}
		}

		created = &model.TournamentDocument{
			ID:          id,
			Organizer:   caller,
			Sponsor:     req.Sponsor,
			AssetMint:   req.AssetMint,
			Escrow:      escrow,
			PlatformFee: cfg.PlatformFee,
			Config:      req.Config,
			Status:      types.StatusNew,
			PrizePool:   req.Config.SponsorPool,
			Votes: model.Votes{
				Start:  []solana.PublicKey{},
				Cancel: []solana.PublicKey{},
				Finish: []model.FinishVote{},
			},
			Bloom:       encoded,
			CreatedAt:   s.now().Unix(),
		}
		op.txn.PutTournament(created)

		log.Ctx(ctx).Debug().
			Uint32("tournament_id", id).
			Stringer("escrow", escrow).
			Uint("bloom_bits", filter.Cap()).
			Msg("Tournament escrow prepared")

		op.emit(types.NewEvent(types.EventTournamentCreated, caller.String()).
			WithTournament(id).
			With("sponsor", req.Sponsor.String()).
			With("asset_mint", req.AssetMint.String()).
			WithUint("sponsor_pool", req.Config.SponsorPool).
			WithUint("entry_fee", req.Config.EntryFee))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// loadTournament maps a missing tournament to the existence error.
func (s *Service) loadTournament(ctx context.Context, op *operation, id uint32) (*model.TournamentDocument, error) {
	tournament, err := op.txn.Tournament(ctx, id)
	if err != nil {
		return nil, notInitialized(err, fmt.Sprintf("tournament %d", id))
	}
	return tournament, nil
}

func requireStatus(tournament *model.TournamentDocument, qualified []types.TournamentStatus) error {
	for _, status := range qualified {
		if tournament.Status == status {
			return nil
		}
	}
	return fmt.Errorf("%w: tournament %d is %s", types.ErrInvalidTournamentStatus, tournament.ID, tournament.Status)
}
