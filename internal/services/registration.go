package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/bloom"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

// RegisterTournament adds the caller to the captain's team, creating the team
// when the caller is the captain. Every added participant's entry fee moves
// into escrow.
func (s *Service) RegisterTournament(ctx context.Context, caller solana.PublicKey, req RegisterTournamentRequest) error {
	return s.execute(ctx, types.ActionRegisterTournament.String(), caller, func(ctx context.Context, op *operation) error {
		tournament, err := s.loadTournament(ctx, op, req.TournamentID)
		if err != nil {
			return err
		}
		if err := requireStatus(tournament, types.QualifiedStatesForRegistration()); err != nil {
			return err
		}

		filter, err := bloom.Decode(tournament.Bloom)
		if err != nil {
			return err
		}

		var added []solana.PublicKey
		if caller == req.Captain {
			added, err = s.registerTeam(ctx, op, tournament, filter, req)
		} else {
			added, err = s.joinTeam(ctx, op, tournament, filter, caller, req.Captain)
		}
		if err != nil {
			return err
		}

		fee, err := mulUint64(tournament.Config.EntryFee, uint64(len(added)))
		if err != nil {
			return err
		}
		if err := op.ledger.Transfer(ctx, caller, tournament.Escrow, tournament.AssetMint, fee); err != nil {
			return err
		}

		for _, participant := range added {
			filter.Add(participant.Bytes())
		}
		if tournament.Bloom, err = filter.Encode(); err != nil {
			return err
		}
		if tournament.PrizePool, err = addUint64(tournament.PrizePool, fee); err != nil {
			return err
		}
		tournament.EntryFeesCollected += fee
		op.txn.PutTournament(tournament)

		for _, participant := range added {
			op.emit(types.NewEvent(types.EventParticipantRegistered, caller.String()).
				WithTournament(tournament.ID).
				With("captain", req.Captain.String()).
				With("participant", participant.String()).
				WithUint("entry_fee", tournament.Config.EntryFee))
		}
		return nil
	})
}

func (s *Service) registerTeam(
	ctx context.Context, op *operation, tournament *model.TournamentDocument,
	filter *bloom.Filter, req RegisterTournamentRequest,
) ([]solana.PublicKey, error) {
	members := append([]solana.PublicKey{req.Captain}, req.Teammates...)
	seen := make(map[solana.PublicKey]bool, len(members))
	for _, member := range members {
		if seen[member] {
			return nil, fmt.Errorf("%w: %s listed twice", types.ErrInvalidParams, member)
		}
		seen[member] = true
	}

	for _, member := range members {
		if err := s.checkNotRegistered(ctx, op, tournament, filter, member); err != nil {
			return nil, err
		}
	}

	if len(members) > int(tournament.Config.TeamSize) {
		return nil, fmt.Errorf("%w: %d members, team size %d", types.ErrMaxPlayersExceeded, len(members), tournament.Config.TeamSize)
	}
	if open := tournament.OpenTeams(); open >= tournament.Config.MaxTeams {
		return nil, fmt.Errorf("%w: %d open teams", types.ErrMaxTeamsReached, open)
	}

	team := &model.TeamDocument{
		ID:           model.TeamID(tournament.ID, req.Captain),
		TournamentID: tournament.ID,
		Captain:      req.Captain,
		Seq:          tournament.TeamCount,
	}
	for _, member := range members {
		team.Participants = append(team.Participants, model.ParticipantInfo{
			Identity:      member,
			PaidByCaptain: true,
		})
	}

	tournament.TeamCount++
	if team.IsComplete(tournament.Config.TeamSize) {
		tournament.CompletedTeams++
	}
	op.txn.PutTeam(team)
	return members, nil
}

func (s *Service) joinTeam(
	ctx context.Context, op *operation, tournament *model.TournamentDocument,
	filter *bloom.Filter, participant, captain solana.PublicKey,
) ([]solana.PublicKey, error) {
	team, err := loadTeam(ctx, op, tournament.ID, captain)
	if err != nil {
		return nil, err
	}
	if team.Closed {
		return nil, fmt.Errorf("%w: team of %s", types.ErrTeamClosed, captain)
	}
	if err := s.checkNotRegistered(ctx, op, tournament, filter, participant); err != nil {
		return nil, err
	}
	if team.IsComplete(tournament.Config.TeamSize) {
		return nil, fmt.Errorf("%w: team of %s is complete", types.ErrMaxPlayersExceeded, captain)
	}

	team.Participants = append(team.Participants, model.ParticipantInfo{Identity: participant})
	if team.IsComplete(tournament.Config.TeamSize) {
		tournament.CompletedTeams++
	}
	op.txn.PutTeam(team)
	return []solana.PublicKey{participant}, nil
}

// checkNotRegistered consults the duplicate filter and falls back to scanning
// the teams only when the filter reports a possible match.
func (s *Service) checkNotRegistered(
	ctx context.Context, op *operation, tournament *model.TournamentDocument,
	filter *bloom.Filter, identity solana.PublicKey,
) error {
	if !filter.MaybeContains(identity.Bytes()) {
		return nil
	}

	teams, err := op.txn.TeamsByTournament(ctx, tournament.ID)
	if err != nil {
		return err
	}
	for _, team := range teams {
		if _, ok := team.Participant(identity); ok {
			return fmt.Errorf("%w: %s in team of %s", types.ErrParticipantAlreadyRegistered, identity, team.Captain)
		}
	}

	metrics.IncBloomFalsePositive()
	log.Ctx(ctx).Debug().
		Uint32("tournament_id", tournament.ID).
		Stringer("participant", identity).
		Msg("Duplicate filter false positive")
	return nil
}

// loadTeam maps a missing team to the existence error.
func loadTeam(ctx context.Context, op *operation, tournamentID uint32, captain solana.PublicKey) (*model.TeamDocument, error) {
	team, err := op.txn.Team(ctx, tournamentID, captain)
	if err != nil {
		return nil, notInitialized(err, fmt.Sprintf("team of %s", captain))
	}
	return team, nil
}
