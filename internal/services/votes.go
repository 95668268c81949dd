package services

import (
	"context"
	"fmt"
	"slices"

	sdkmath "cosmossdk.io/math"
	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/observability/metrics"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/NightRunnerEB/Genome-sub000/internal/utils/state"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

func (s *Service) StartTournament(ctx context.Context, caller solana.PublicKey, req VoteRequest) error {
	return s.execute(ctx, types.ActionStartTournament.String(), caller, func(ctx context.Context, op *operation) error {
		return s.vote(ctx, op, caller, req.TournamentID, types.TransitionStart, solana.PublicKey{})
	})
}

func (s *Service) FinishTournament(ctx context.Context, caller solana.PublicKey, req FinishTournamentRequest) error {
	return s.execute(ctx, types.ActionFinishTournament.String(), caller, func(ctx context.Context, op *operation) error {
		return s.vote(ctx, op, caller, req.TournamentID, types.TransitionFinish, req.Winner)
	})
}

func (s *Service) CancelTournament(ctx context.Context, caller solana.PublicKey, req VoteRequest) error {
	return s.execute(ctx, types.ActionCancelTournament.String(), caller, func(ctx context.Context, op *operation) error {
		return s.vote(ctx, op, caller, req.TournamentID, types.TransitionCancel, solana.PublicKey{})
	})
}

// vote records one ballot of a roster verifier, pays the per-vote fee and
// commits the transition once consensus is reached.
func (s *Service) vote(
	ctx context.Context, op *operation, verifier solana.PublicKey,
	tournamentID uint32, transition types.Transition, winner solana.PublicKey,
) error {
	log := log.Ctx(ctx).With().
		Uint32("tournament_id", tournamentID).
		Str("transition", transition.String()).
		Logger()

	cfg, err := s.globalConfig(ctx, op)
	if err != nil {
		return err
	}
	if _, err := s.requireRole(ctx, op, verifier, types.RoleVerifier); err != nil {
		return err
	}
	if !cfg.IsVerifier(verifier) {
		return fmt.Errorf("%w: %s is not in the verifier roster", types.ErrNotAllowed, verifier)
	}

	tournament, err := s.loadTournament(ctx, op, tournamentID)
	if err != nil {
		return err
	}
	if err := requireStatus(tournament, types.QualifiedStatesForTransition(transition)); err != nil {
		return err
	}
	if slices.Contains(votersFor(&tournament.Votes, transition), verifier) {
		return fmt.Errorf("%w: %s on %s of tournament %d", types.ErrVerifierAlreadyVoted, verifier, transition, tournamentID)
	}

	switch transition {
	case types.TransitionStart:
		if tournament.CompletedTeams == 0 {
			return fmt.Errorf("%w: tournament %d", types.ErrNoCompletedTeams, tournamentID)
		}
	case types.TransitionFinish:
		if err := s.validateWinner(ctx, op, tournament, winner); err != nil {
			return err
		}
	}

	recordVote(&tournament.Votes, transition, verifier, winner)
	if err := s.accrueClaim(ctx, op, verifier, types.RoleVerifier, cfg.VerifierFee); err != nil {
		return err
	}
	metrics.RecordVote(transition.String())

	voteEvent := types.NewEvent(types.EventVoteCast, verifier.String()).
		WithTournament(tournamentID).
		With("transition", transition.String())
	if transition == types.TransitionFinish {
		voteEvent.With("winner", winner.String())
	}
	op.emit(voteEvent)

	voters := votersFor(&tournament.Votes, transition)
	if transition == types.TransitionFinish {
		voters = votersForWinner(&tournament.Votes, winner)
	}
	if !consensusReached(voters, cfg.Verifiers, cfg.ConsensusRate) {
		log.Debug().
			Int("votes", len(voters)).
			Int("roster", len(cfg.Verifiers)).
			Msg("Vote recorded, consensus not reached")
		op.txn.PutTournament(tournament)
		return nil
	}

	if err := s.commitTransition(ctx, op, tournament, verifier, transition, winner); err != nil {
		return err
	}
	op.txn.PutTournament(tournament)

	log.Info().
		Int("votes", len(voters)).
		Int("roster", len(cfg.Verifiers)).
		Str("status", tournament.Status.String()).
		Msg("Consensus reached")
	return nil
}

func (s *Service) validateWinner(
	ctx context.Context, op *operation, tournament *model.TournamentDocument, winner solana.PublicKey,
) error {
	team, err := op.txn.Team(ctx, tournament.ID, winner)
	if err != nil {
		if db.IsNotFoundError(err) {
			return fmt.Errorf("%w: %s has no team", types.ErrInvalidWinner, winner)
		}
		return err
	}
	if !team.IsComplete(tournament.Config.TeamSize) {
		return fmt.Errorf("%w: team of %s is incomplete", types.ErrInvalidWinner, winner)
	}
	return nil
}

func (s *Service) commitTransition(
	ctx context.Context, op *operation,
	tournament *model.TournamentDocument, verifier solana.PublicKey,
	transition types.Transition, winner solana.PublicKey,
) error {
	target := transition.Target()
	if !state.IsQualifiedStateForTournamentStateChange(tournament.Status, target) {
		return fmt.Errorf("%w: %s to %s", types.ErrInvalidTournamentStatus, tournament.Status, target)
	}

	event := types.NewEvent(types.EventForTransition(transition), verifier.String()).
		WithTournament(tournament.ID)

	switch transition {
	case types.TransitionFinish:
		info, err := s.settleFinish(ctx, op, tournament, winner)
		if err != nil {
			return err
		}
		event.With("winner", winner.String()).
			WithUint("reward", info.Reward).
			WithUint("organizer_reward", info.OrganizerReward)
	case types.TransitionCancel:
		err := s.accrueClaim(ctx, op, tournament.Organizer, types.RoleOrganizer, tournament.PlatformFee)
		if db.IsNotFoundError(err) {
			log.Ctx(ctx).Warn().
				Stringer("organizer", tournament.Organizer).
				Msg("Organizer role is gone, platform fee is not credited")
		} else if err != nil {
			return err
		}
	}

	tournament.Status = target
	clearVotes(&tournament.Votes, transition)
	op.emit(event)
	return nil
}

// settleFinish records the reward split and pays the organizer. The pool
// covers the sponsor pool and the entry fees of completed teams.
func (s *Service) settleFinish(
	ctx context.Context, op *operation, tournament *model.TournamentDocument, winner solana.PublicKey,
) (*model.FinishInfo, error) {
	c := tournament.Config
	entries := sdkmath.NewIntFromUint64(c.EntryFee).
		Mul(sdkmath.NewInt(int64(tournament.CompletedTeams))).
		Mul(sdkmath.NewInt(int64(c.TeamSize)))
	pool := sdkmath.NewIntFromUint64(c.SponsorPool).Add(entries)

	organizerReward := pool.Mul(sdkmath.NewIntFromUint64(c.OrganizerFee)).QuoRaw(basisPoints)
	reward := pool.Sub(organizerReward).QuoRaw(int64(c.TeamSize))

	if !organizerReward.IsUint64() || !reward.IsUint64() {
		return nil, fmt.Errorf("%w: reward overflow", types.ErrInvalidAmount)
	}

	info := &model.FinishInfo{
		Winner:          winner,
		Reward:          reward.Uint64(),
		OrganizerReward: organizerReward.Uint64(),
	}

	if err := s.payFromEscrow(ctx, op, tournament, tournament.Organizer, info.OrganizerReward); err != nil {
		return nil, err
	}
	tournament.RewardsPaid += info.OrganizerReward

	tournament.Finish = info
	return info, nil
}
