package services

import (
	"context"
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog/log"
)

// ClaimRefund returns the entry fees the caller paid. Refunds are open for
// every team of a canceled tournament and for incomplete teams otherwise.
func (s *Service) ClaimRefund(ctx context.Context, caller solana.PublicKey, req ClaimRequest) error {
	return s.execute(ctx, types.ActionClaimRefund.String(), caller, func(ctx context.Context, op *operation) error {
		tournament, err := s.loadTournament(ctx, op, req.TournamentID)
		if err != nil {
			return err
		}
		team, idx, err := findParticipant(ctx, op, tournament.ID, req.Captain, caller)
		if err != nil {
			return err
		}

		if tournament.Status != types.StatusCanceled && team.IsComplete(tournament.Config.TeamSize) {
			return fmt.Errorf(
				"%w: tournament %d is %s and the team of %s is complete",
				types.ErrInvalidTournamentStatus, tournament.ID, tournament.Status, req.Captain,
			)
		}
		if team.Participants[idx].Claimed {
			return fmt.Errorf("%w: refund of %s", types.ErrAlreadyClaimed, caller)
		}

		amount, err := refundAmount(tournament, team, idx)
		if err != nil {
			return err
		}
		if err := s.payFromEscrow(ctx, op, tournament, caller, amount); err != nil {
			return err
		}

		team.Participants[idx].Claimed = true
		if !team.Closed {
			team.Closed = true
			tournament.ClosedTeams++
		}
		op.txn.PutTeam(team)

		tournament.RefundsPaid += amount
		op.txn.PutTournament(tournament)

		op.emit(types.NewEvent(types.EventRefundClaimed, caller.String()).
			WithTournament(tournament.ID).
			With("captain", req.Captain.String()).
			WithUint("amount", amount))
		return nil
	})
}

// refundAmount is what the participant at idx paid in: the captain paid for
// every member registered with the team, the others for themselves.
func refundAmount(tournament *model.TournamentDocument, team *model.TeamDocument, idx int) (uint64, error) {
	p := team.Participants[idx]
	if p.Identity == team.Captain {
		var paid uint64
		for _, member := range team.Participants {
			if member.PaidByCaptain {
				paid++
			}
		}
		return mulUint64(tournament.Config.EntryFee, paid)
	}
	if p.PaidByCaptain {
		return 0, nil
	}
	return tournament.Config.EntryFee, nil
}

// ClaimReward pays one share of the recorded reward to a member of the
// winning team.
func (s *Service) ClaimReward(ctx context.Context, caller solana.PublicKey, req ClaimRequest) error {
	return s.execute(ctx, types.ActionClaimReward.String(), caller, func(ctx context.Context, op *operation) error {
		tournament, err := s.loadTournament(ctx, op, req.TournamentID)
		if err != nil {
			return err
		}
		if err := requireStatus(tournament, []types.TournamentStatus{types.StatusFinished}); err != nil {
			return err
		}
		if tournament.Finish == nil {
			return fmt.Errorf("tournament %d finished without finish info", tournament.ID)
		}
		if req.Captain != tournament.Finish.Winner {
			return fmt.Errorf("%w: team of %s", types.ErrNotWinner, req.Captain)
		}

		team, idx, err := findParticipant(ctx, op, tournament.ID, req.Captain, caller)
		if err != nil {
			return err
		}
		if team.Participants[idx].Claimed {
			return fmt.Errorf("%w: reward of %s", types.ErrAlreadyClaimed, caller)
		}

		reward := tournament.Finish.Reward
		if err := s.payFromEscrow(ctx, op, tournament, caller, reward); err != nil {
			return err
		}

		team.Participants[idx].Claimed = true
		op.txn.PutTeam(team)

		tournament.RewardsPaid += reward
		op.txn.PutTournament(tournament)

		op.emit(types.NewEvent(types.EventRewardClaimed, caller.String()).
			WithTournament(tournament.ID).
			WithUint("amount", reward))
		return nil
	})
}

// ClaimSponsorRefund returns the sponsor pool of a canceled tournament.
func (s *Service) ClaimSponsorRefund(ctx context.Context, caller solana.PublicKey, req ClaimSponsorRefundRequest) error {
	return s.execute(ctx, types.ActionClaimSponsorRefund.String(), caller, func(ctx context.Context, op *operation) error {
		tournament, err := s.loadTournament(ctx, op, req.TournamentID)
		if err != nil {
			return err
		}
		if err := requireStatus(tournament, []types.TournamentStatus{types.StatusCanceled}); err != nil {
			return err
		}
		if caller != tournament.Sponsor {
			return fmt.Errorf("%w: %s is not the sponsor", types.ErrNotAllowed, caller)
		}
		if tournament.SponsorRefunded {
			return fmt.Errorf("%w: sponsor pool of tournament %d", types.ErrAlreadyClaimed, tournament.ID)
		}

		amount := tournament.Config.SponsorPool
		if err := s.payFromEscrow(ctx, op, tournament, caller, amount); err != nil {
			return err
		}

		tournament.SponsorRefunded = true
		tournament.RefundsPaid += amount
		op.txn.PutTournament(tournament)

		op.emit(types.NewEvent(types.EventSponsorRefundClaimed, caller.String()).
			WithTournament(tournament.ID).
			WithUint("amount", amount))
		return nil
	})
}

func findParticipant(
	ctx context.Context, op *operation, tournamentID uint32, captain, identity solana.PublicKey,
) (*model.TeamDocument, int, error) {
	team, err := op.txn.Team(ctx, tournamentID, captain)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, 0, fmt.Errorf("%w: no team of %s", types.ErrParticipantNotFound, captain)
		}
		return nil, 0, err
	}
	idx, ok := team.Participant(identity)
	if !ok {
		return nil, 0, fmt.Errorf("%w: %s in team of %s", types.ErrParticipantNotFound, identity, captain)
	}
	return team, idx, nil
}

// payFromEscrow moves amount out of the tournament escrow and keeps the
// prize pool in step with it.
func (s *Service) payFromEscrow(
	ctx context.Context, op *operation, tournament *model.TournamentDocument, to solana.PublicKey, amount uint64,
) error {
	if amount == 0 {
		log.Ctx(ctx).Debug().
			Uint32("tournament_id", tournament.ID).
			Stringer("to", to).
			Msg("Nothing to pay out")
		return nil
	}
	if err := op.ledger.Transfer(ctx, tournament.Escrow, to, tournament.AssetMint, amount); err != nil {
		return err
	}
	tournament.PrizePool -= amount
	return nil
}
