package services

import (
	"testing"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTeams registers one complete team and returns its captain.
func setupTeams(t *testing.T, h *harness, id uint32) (captain, mate solana.PublicKey) {
	t.Helper()
	captain, mate = h.player(), h.player()
	require.NoError(t, h.register(captain, id, captain, mate))
	return captain, mate
}

func TestStartTournament(t *testing.T) {
	h := newHarness(t)
	id := h.mustCreateTournament()

	start := func(verifier solana.PublicKey) error {
		return h.svc.StartTournament(h.ctx, verifier, VoteRequest{TournamentID: id})
	}

	t.Run("no completed teams", func(t *testing.T) {
		captain := h.player()
		require.NoError(t, h.register(captain, id, captain))
		err := start(h.verifiers[0])
		require.ErrorIs(t, err, types.ErrNoCompletedTeams)
		assert.Equal(t, types.KindState, types.KindOf(err))
	})

	setupTeams(t, h, id)

	t.Run("non verifier rejected", func(t *testing.T) {
		require.ErrorIs(t, start(h.organizer), types.ErrNotAllowed)
	})

	t.Run("one vote of three at 60% keeps status", func(t *testing.T) {
		require.NoError(t, start(h.verifiers[0]))
		assert.Equal(t, types.StatusNew, h.tournament(id).Status)
	})

	t.Run("double vote rejected and paid once", func(t *testing.T) {
		err := start(h.verifiers[0])
		require.ErrorIs(t, err, types.ErrVerifierAlreadyVoted)
		assert.Equal(t, uint64(testVerifierFee), h.claimable(h.verifiers[0], types.RoleVerifier))
	})

	t.Run("second vote commits the transition", func(t *testing.T) {
		require.NoError(t, start(h.verifiers[1]))
		tournament := h.tournament(id)
		assert.Equal(t, types.StatusStarted, tournament.Status)
		assert.Empty(t, tournament.Votes.Start)
		assert.Len(t, h.publisher.ofType(types.EventTournamentStarted), 1)
		assert.Len(t, h.publisher.ofType(types.EventVoteCast), 2)
	})

	t.Run("late vote against a started tournament", func(t *testing.T) {
		err := start(h.verifiers[2])
		require.ErrorIs(t, err, types.ErrInvalidTournamentStatus)
		assert.Zero(t, h.claimable(h.verifiers[2], types.RoleVerifier))
	})

	t.Run("registration closed", func(t *testing.T) {
		captain := h.player()
		require.ErrorIs(t, h.register(captain, id, captain), types.ErrInvalidTournamentStatus)
	})
}

func TestFinishTournament(t *testing.T) {
	h := newHarness(t)
	id := h.mustCreateTournament()

	captainA, mateA := setupTeams(t, h, id)
	captainB, _ := setupTeams(t, h, id)
	captainC := h.player()
	require.NoError(t, h.register(captainC, id, captainC))

	finish := func(verifier, winner solana.PublicKey) error {
		return h.svc.FinishTournament(h.ctx, verifier, FinishTournamentRequest{TournamentID: id, Winner: winner})
	}

	t.Run("finish before start", func(t *testing.T) {
		require.ErrorIs(t, finish(h.verifiers[0], captainA), types.ErrInvalidTournamentStatus)
	})

	require.NoError(t, h.svc.StartTournament(h.ctx, h.verifiers[0], VoteRequest{TournamentID: id}))
	require.NoError(t, h.svc.StartTournament(h.ctx, h.verifiers[1], VoteRequest{TournamentID: id}))

	t.Run("winner must lead a complete team", func(t *testing.T) {
		require.ErrorIs(t, finish(h.verifiers[0], captainC), types.ErrInvalidWinner)
		require.ErrorIs(t, finish(h.verifiers[0], newKey(t)), types.ErrInvalidWinner)
	})

	t.Run("votes are tallied per winner", func(t *testing.T) {
		require.NoError(t, finish(h.verifiers[0], captainA))
		require.NoError(t, finish(h.verifiers[1], captainB))
		assert.Equal(t, types.StatusStarted, h.tournament(id).Status)

		require.ErrorIs(t, finish(h.verifiers[1], captainA), types.ErrVerifierAlreadyVoted)
	})

	t.Run("consensus on a winner settles the organizer", func(t *testing.T) {
		organizerBefore := h.balance(h.organizer, h.asset)
		require.NoError(t, finish(h.verifiers[2], captainA))

		tournament := h.tournament(id)
		require.Equal(t, types.StatusFinished, tournament.Status)
		require.NotNil(t, tournament.Finish)
		assert.Equal(t, captainA, tournament.Finish.Winner)

		// pool = 1000 + 100 * 2 teams * 2 players = 1400
		assert.Equal(t, uint64(140), tournament.Finish.OrganizerReward)
		assert.Equal(t, uint64(630), tournament.Finish.Reward)
		assert.Equal(t, organizerBefore+140, h.balance(h.organizer, h.asset))
		assert.Empty(t, tournament.Votes.Finish)
		h.requirePoolConsistent(id)
	})

	t.Run("every accepted vote paid the verifier", func(t *testing.T) {
		assert.Equal(t, uint64(2*testVerifierFee), h.claimable(h.verifiers[0], types.RoleVerifier))
		assert.Equal(t, uint64(2*testVerifierFee), h.claimable(h.verifiers[1], types.RoleVerifier))
		assert.Equal(t, uint64(testVerifierFee), h.claimable(h.verifiers[2], types.RoleVerifier))
	})

	t.Run("rewards", func(t *testing.T) {
		claim := func(caller, captain solana.PublicKey) error {
			return h.svc.ClaimReward(h.ctx, caller, ClaimRequest{TournamentID: id, Captain: captain})
		}

		require.ErrorIs(t, claim(captainB, captainB), types.ErrNotWinner)
		require.ErrorIs(t, claim(captainB, captainA), types.ErrParticipantNotFound)

		before := h.balance(mateA, h.asset)
		require.NoError(t, claim(mateA, captainA))
		assert.Equal(t, before+630, h.balance(mateA, h.asset))
		require.ErrorIs(t, claim(mateA, captainA), types.ErrAlreadyClaimed)
		assert.Equal(t, before+630, h.balance(mateA, h.asset))

		require.NoError(t, claim(captainA, captainA))
		h.requirePoolConsistent(id)
	})

	t.Run("incomplete team refunds after finish", func(t *testing.T) {
		require.NoError(t, h.svc.ClaimRefund(h.ctx, captainC, ClaimRequest{TournamentID: id, Captain: captainC}))
		tournament := h.tournament(id)
		assert.Zero(t, tournament.PrizePool)
		assert.Zero(t, h.balance(tournament.Escrow, h.asset))
		h.requirePoolConsistent(id)
	})

	t.Run("cancel after finish", func(t *testing.T) {
		err := h.svc.CancelTournament(h.ctx, h.verifiers[0], VoteRequest{TournamentID: id})
		require.ErrorIs(t, err, types.ErrInvalidTournamentStatus)
	})
}

func TestCancelTournament(t *testing.T) {
	h := newHarness(t)
	id := h.mustCreateTournament()
	captainA, mateA := setupTeams(t, h, id)

	cancel := func(verifier solana.PublicKey) error {
		return h.svc.CancelTournament(h.ctx, verifier, VoteRequest{TournamentID: id})
	}

	t.Run("pending start votes survive a cancel vote", func(t *testing.T) {
		require.NoError(t, h.svc.StartTournament(h.ctx, h.verifiers[2], VoteRequest{TournamentID: id}))
		require.NoError(t, cancel(h.verifiers[0]))
		tournament := h.tournament(id)
		assert.Len(t, tournament.Votes.Start, 1)
		assert.Len(t, tournament.Votes.Cancel, 1)
	})

	t.Run("consensus cancels and credits the organizer", func(t *testing.T) {
		require.NoError(t, cancel(h.verifiers[1]))
		tournament := h.tournament(id)
		assert.Equal(t, types.StatusCanceled, tournament.Status)
		assert.Empty(t, tournament.Votes.Cancel)
		assert.Equal(t, uint64(testPlatformFee), h.claimable(h.organizer, types.RoleOrganizer))
		assert.Len(t, h.publisher.ofType(types.EventTournamentCanceled), 1)
	})

	t.Run("refunds", func(t *testing.T) {
		claim := func(caller solana.PublicKey) error {
			return h.svc.ClaimRefund(h.ctx, caller, ClaimRequest{TournamentID: id, Captain: captainA})
		}

		before := h.balance(captainA, h.asset)
		require.NoError(t, claim(captainA))
		assert.Equal(t, before+2*testEntryFee, h.balance(captainA, h.asset))

		err := claim(captainA)
		require.ErrorIs(t, err, types.ErrAlreadyClaimed)
		assert.Equal(t, before+2*testEntryFee, h.balance(captainA, h.asset))

		mateBefore := h.balance(mateA, h.asset)
		require.NoError(t, claim(mateA))
		assert.Equal(t, mateBefore, h.balance(mateA, h.asset))

		require.ErrorIs(t, claim(newKey(t)), types.ErrParticipantNotFound)
		h.requirePoolConsistent(id)
	})

	t.Run("sponsor refund", func(t *testing.T) {
		claim := func(caller solana.PublicKey) error {
			return h.svc.ClaimSponsorRefund(h.ctx, caller, ClaimSponsorRefundRequest{TournamentID: id})
		}
		require.ErrorIs(t, claim(h.organizer), types.ErrNotAllowed)

		before := h.balance(h.sponsor, h.asset)
		require.NoError(t, claim(h.sponsor))
		assert.Equal(t, before+testSponsorPool, h.balance(h.sponsor, h.asset))
		require.ErrorIs(t, claim(h.sponsor), types.ErrAlreadyClaimed)

		tournament := h.tournament(id)
		assert.Zero(t, tournament.PrizePool)
		h.requirePoolConsistent(id)
	})

	t.Run("organizer claims the credited fee", func(t *testing.T) {
		before := h.balance(h.organizer, h.feeMint)
		err := h.svc.ClaimRoleFund(h.ctx, h.organizer, ClaimRoleFundRequest{Role: types.RoleOrganizer, Amount: testPlatformFee})
		require.NoError(t, err)
		assert.Equal(t, before+testPlatformFee, h.balance(h.organizer, h.feeMint))
	})
}

func TestCancelCreditsFeePaidAtCreation(t *testing.T) {
	h := newHarness(t)
	id := h.mustCreateTournament()

	t.Run("fee is recorded on the tournament", func(t *testing.T) {
		assert.Equal(t, uint64(testPlatformFee), h.tournament(id).PlatformFee)
	})
	t.Run("later fee changes do not reach the accrual", func(t *testing.T) {
		txn := db.NewTxn(h.db)
		cfg, err := txn.GlobalConfig(h.ctx)
		require.NoError(t, err)
		cfg.PlatformFee = 3 * testPlatformFee
		txn.PutGlobalConfig(cfg)
		require.NoError(t, txn.Commit(h.ctx))

		for _, verifier := range h.verifiers[:2] {
			require.NoError(t, h.svc.CancelTournament(h.ctx, verifier, VoteRequest{TournamentID: id}))
		}
		assert.Equal(t, types.StatusCanceled, h.tournament(id).Status)
		assert.Equal(t, uint64(testPlatformFee), h.claimable(h.organizer, types.RoleOrganizer))
	})
}

func TestRefundRules(t *testing.T) {
	h := newHarness(t)
	id := h.mustCreateTournament()
	captainA, _ := setupTeams(t, h, id)
	captainB := h.player()
	require.NoError(t, h.register(captainB, id, captainB))

	claim := func(caller, captain solana.PublicKey) error {
		return h.svc.ClaimRefund(h.ctx, caller, ClaimRequest{TournamentID: id, Captain: captain})
	}

	t.Run("complete team cannot refund while running", func(t *testing.T) {
		require.ErrorIs(t, claim(captainA, captainA), types.ErrInvalidTournamentStatus)
	})

	t.Run("incomplete team refunds and closes", func(t *testing.T) {
		before := h.balance(captainB, h.asset)
		require.NoError(t, claim(captainB, captainB))
		assert.Equal(t, before+testEntryFee, h.balance(captainB, h.asset))

		team, err := h.svc.GetTeam(h.ctx, id, captainB)
		require.NoError(t, err)
		assert.True(t, team.Closed)

		require.ErrorIs(t, h.register(h.player(), id, captainB), types.ErrTeamClosed)
		h.requirePoolConsistent(id)
	})

	t.Run("sponsor refund needs a canceled tournament", func(t *testing.T) {
		err := h.svc.ClaimSponsorRefund(h.ctx, h.sponsor, ClaimSponsorRefundRequest{TournamentID: id})
		require.ErrorIs(t, err, types.ErrInvalidTournamentStatus)
	})

	t.Run("reward needs a finished tournament", func(t *testing.T) {
		err := h.svc.ClaimReward(h.ctx, captainA, ClaimRequest{TournamentID: id, Captain: captainA})
		require.ErrorIs(t, err, types.ErrInvalidTournamentStatus)
	})
}
