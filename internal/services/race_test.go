package services

import (
	"sync/atomic"
	"testing"

	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRacingDuplicates(t *testing.T) {
	const attempts = 16

	t.Run("same identity registers once", func(t *testing.T) {
		h := newHarness(t)
		id := h.mustCreateTournament()
		captain := h.player()

		var ok, duplicate atomic.Int32
		var wg conc.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Go(func() {
				err := h.register(captain, id, captain)
				switch {
				case err == nil:
					ok.Add(1)
				case types.CodeOf(err) == types.ErrParticipantAlreadyRegistered.Code:
					duplicate.Add(1)
				}
			})
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, int32(attempts-1), duplicate.Load())
		assert.Equal(t, uint16(1), h.tournament(id).TeamCount)
		h.requirePoolConsistent(id)
	})

	t.Run("same verifier is paid for one vote", func(t *testing.T) {
		h := newHarness(t)
		id := h.mustCreateTournament()
		captain, mate := h.player(), h.player()
		require.NoError(t, h.register(captain, id, captain, mate))

		verifier := h.verifiers[0]
		var ok atomic.Int32
		var wg conc.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Go(func() {
				if h.svc.StartTournament(h.ctx, verifier, VoteRequest{TournamentID: id}) == nil {
					ok.Add(1)
				}
			})
		}
		wg.Wait()

		assert.Equal(t, int32(1), ok.Load())
		assert.Equal(t, uint64(testVerifierFee), h.claimable(verifier, types.RoleVerifier))
		assert.Len(t, h.tournament(id).Votes.Start, 1)
	})
}
