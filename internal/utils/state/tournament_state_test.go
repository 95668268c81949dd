package state

import (
	"testing"

	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestIsQualifiedStateForTournamentStateChange(t *testing.T) {
	allowed := map[types.TournamentStatus][]types.TournamentStatus{
		types.StatusNew:     {types.StatusStarted, types.StatusCanceled},
		types.StatusStarted: {types.StatusFinished, types.StatusCanceled},
	}

	for _, from := range types.AllTournamentStatuses() {
		for _, to := range types.AllTournamentStatuses() {
			expected := false
			for _, s := range allowed[from] {
				if s == to {
					expected = true
				}
			}
			assert.Equal(t, expected, IsQualifiedStateForTournamentStateChange(from, to), "%s -> %s", from, to)
		}
	}

	t.Run("transitions agree with state map", func(t *testing.T) {
		for _, tr := range []types.Transition{types.TransitionStart, types.TransitionFinish, types.TransitionCancel} {
			for _, from := range types.QualifiedStatesForTransition(tr) {
				assert.True(t, IsQualifiedStateForTournamentStateChange(from, tr.Target()))
			}
		}
	})
}
