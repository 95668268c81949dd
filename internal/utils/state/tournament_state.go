package state

import (
	"slices"

	"github.com/NightRunnerEB/Genome-sub000/internal/types"
)

// tournamentStateChangeMap maps the current status of a tournament to the
// statuses it can transition to
var tournamentStateChangeMap = map[types.TournamentStatus][]types.TournamentStatus{
	types.StatusNew: {
		types.StatusStarted,
		types.StatusCanceled,
	},
	types.StatusStarted: {
		types.StatusFinished,
		types.StatusCanceled,
	},
	types.StatusFinished: {},
	types.StatusCanceled: {},
}

func IsQualifiedStateForTournamentStateChange(
	currentState types.TournamentStatus, newState types.TournamentStatus,
) bool {
	qualifiedStates, ok := tournamentStateChangeMap[currentState]
	if !ok {
		return false
	}
	return slices.Contains(qualifiedStates, newState)
}
