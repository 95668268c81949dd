package services

import (
	"slices"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// consensusReached reports whether the roster members among voters are more
// than rate percent of the roster. A rate of 100 requires every member.
func consensusReached(voters []solana.PublicKey, roster []solana.PublicKey, rate float64) bool {
	if len(roster) == 0 {
		return false
	}

	counted := 0
	for _, voter := range voters {
		if slices.Contains(roster, voter) {
			counted++
		}
	}

	size := decimal.NewFromInt(int64(len(roster)))
	votes := decimal.NewFromInt(int64(counted)).Mul(hundred)
	threshold := decimal.NewFromFloat(rate).Mul(size)

	if threshold.GreaterThanOrEqual(hundred.Mul(size)) {
		return votes.Equal(threshold)
	}
	return votes.GreaterThan(threshold)
}

func votersFor(votes *model.Votes, transition types.Transition) []solana.PublicKey {
	switch transition {
	case types.TransitionStart:
		return votes.Start
	case types.TransitionCancel:
		return votes.Cancel
	default:
		voters := make([]solana.PublicKey, 0, len(votes.Finish))
		for _, v := range votes.Finish {
			voters = append(voters, v.Verifier)
		}
		return voters
	}
}

// votersForWinner returns the finish ballots naming winner.
func votersForWinner(votes *model.Votes, winner solana.PublicKey) []solana.PublicKey {
	var voters []solana.PublicKey
	for _, v := range votes.Finish {
		if v.Winner == winner {
			voters = append(voters, v.Verifier)
		}
	}
	return voters
}

func recordVote(votes *model.Votes, transition types.Transition, verifier, winner solana.PublicKey) {
	switch transition {
	case types.TransitionStart:
		votes.Start = append(votes.Start, verifier)
	case types.TransitionCancel:
		votes.Cancel = append(votes.Cancel, verifier)
	default:
		votes.Finish = append(votes.Finish, model.FinishVote{Verifier: verifier, Winner: winner})
	}
}

func clearVotes(votes *model.Votes, transition types.Transition) {
	switch transition {
	case types.TransitionStart:
		votes.Start = []solana.PublicKey{}
	case types.TransitionCancel:
		votes.Cancel = []solana.PublicKey{}
	default:
		votes.Finish = []model.FinishVote{}
	}
}
