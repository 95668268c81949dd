package types

import "fmt"

// Transition is a verifier-driven lifecycle change that needs consensus.
type Transition string

const (
	TransitionStart  Transition = "START"
	TransitionFinish Transition = "FINISH"
	TransitionCancel Transition = "CANCEL"
)

func (t Transition) String() string {
	return string(t)
}

// Target returns the status a committed transition moves the tournament to.
func (t Transition) Target() TournamentStatus {
	switch t {
	case TransitionStart:
		return StatusStarted
	case TransitionFinish:
		return StatusFinished
	case TransitionCancel:
		return StatusCanceled
	default:
		panic(fmt.Sprintf("unknown transition %q", string(t)))
	}
}
