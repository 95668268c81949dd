package types

// Enum values for Tournament Status
type TournamentStatus string

const (
	StatusNew      TournamentStatus = "NEW"
	StatusStarted  TournamentStatus = "STARTED"
	StatusFinished TournamentStatus = "FINISHED"
	StatusCanceled TournamentStatus = "CANCELED"
)

func (s TournamentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no transition may leave the status.
func (s TournamentStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusCanceled
}

// AllTournamentStatuses lists statuses in lifecycle order.
func AllTournamentStatuses() []TournamentStatus {
	return []TournamentStatus{StatusNew, StatusStarted, StatusFinished, StatusCanceled}
}

// QualifiedStatesForTransition returns the qualified current states for a verifier transition
func QualifiedStatesForTransition(t Transition) []TournamentStatus {
	switch t {
	case TransitionStart:
		return []TournamentStatus{StatusNew}
	case TransitionFinish:
		return []TournamentStatus{StatusStarted}
	case TransitionCancel:
		return []TournamentStatus{StatusNew, StatusStarted}
	default:
		return nil
	}
}

// QualifiedStatesForRegistration returns the qualified current states for participant registration
func QualifiedStatesForRegistration() []TournamentStatus {
	return []TournamentStatus{StatusNew}
}
