package types

import "errors"

// ErrorKind groups rejection reasons by what the caller did wrong.
type ErrorKind string

const (
	KindAuthorization ErrorKind = "AUTHORIZATION"
	KindState         ErrorKind = "STATE"
	KindValidation    ErrorKind = "VALIDATION"
	KindIdempotency   ErrorKind = "IDEMPOTENCY"
	KindResource      ErrorKind = "RESOURCE"
	KindLifecycle     ErrorKind = "LIFECYCLE"
	KindExistence     ErrorKind = "EXISTENCE"
)

func (k ErrorKind) String() string {
	return string(k)
}

// Error is a rejected operation. Errors are never transient: retrying the
// same request against the same state yields the same error.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind ErrorKind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

var (
	ErrNotAllowed = newError(KindAuthorization, "NotAllowed", "signer is not allowed")

	ErrInvalidTournamentStatus = newError(KindState, "InvalidTournamentStatus", "invalid tournament status")
	ErrNoCompletedTeams        = newError(KindState, "NoCompletedTeams", "the tournament doesn't have any completed teams yet")
	ErrTeamClosed              = newError(KindState, "TeamClosed", "team is closed after a refund")

	ErrInvalidOrganizerFee   = newError(KindValidation, "InvalidOrganizerFee", "invalid organizer fee")
	ErrInvalidEntryFee       = newError(KindValidation, "InvalidEntryFee", "invalid entry fee")
	ErrInvalidTeamsCount     = newError(KindValidation, "InvalidTeamsCount", "invalid teams count")
	ErrInvalidSponsorPool    = newError(KindValidation, "InvalidSponsorPool", "invalid sponsor pool")
	ErrMaxPlayersExceeded    = newError(KindValidation, "MaxPlayersExceeded", "max players exceeded")
	ErrMaxVerifiersExceeded  = newError(KindValidation, "MaxVerifiersExceeded", "max verifiers exceeded")
	ErrMaxTeamsReached       = newError(KindValidation, "MaxTeamsReached", "max teams reached")
	ErrInvalidPrecision      = newError(KindValidation, "InvalidPrecision", "invalid false precision")
	ErrInvalidParams         = newError(KindValidation, "InvalidParams", "invalid params")
	ErrInvalidExpirationTime = newError(KindValidation, "InvalidExpirationTime", "expiration time is in the past")
	ErrInvalidWinner         = newError(KindValidation, "InvalidWinner", "winner is not a captain of a completed team")
	ErrInvalidAmount         = newError(KindValidation, "InvalidAmount", "amount must be positive")
	ErrNotWinner             = newError(KindValidation, "NotWinner", "captain is not winner")

	ErrRoleAlreadyGranted           = newError(KindIdempotency, "RoleAlreadyGranted", "role already granted")
	ErrRoleNotFound                 = newError(KindIdempotency, "RoleNotFound", "role not found")
	ErrParticipantAlreadyRegistered = newError(KindIdempotency, "ParticipantAlreadyRegistered", "participant already registered")
	ErrParticipantNotFound          = newError(KindIdempotency, "ParticipantNotFound", "participant not found")
	ErrVerifierAlreadyVoted         = newError(KindIdempotency, "VerifierAlreadyVoted", "verifier already voted")
	ErrAlreadyClaimed               = newError(KindIdempotency, "AlreadyClaimed", "participant already claimed")

	ErrInsufficientFunds = newError(KindResource, "InsufficientFunds", "insufficient funds")

	ErrAlreadyInitialized = newError(KindLifecycle, "AlreadyInitialized", "already initialized")

	ErrAccountNotInitialized = newError(KindExistence, "AccountNotInitialized", "account not initialized")
)

// AsError unwraps err down to the engine error, if there is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of an engine error, or "" for anything else
// (storage failures, context cancellation).
func KindOf(err error) ErrorKind {
	if e, ok := AsError(err); ok {
		return e.Kind
	}
	return ""
}

// CodeOf returns the stable error code, or "" for non-engine errors.
func CodeOf(err error) string {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}
