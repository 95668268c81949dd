package types

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type EventType string

func (e EventType) String() string {
	return string(e)
}

const (
	EventConfigInitialized    EventType = "genome.v1.EventConfigInitialized"
	EventBloomPrecisionSet    EventType = "genome.v1.EventBloomPrecisionSet"
	EventPlatformFeeWithdrawn EventType = "genome.v1.EventPlatformFeeWithdrawn"
	EventBridgeInitialized    EventType = "genome.v1.EventBridgeInitialized"
	EventBridgeFeeSet         EventType = "genome.v1.EventBridgeFeeSet"
)

const (
	EventRoleGranted     EventType = "genome.v1.EventRoleGranted"
	EventRoleRevoked     EventType = "genome.v1.EventRoleRevoked"
	EventRoleFundClaimed EventType = "genome.v1.EventRoleFundClaimed"
	EventPayoutClaimed   EventType = "genome.v1.EventPayoutClaimed"
	EventTokenApproved   EventType = "genome.v1.EventTokenApproved"
	EventTokenBanned     EventType = "genome.v1.EventTokenBanned"
)

const (
	EventTournamentCreated     EventType = "genome.v1.EventTournamentCreated"
	EventParticipantRegistered EventType = "genome.v1.EventParticipantRegistered"
	EventVoteCast              EventType = "genome.v1.EventVoteCast"
	EventTournamentStarted     EventType = "genome.v1.EventTournamentStarted"
	EventTournamentFinished    EventType = "genome.v1.EventTournamentFinished"
	EventTournamentCanceled    EventType = "genome.v1.EventTournamentCanceled"
	EventRefundClaimed         EventType = "genome.v1.EventRefundClaimed"
	EventRewardClaimed         EventType = "genome.v1.EventRewardClaimed"
	EventSponsorRefundClaimed  EventType = "genome.v1.EventSponsorRefundClaimed"
)

// EventForTransition maps a committed verifier transition to the event it emits.
func EventForTransition(t Transition) EventType {
	switch t {
	case TransitionStart:
		return EventTournamentStarted
	case TransitionFinish:
		return EventTournamentFinished
	default:
		return EventTournamentCanceled
	}
}

// Event describes one committed state change. Events are emitted only after
// the operation that produced them was persisted.
type Event struct {
	ID           string            `json:"id"`
	Type         EventType         `json:"type"`
	Actor        string            `json:"actor"`
	TournamentID *uint32           `json:"tournament_id,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
	Timestamp    int64             `json:"timestamp"`
}

func NewEvent(typ EventType, actor string) *Event {
	return &Event{
		ID:         uuid.NewString(),
		Type:       typ,
		Actor:      actor,
		Attributes: map[string]string{},
		Timestamp:  time.Now().Unix(),
	}
}

func (e *Event) WithTournament(id uint32) *Event {
	e.TournamentID = &id
	return e
}

func (e *Event) With(key, value string) *Event {
	e.Attributes[key] = value
	return e
}

func (e *Event) WithUint(key string, value uint64) *Event {
	return e.With(key, strconv.FormatUint(value, 10))
}
