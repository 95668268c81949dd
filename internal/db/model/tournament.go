package model

import (
	"fmt"

	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

type TournamentConfig struct {
	OrganizerFee   uint64 `bson:"organizer_fee"` // basis points of the prize pool
	SponsorPool    uint64 `bson:"sponsor_pool"`
	EntryFee       uint64 `bson:"entry_fee"`
	ExpirationTime int64  `bson:"expiration_time"` // unix seconds
	TeamSize       uint16 `bson:"team_size"`
	MinTeams       uint16 `bson:"min_teams"`
	MaxTeams       uint16 `bson:"max_teams"`
}

type FinishVote struct {
	Verifier solana.PublicKey `bson:"verifier"`
	Winner   solana.PublicKey `bson:"winner"`
}

// Votes holds the ballots of the pending transitions. A set is cleared when
// its transition commits.
type Votes struct {
	Start  []solana.PublicKey `bson:"start"`
	Cancel []solana.PublicKey `bson:"cancel"`
	Finish []FinishVote       `bson:"finish"`
}

type FinishInfo struct {
	Winner solana.PublicKey `bson:"winner"`
	// paid to every participant of the winning team
	Reward          uint64 `bson:"reward"`
	OrganizerReward uint64 `bson:"organizer_reward"`
}

type TournamentDocument struct {
	ID             uint32                 `bson:"_id"`
	Organizer      solana.PublicKey       `bson:"organizer"`
	Sponsor        solana.PublicKey       `bson:"sponsor"`
	AssetMint      solana.PublicKey       `bson:"asset_mint"`
	Escrow         solana.PublicKey       `bson:"escrow"`
	PlatformFee    uint64                 `bson:"platform_fee"`
	Config         TournamentConfig       `bson:"config"`
	Status         types.TournamentStatus `bson:"status"`
	TeamCount      uint16                 `bson:"team_count"`
	CompletedTeams uint16                 `bson:"completed_teams"`
	// ClosedTeams were refunded and no longer hold a MaxTeams slot
	ClosedTeams uint16 `bson:"closed_teams"`
	// PrizePool mirrors the escrow balance
	PrizePool          uint64      `bson:"prize_pool"`
	EntryFeesCollected uint64      `bson:"entry_fees_collected"`
	RefundsPaid        uint64      `bson:"refunds_paid"`
	RewardsPaid        uint64      `bson:"rewards_paid"`
	SponsorRefunded    bool        `bson:"sponsor_refunded"`
	Votes              Votes       `bson:"votes"`
	Finish             *FinishInfo `bson:"finish,omitempty"`
	Bloom              []byte      `bson:"bloom"`
	CreatedAt          int64       `bson:"created_at"`
}

// OpenTeams counts the teams still holding a registration slot.
func (t *TournamentDocument) OpenTeams() uint16 {
	return t.TeamCount - t.ClosedTeams
}

func TournamentKey(id uint32) string {
	return fmt.Sprintf("%d", id)
}
