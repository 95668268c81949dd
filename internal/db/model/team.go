package model

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

type ParticipantInfo struct {
	Identity      solana.PublicKey `bson:"identity"`
	PaidByCaptain bool             `bson:"paid_by_captain"`
	Claimed       bool             `bson:"claimed"`
}

type TeamDocument struct {
	ID           string            `bson:"_id"`
	TournamentID uint32            `bson:"tournament_id"`
	Captain      solana.PublicKey  `bson:"captain"`
	Seq          uint16            `bson:"seq"`
	Participants []ParticipantInfo `bson:"participants"`
	// Closed teams accept no new participants
	Closed bool `bson:"closed"`
}

func TeamID(tournamentID uint32, captain solana.PublicKey) string {
	return fmt.Sprintf("%d:%s", tournamentID, captain)
}

func (t *TeamDocument) Participant(identity solana.PublicKey) (int, bool) {
	for i, p := range t.Participants {
		if p.Identity == identity {
			return i, true
		}
	}
	return -1, false
}

func (t *TeamDocument) IsComplete(teamSize uint16) bool {
	return len(t.Participants) >= int(teamSize)
}
