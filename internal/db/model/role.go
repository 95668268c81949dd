package model

import (
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

type RoleDocument struct {
	ID               string           `bson:"_id"`
	Identity         solana.PublicKey `bson:"identity"`
	Role             types.Role       `bson:"role"`
	ClaimableBalance uint64           `bson:"claimable_balance"`
	// Address holds the lamports locked while the record exists
	Address     solana.PublicKey `bson:"address"`
	RentDeposit uint64           `bson:"rent_deposit"`
}

func RoleID(identity solana.PublicKey, role types.Role) string {
	return identity.String() + ":" + role.String()
}

// PendingPayoutDocument holds what revoked role records still owed their
// holder. It is paid out on request from the platform wallet.
type PendingPayoutDocument struct {
	ID       string           `bson:"_id"`
	Identity solana.PublicKey `bson:"identity"`
	Amount   uint64           `bson:"amount"`
}
