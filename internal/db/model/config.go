package model

import (
	"slices"

	"github.com/gagliardetto/solana-go"
)

const (
	GlobalConfigID = "singleton"
	BridgeConfigID = "singleton"
)

type GlobalConfigDocument struct {
	ID              string             `bson:"_id"`
	Admin           solana.PublicKey   `bson:"admin"`
	PlatformWallet  solana.PublicKey   `bson:"platform_wallet"`
	FeeMint         solana.PublicKey   `bson:"fee_mint"`
	PlatformFee     uint64             `bson:"platform_fee"`
	VerifierFee     uint64             `bson:"verifier_fee"`
	MaxOrganizerFee uint64             `bson:"max_organizer_fee"` // basis points
	MinTeams        uint16             `bson:"min_teams"`
	MaxTeams        uint16             `bson:"max_teams"`
	ConsensusRate   float64            `bson:"consensus_rate"` // percent
	FalsePrecision  float64            `bson:"false_precision"`
	MaxVerifiers    uint16             `bson:"max_verifiers"`
	Verifiers       []solana.PublicKey `bson:"verifiers"`
	TournamentNonce uint32             `bson:"tournament_nonce"`
	// lamports held for roster slots
	RosterRent uint64 `bson:"roster_rent"`
}

func (c *GlobalConfigDocument) IsVerifier(key solana.PublicKey) bool {
	return slices.Contains(c.Verifiers, key)
}

type BridgeConfigDocument struct {
	ID         string           `bson:"_id"`
	Admin      solana.PublicKey `bson:"admin"`
	UtsProgram solana.PublicKey `bson:"uts_program"`
	BridgeFee  uint64           `bson:"bridge_fee"`
	ChainID    uint64           `bson:"chain_id"`
}

type AssetApprovalDocument struct {
	ID             string           `bson:"_id"`
	Mint           solana.PublicKey `bson:"mint"`
	MinSponsorPool uint64           `bson:"min_sponsor_pool"`
	MinEntryFee    uint64           `bson:"min_entry_fee"`
}
