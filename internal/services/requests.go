package services

import (
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

type InitializeRequest struct {
	Admin           solana.PublicKey
	PlatformWallet  solana.PublicKey
	FeeMint         solana.PublicKey
	PlatformFee     uint64
	VerifierFee     uint64
	MaxOrganizerFee uint64
	MinTeams        uint16
	MaxTeams        uint16
	ConsensusRate   float64
	FalsePrecision  float64
	// MaxVerifiers defaults to DefaultMaxVerifiers when zero
	MaxVerifiers uint16
	// Verifiers must be empty, the roster is filled by role grants
	Verifiers []solana.PublicKey
}

type SetBloomPrecisionRequest struct {
	Precision float64
}

type WithdrawPlatformFeeRequest struct {
	Amount uint64
}

type InitializeBridgeRequest struct {
	Admin      solana.PublicKey
	UtsProgram solana.PublicKey
	BridgeFee  uint64
	ChainID    uint64
}

type SetBridgeFeeRequest struct {
	Fee uint64
}

// RoleRequest targets the (identity, role) pair of a grant or revoke.
type RoleRequest struct {
	Target solana.PublicKey
	Role   types.Role
}

type ClaimRoleFundRequest struct {
	Role   types.Role
	Amount uint64
}

type ClaimPendingPayoutRequest struct {
	Amount uint64
}

type ApproveTokenRequest struct {
	Mint           solana.PublicKey
	MinSponsorPool uint64
	MinEntryFee    uint64
}

type BanTokenRequest struct {
	Mint solana.PublicKey
}

type CreateTournamentRequest struct {
	Sponsor   solana.PublicKey
	AssetMint solana.PublicKey
	Config    model.TournamentConfig
}

// RegisterTournamentRequest registers the caller. A caller equal to Captain
// creates the team and pays for the listed teammates.
type RegisterTournamentRequest struct {
	TournamentID uint32
	Captain      solana.PublicKey
	Teammates    []solana.PublicKey
}

type VoteRequest struct {
	TournamentID uint32
}

type FinishTournamentRequest struct {
	TournamentID uint32
	// Winner is the captain of the winning team
	Winner solana.PublicKey
}

type ClaimRequest struct {
	TournamentID uint32
	Captain      solana.PublicKey
}

type ClaimSponsorRefundRequest struct {
	TournamentID uint32
}
