package types

// ActionName identifies an operation submitted to the engine.
type ActionName string

func (a ActionName) String() string {
	return string(a)
}

const (
	ActionInitialize          ActionName = "initialize"
	ActionSetBloomPrecision   ActionName = "setBloomPrecision"
	ActionWithdrawPlatformFee ActionName = "withdrawPlatformFee"
	ActionInitializeBridge    ActionName = "initializeBridge"
	ActionSetBridgeFee        ActionName = "setBridgeFee"
	ActionGrantRole           ActionName = "grantRole"
	ActionRevokeRole          ActionName = "revokeRole"
	ActionClaimRoleFund       ActionName = "claimRoleFund"
	ActionClaimPendingPayout  ActionName = "claimPendingPayout"
	ActionApproveToken        ActionName = "approveToken"
	ActionBanToken            ActionName = "banToken"
	ActionCreateTournament    ActionName = "createTournament"
	ActionRegisterTournament  ActionName = "registerTournament"
	ActionStartTournament     ActionName = "startTournament"
	ActionFinishTournament    ActionName = "finishTournament"
	ActionCancelTournament    ActionName = "cancelTournament"
	ActionClaimRefund         ActionName = "claimRefund"
	ActionClaimReward         ActionName = "claimReward"
	ActionClaimSponsorRefund  ActionName = "claimSponsorRefund"
)

// host ledger actions
const (
	ActionCredit          ActionName = "credit"
	ActionApproveDelegate ActionName = "approveDelegate"
	ActionTransfer        ActionName = "transfer"
)
