package model

const (
	GlobalConfigCollection  = "global_config"
	BridgeConfigCollection  = "bridge_config"
	RoleCollection          = "role"
	PendingPayoutCollection = "pending_payout"
	AssetApprovalCollection = "asset_approval"
	TournamentCollection    = "tournament"
	TeamCollection          = "team"
	TokenAccountCollection  = "token_account"
)

// Collections lists every collection owned by the engine.
func Collections() []string {
	return []string{
		GlobalConfigCollection,
		BridgeConfigCollection,
		RoleCollection,
		PendingPayoutCollection,
		AssetApprovalCollection,
		TournamentCollection,
		TeamCollection,
		TokenAccountCollection,
	}
}
