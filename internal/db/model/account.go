package model

import "github.com/gagliardetto/solana-go"

// TokenAccountDocument is a balance of one mint owned by one identity, with an
// optional delegate allowed to spend DelegatedAmount of it.
type TokenAccountDocument struct {
	ID              string           `bson:"_id"`
	Owner           solana.PublicKey `bson:"owner"`
	Mint            solana.PublicKey `bson:"mint"`
	Amount          uint64           `bson:"amount"`
	Delegate        solana.PublicKey `bson:"delegate"`
	DelegatedAmount uint64           `bson:"delegated_amount"`
}

func TokenAccountID(owner, mint solana.PublicKey) string {
	return owner.String() + ":" + mint.String()
}
