package pkg

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ParseIdentity decodes a base58 identity and rejects the all-zero key.
func ParseIdentity(address string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid identity %q: %w", address, err)
	}
	if key.IsZero() {
		return solana.PublicKey{}, errors.New("identity must not be the zero key")
	}
	return key, nil
}
