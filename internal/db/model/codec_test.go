package model

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPublicKeyCodec(t *testing.T) {
	owner := solana.NewWallet().PublicKey()
	doc := TokenAccountDocument{
		ID:     TokenAccountID(owner, solana.SolMint),
		Owner:  owner,
		Mint:   solana.SolMint,
		Amount: 5,
	}

	data, err := Marshal(doc)
	require.NoError(t, err)

	t.Run("keys are base58 strings", func(t *testing.T) {
		var raw bson.M
		require.NoError(t, bson.Unmarshal(data, &raw))
		assert.Equal(t, owner.String(), raw["owner"])
		assert.Equal(t, solana.SolMint.String(), raw["mint"])
	})
	t.Run("round trip", func(t *testing.T) {
		var decoded TokenAccountDocument
		require.NoError(t, Unmarshal(data, &decoded))
		assert.Equal(t, doc, decoded)
	})
	t.Run("invalid key", func(t *testing.T) {
		bad, err := bson.Marshal(bson.M{"_id": "x", "owner": "not-base58-0OIl"})
		require.NoError(t, err)

		var decoded TokenAccountDocument
		assert.Error(t, Unmarshal(bad, &decoded))
	})
	t.Run("null key decodes to zero", func(t *testing.T) {
		raw, err := bson.Marshal(bson.M{"_id": "x", "owner": nil})
		require.NoError(t, err)

		var decoded TokenAccountDocument
		require.NoError(t, Unmarshal(raw, &decoded))
		assert.True(t, decoded.Owner.IsZero())
	})
}
