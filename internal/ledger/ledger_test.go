package ledger_test

import (
	"context"
	"testing"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/ledger"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) solana.PublicKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key.PublicKey()
}

func balance(t *testing.T, l *ledger.Ledger, owner, mint solana.PublicKey) uint64 {
	t.Helper()
	b, err := l.Balance(context.Background(), owner, mint)
	require.NoError(t, err)
	return b
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	mint := newKey(t)
	alice, bob := newKey(t), newKey(t)

	store := db.NewMemoryDatabase()
	txn := db.NewTxn(store)
	l := ledger.New(txn)

	require.NoError(t, l.Credit(ctx, alice, mint, 100))

	t.Run("moves balance", func(t *testing.T) {
		require.NoError(t, l.Transfer(ctx, alice, bob, mint, 40))
		assert.Equal(t, uint64(60), balance(t, l, alice, mint))
		assert.Equal(t, uint64(40), balance(t, l, bob, mint))
	})
	t.Run("insufficient funds leaves balances untouched", func(t *testing.T) {
		err := l.Transfer(ctx, bob, alice, mint, 41)
		require.ErrorIs(t, err, types.ErrInsufficientFunds)
		assert.Equal(t, uint64(40), balance(t, l, bob, mint))
	})
	t.Run("missing account has zero balance", func(t *testing.T) {
		err := l.Transfer(ctx, newKey(t), alice, mint, 1)
		require.ErrorIs(t, err, types.ErrInsufficientFunds)
	})
	t.Run("zero credit rejected", func(t *testing.T) {
		require.ErrorIs(t, l.Credit(ctx, alice, mint, 0), types.ErrInvalidAmount)
	})
	t.Run("nothing persisted before commit", func(t *testing.T) {
		_, err := store.GetTokenAccount(ctx, alice, mint)
		require.True(t, db.IsNotFoundError(err))

		require.NoError(t, txn.Commit(ctx))
		acc, err := store.GetTokenAccount(ctx, alice, mint)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), acc.Amount)
	})
}

func TestTransferFrom(t *testing.T) {
	ctx := context.Background()
	mint := newKey(t)
	owner, delegate, escrow := newKey(t), newKey(t), newKey(t)

	l := ledger.New(db.NewTxn(db.NewMemoryDatabase()))
	require.NoError(t, l.Credit(ctx, owner, mint, 1000))

	t.Run("without approval", func(t *testing.T) {
		err := l.TransferFrom(ctx, delegate, owner, escrow, mint, 10)
		require.ErrorIs(t, err, types.ErrNotAllowed)
	})

	require.NoError(t, l.Approve(ctx, owner, delegate, mint, 300))

	t.Run("allowance exceeded", func(t *testing.T) {
		err := l.TransferFrom(ctx, delegate, owner, escrow, mint, 301)
		require.ErrorIs(t, err, types.ErrInsufficientFunds)
	})
	t.Run("spends allowance", func(t *testing.T) {
		require.NoError(t, l.TransferFrom(ctx, delegate, owner, escrow, mint, 200))
		assert.Equal(t, uint64(800), balance(t, l, owner, mint))
		assert.Equal(t, uint64(200), balance(t, l, escrow, mint))

		acc, err := l.LoadAccount(ctx, owner, mint)
		require.NoError(t, err)
		assert.Equal(t, uint64(100), acc.DelegatedAmount)
		assert.Equal(t, delegate, acc.Delegate)
	})
	t.Run("exhausted allowance clears delegate", func(t *testing.T) {
		require.NoError(t, l.TransferFrom(ctx, delegate, owner, escrow, mint, 100))

		acc, err := l.LoadAccount(ctx, owner, mint)
		require.NoError(t, err)
		assert.Zero(t, acc.DelegatedAmount)
		assert.True(t, acc.Delegate.IsZero())
	})
}
