package ledger

import (
	"context"
	"fmt"
	"math"

	"github.com/NightRunnerEB/Genome-sub000/internal/db"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

// NativeMint denominates lamports, the currency rent is paid in.
var NativeMint = solana.SolMint

// Store is the token account storage the ledger works on. *db.Txn implements it.
type Store interface {
	TokenAccount(ctx context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error)
	PutTokenAccount(doc *model.TokenAccountDocument)
}

// Ledger moves token balances between accounts keyed by (owner, mint).
// Writes go to the store only; committing them is up to the caller.
type Ledger struct {
	store Store
}

func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// LoadAccount returns the account or an empty one if it does not exist yet.
func (l *Ledger) LoadAccount(ctx context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error) {
	acc, err := l.store.TokenAccount(ctx, owner, mint)
	if err != nil {
		if db.IsNotFoundError(err) {
			return &model.TokenAccountDocument{
				ID:    model.TokenAccountID(owner, mint),
				Owner: owner,
				Mint:  mint,
			}, nil
		}
		return nil, err
	}
	return acc, nil
}

func (l *Ledger) Balance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error) {
	acc, err := l.LoadAccount(ctx, owner, mint)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

func (l *Ledger) CheckTransfer(ctx context.Context, from, mint solana.PublicKey, amount uint64) error {
	acc, err := l.LoadAccount(ctx, from, mint)
	if err != nil {
		return err
	}
	if acc.Amount < amount {
		return fmt.Errorf("%w: %s holds %d of %s, needs %d", types.ErrInsufficientFunds, from, acc.Amount, mint, amount)
	}
	return nil
}

func (l *Ledger) Transfer(ctx context.Context, from, to, mint solana.PublicKey, amount uint64) error {
	if amount == 0 || from == to {
		return l.CheckTransfer(ctx, from, mint, amount)
	}

	accFrom, err := l.LoadAccount(ctx, from, mint)
	if err != nil {
		return err
	}
	accTo, err := l.LoadAccount(ctx, to, mint)
	if err != nil {
		return err
	}

	if accFrom.Amount < amount {
		return fmt.Errorf("%w: %s holds %d of %s, needs %d", types.ErrInsufficientFunds, from, accFrom.Amount, mint, amount)
	}
	if math.MaxUint64-accTo.Amount < amount {
		return fmt.Errorf("%w: balance of %s overflows", types.ErrInvalidAmount, to)
	}

	accFrom.Amount -= amount
	accTo.Amount += amount

	l.store.PutTokenAccount(accFrom)
	l.store.PutTokenAccount(accTo)
	return nil
}

// Approve sets delegate as the only identity allowed to spend amount on
// behalf of owner. It replaces any previous delegation.
func (l *Ledger) Approve(ctx context.Context, owner, delegate, mint solana.PublicKey, amount uint64) error {
	acc, err := l.LoadAccount(ctx, owner, mint)
	if err != nil {
		return err
	}
	acc.Delegate = delegate
	acc.DelegatedAmount = amount
	l.store.PutTokenAccount(acc)
	return nil
}

// TransferFrom spends from the owner's account using the allowance granted to delegate.
func (l *Ledger) TransferFrom(ctx context.Context, delegate, from, to, mint solana.PublicKey, amount uint64) error {
	acc, err := l.LoadAccount(ctx, from, mint)
	if err != nil {
		return err
	}

	if amount == 0 {
		return nil
	}
	if acc.Delegate != delegate {
		return fmt.Errorf("%w: %s is not a delegate of %s", types.ErrNotAllowed, delegate, from)
	}
	if acc.DelegatedAmount < amount {
		return fmt.Errorf("%w: allowance %d below %d", types.ErrInsufficientFunds, acc.DelegatedAmount, amount)
	}

	if err := l.Transfer(ctx, from, to, mint, amount); err != nil {
		return err
	}

	// reload, the transfer has written a newer version
	acc, err = l.LoadAccount(ctx, from, mint)
	if err != nil {
		return err
	}
	acc.DelegatedAmount -= amount
	if acc.DelegatedAmount == 0 {
		acc.Delegate = solana.PublicKey{}
	}
	l.store.PutTokenAccount(acc)
	return nil
}

// Credit mints amount into the owner's account.
func (l *Ledger) Credit(ctx context.Context, owner, mint solana.PublicKey, amount uint64) error {
	if amount == 0 {
		return fmt.Errorf("%w: credit of zero", types.ErrInvalidAmount)
	}
	acc, err := l.LoadAccount(ctx, owner, mint)
	if err != nil {
		return err
	}
	if math.MaxUint64-acc.Amount < amount {
		return fmt.Errorf("%w: balance of %s overflows", types.ErrInvalidAmount, owner)
	}
	acc.Amount += amount
	l.store.PutTokenAccount(acc)
	return nil
}
