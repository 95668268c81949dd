package db

import (
	"context"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/gagliardetto/solana-go"
)

func (db *Database) GetTokenAccount(ctx context.Context, owner, mint solana.PublicKey) (*model.TokenAccountDocument, error) {
	var doc model.TokenAccountDocument
	if err := db.findOne(ctx, model.TokenAccountCollection, model.TokenAccountID(owner, mint), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
