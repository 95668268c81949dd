package db

import (
	"context"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"github.com/gagliardetto/solana-go"
)

func (db *Database) GetRole(ctx context.Context, identity solana.PublicKey, role types.Role) (*model.RoleDocument, error) {
	var doc model.RoleDocument
	if err := db.findOne(ctx, model.RoleCollection, model.RoleID(identity, role), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) GetPendingPayout(ctx context.Context, identity solana.PublicKey) (*model.PendingPayoutDocument, error) {
	var doc model.PendingPayoutDocument
	if err := db.findOne(ctx, model.PendingPayoutCollection, identity.String(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
