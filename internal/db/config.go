package db

import (
	"context"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/gagliardetto/solana-go"
)

func (db *Database) GetGlobalConfig(ctx context.Context) (*model.GlobalConfigDocument, error) {
	var doc model.GlobalConfigDocument
	if err := db.findOne(ctx, model.GlobalConfigCollection, model.GlobalConfigID, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) GetBridgeConfig(ctx context.Context) (*model.BridgeConfigDocument, error) {
	var doc model.BridgeConfigDocument
	if err := db.findOne(ctx, model.BridgeConfigCollection, model.BridgeConfigID, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) GetAssetApproval(ctx context.Context, mint solana.PublicKey) (*model.AssetApprovalDocument, error) {
	var doc model.AssetApprovalDocument
	if err := db.findOne(ctx, model.AssetApprovalCollection, mint.String(), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
