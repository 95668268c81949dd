package db

import (
	"context"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/gagliardetto/solana-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) GetTeam(ctx context.Context, tournamentID uint32, captain solana.PublicKey) (*model.TeamDocument, error) {
	var doc model.TeamDocument
	if err := db.findOne(ctx, model.TeamCollection, model.TeamID(tournamentID, captain), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) FindTeamsByTournament(ctx context.Context, tournamentID uint32) ([]*model.TeamDocument, error) {
	filter := bson.M{"tournament_id": tournamentID}
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: 1}})

	cursor, err := db.collection(model.TeamCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []*model.TeamDocument
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}
