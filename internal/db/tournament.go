package db

import (
	"context"

	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/NightRunnerEB/Genome-sub000/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) GetTournament(ctx context.Context, id uint32) (*model.TournamentDocument, error) {
	var doc model.TournamentDocument
	if err := db.findOne(ctx, model.TournamentCollection, id, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (db *Database) FindTournaments(ctx context.Context) ([]*model.TournamentDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := db.collection(model.TournamentCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tournaments []*model.TournamentDocument
	if err := cursor.All(ctx, &tournaments); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (db *Database) CountTournamentsByStatus(ctx context.Context) (map[types.TournamentStatus]int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	cursor, err := db.collection(model.TournamentCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status types.TournamentStatus `bson:"_id"`
		Count  int64                  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[types.TournamentStatus]int64, len(types.AllTournamentStatuses()))
	for _, status := range types.AllTournamentStatuses() {
		counts[status] = 0
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
