package model

import (
	"context"
	"fmt"
	"time"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const setupTimeout = 30 * time.Second

type index struct {
	Keys   bson.D
	Unique bool
}

var collectionIndexes = map[string][]index{
	TournamentCollection: {
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "organizer", Value: 1}}},
	},
	TeamCollection: {
		{Keys: bson.D{{Key: "tournament_id", Value: 1}, {Key: "seq", Value: 1}}, Unique: true},
	},
	RoleCollection: {
		{Keys: bson.D{{Key: "role", Value: 1}}},
	},
	TokenAccountCollection: {
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	},
}

// Setup creates the collections and indexes the engine relies on.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(ctx); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)

	existing, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	known := make(map[string]bool, len(existing))
	for _, name := range existing {
		known[name] = true
	}

	// collections must exist before they are written inside a transaction
	for _, name := range Collections() {
		if known[name] {
			continue
		}
		if err := database.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", name, err)
		}
	}

	for name, indexes := range collectionIndexes {
		for _, idx := range indexes {
			model := mongo.IndexModel{
				Keys:    idx.Keys,
				Options: options.Index().SetUnique(idx.Unique),
			}
			if _, err := database.Collection(name).Indexes().CreateOne(ctx, model); err != nil {
				return fmt.Errorf("failed to create index on %s: %w", name, err)
			}
		}
	}

	log.Ctx(ctx).Info().Msg("Collections and indexes created successfully")
	return nil
}
