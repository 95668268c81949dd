package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) Commit(ctx context.Context, cs *ChangeSet) error {
	if cs.Len() == 0 {
		return nil
	}

	if !db.transactional {
		return db.apply(ctx, cs)
	}

	session, err := db.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, db.apply(sessCtx, cs)
	})
	return err
}

func (db *Database) apply(ctx context.Context, cs *ChangeSet) error {
	for _, m := range cs.Mutations() {
		filter := bson.M{"_id": m.ID}
		collection := db.collection(m.Collection)

		if m.IsDelete() {
			if _, err := collection.DeleteOne(ctx, filter); err != nil {
				return fmt.Errorf("failed to delete %s: %w", mutationKey(m.Collection, m.ID), err)
			}
			continue
		}

		_, err := collection.ReplaceOne(ctx, filter, m.Doc, options.Replace().SetUpsert(true))
		if mongo.IsDuplicateKeyError(err) {
			return &DuplicateKeyError{Collection: m.Collection, ID: m.ID, Cause: err}
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", mutationKey(m.Collection, m.ID), err)
		}
	}
	return nil
}
