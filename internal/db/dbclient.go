package db

import (
	"context"
	"errors"

	"github.com/NightRunnerEB/Genome-sub000/internal/config"
	"github.com/NightRunnerEB/Genome-sub000/internal/db/model"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Database struct {
	dbName string
	client *mongo.Client
	// transactional is false on standalone servers that reject transactions
	transactional bool
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().
		ApplyURI(cfg.Address).
		SetAuth(credential).
		SetRegistry(model.Registry)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	db := &Database{
		dbName: cfg.DbName,
		client: client,
	}

	db.transactional, err = db.supportsTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if !db.transactional {
		log.Ctx(ctx).Warn().Msg("Mongo deployment is standalone, change sets are applied without a transaction")
	}

	return db, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, nil)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}

// supportsTransactions reports whether the server is a replica set member or mongos.
func (db *Database) supportsTransactions(ctx context.Context) (bool, error) {
	var hello struct {
		SetName string `bson:"setName"`
		Msg     string `bson:"msg"`
	}
	res := db.client.Database("admin").RunCommand(ctx, bson.D{{Key: "hello", Value: 1}})
	if err := res.Decode(&hello); err != nil {
		return false, err
	}
	return hello.SetName != "" || hello.Msg == "isdbgrid", nil
}

func (db *Database) findOne(ctx context.Context, collection string, id any, out any) error {
	res := db.collection(collection).FindOne(ctx, bson.M{"_id": id})
	err := res.Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return &NotFoundError{Collection: collection, ID: id}
	}
	return err
}
