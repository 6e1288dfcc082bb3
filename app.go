package main

import (
	"context"
	"log"

	"croptrace/cache"
	"croptrace/fetch"
	"croptrace/ledger"
	"croptrace/timeline"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type App struct {
	cfg   Config
	mongo *mongo.Client
	db    *mongo.Database
	users *mongo.Collection

	fetcher *fetch.Fetcher
	batch   *fetch.BatchFetcher
	builder *timeline.Builder
}

func newApp(ctx context.Context, cfg Config) (*App, error) {
	// Fail at bootstrap if the decoder's field table drifted from the
	// contract schema.
	if err := ledger.VerifySchema(); err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDB)

	app := &App{
		cfg:   cfg,
		mongo: client,
		db:    db,
		users: db.Collection("users"),
	}

	// Indexes
	if _, err := app.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return nil, err
	}

	store := cache.NewMongo(db.Collection("cache_entries"))
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	records := timeline.NewMongoRecords(db)
	if err := records.EnsureIndexes(ctx); err != nil {
		return nil, err
	}

	gw := ledger.NewGateway(cfg.LedgerURI, cfg.LedgerTimeout)
	app.fetcher = fetch.New(gw, store, cfg.LedgerTimeout, log.Default())
	app.batch = fetch.NewBatch(app.fetcher, cfg.FetchWorkers)
	app.builder = timeline.NewBuilder(app.fetcher, records, log.Default())

	return app, nil
}

func (a *App) close(ctx context.Context) { _ = a.mongo.Disconnect(ctx) }
