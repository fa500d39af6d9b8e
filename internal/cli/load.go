package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tablekit/tablekit/pkg/source"
)

// loadSource opens a dataset source from a command argument. Plain paths
// are dispatched on extension (.csv, .json); arguments of the form
// mongodb://.../db/collection open a MongoDB collection.
func loadSource(ctx context.Context, arg string, cfg Config) (source.Source, func(), error) {
	if strings.HasPrefix(arg, "mongodb://") || strings.HasPrefix(arg, "mongodb+srv://") {
		return loadMongo(ctx, arg)
	}
	if db, coll, ok := strings.Cut(arg, "/"); ok && !strings.Contains(arg, ".") && cfg.Mongo.URI != "" && db != "" && coll != "" && !strings.Contains(coll, "/") {
		// db/collection shorthand against the configured Mongo URI.
		return loadMongoCollection(ctx, cfg.Mongo.URI, db, coll)
	}

	noop := func() {}
	switch strings.ToLower(filepath.Ext(arg)) {
	case ".csv":
		src, err := source.LoadCSV(arg)
		return src, noop, err
	case ".json":
		src, err := source.ImportJSON(arg)
		return src, noop, err
	default:
		return nil, noop, fmt.Errorf("unsupported dataset %q (use .csv, .json or a mongodb:// URI)", arg)
	}
}

// loadMongo opens a collection from a full connection URI whose path
// carries the database and collection: mongodb://host/db/collection.
func loadMongo(ctx context.Context, uri string) (source.Source, func(), error) {
	trimmed := strings.TrimSuffix(uri, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return nil, func() {}, fmt.Errorf("mongo URI must end in /database/collection")
	}
	coll := trimmed[idx+1:]

	rest := trimmed[:idx]
	idx = strings.LastIndex(rest, "/")
	if idx < len("mongodb://") {
		return nil, func() {}, fmt.Errorf("mongo URI must end in /database/collection")
	}
	db := rest[idx+1:]

	return loadMongoCollection(ctx, rest[:idx], db, coll)
}

func loadMongoCollection(ctx context.Context, uri, db, coll string) (source.Source, func(), error) {
	logger := loggerFromContext(ctx)
	logger.Debug("connecting to mongo", "uri", uri, "db", db, "collection", coll)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, func() {}, fmt.Errorf("connect %s: %w", uri, err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, func() {}, fmt.Errorf("ping %s: %w", uri, err)
	}

	cleanup := func() { _ = client.Disconnect(context.Background()) }
	return source.NewMongo(client.Database(db).Collection(coll)), cleanup, nil
}
