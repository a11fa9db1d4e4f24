package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect builds the shared MongoDB client and verifies connectivity.
// The client is created once at startup and threaded through construction;
// callers own the Disconnect on shutdown.
func Connect(ctx context.Context, mongoURL string) (*mongo.Client, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(mongoURL).
		SetAppName("employee-records").
		SetMaxPoolSize(10)

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, err
	}

	// simple ping
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}
