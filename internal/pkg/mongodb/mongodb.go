// Package mongodb provides MongoDB client construction.
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/bistroboss/bistro-api/internal/pkg/metrics"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Config contains MongoDB connection configuration.
type Config struct {
	URI            string
	ConnectTimeout time.Duration
}

// Connect establishes and pings a MongoDB client. The Stable API (v1) is
// pinned so server upgrades cannot change driver-visible behavior.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1)).
		SetPoolMonitor(metrics.PoolMonitor())

	if cfg.ConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	slog.Info("connected to mongodb")
	return client, nil
}
