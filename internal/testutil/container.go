package testutil

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

// MongoContainer wraps a mongodb testcontainer.
type MongoContainer struct {
	*mongodb.MongoDBContainer
	ConnectionString string
}

// NewMongoContainer creates a new MongoDB container for testing.
func NewMongoContainer(ctx context.Context) (*MongoContainer, error) {
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &MongoContainer{
		MongoDBContainer: container,
		ConnectionString: connStr,
	}, nil
}
