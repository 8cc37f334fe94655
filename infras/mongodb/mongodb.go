package mongodb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"todoapp/config"
	"todoapp/shared/constant"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

var (
	ErrConnection = errors.New("document store connection failed")
)

// Connection lazily dials the document store on first use and hands out the
// same client to every caller afterwards. A failed dial is not remembered, so
// the next caller tries again.
type Connection struct {
	config   *config.Config
	mu       sync.Mutex
	client   *mongo.Client
	database *mongo.Database
}

func New(config *config.Config) *Connection {
	return &Connection{
		config: config,
	}
}

// Connect returns the memoized database handle, dialing and pinging the
// server if no connection has been established yet.
func (c *Connection) Connect(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.database != nil {
		return c.database, nil
	}

	mongoConfig := c.config.DB.Mongo
	timeout := time.Duration(mongoConfig.ConnectTimeoutSeconds) * time.Second

	opts := options.Client().
		ApplyURI(mongoConfig.URI).
		SetMaxPoolSize(mongoConfig.MaxPoolSize).
		SetMinPoolSize(mongoConfig.MinPoolSize)

	if timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	client, err := mongo.Connect(opts)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create document store client")

		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		log.Error().Err(err).Str("database", mongoConfig.Database).Msg("Failed to reach document store")

		if discErr := client.Disconnect(context.WithoutCancel(ctx)); discErr != nil {
			log.Warn().Err(discErr).Msg("Failed to release document store client")
		}

		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	c.client = client
	c.database = client.Database(databaseName(c.config))

	log.Info().
		Str("database", c.database.Name()).
		Uint64("maxPoolSize", mongoConfig.MaxPoolSize).
		Uint64("minPoolSize", mongoConfig.MinPoolSize).
		Msg("Connected to document store")

	return c.database, nil
}

// Collection returns a handle for the named collection.
func (c *Connection) Collection(ctx context.Context, name string) (*mongo.Collection, error) {
	database, err := c.Connect(ctx)
	if err != nil {
		return nil, err
	}

	return database.Collection(name), nil
}

// Ping checks that the document store answers. The in-memory backend never
// dials, so it is always considered reachable.
func (c *Connection) Ping(ctx context.Context) error {
	if c.config.DB.Driver == constant.DBDriverMemory {
		return nil
	}

	database, err := c.Connect(ctx)
	if err != nil {
		return err
	}

	if err = database.Client().Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %w", ErrConnection, err)
	}

	return nil
}

func (c *Connection) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}

	err := c.client.Disconnect(ctx)
	c.client = nil
	c.database = nil

	if err != nil {
		return fmt.Errorf("failed to disconnect document store: %w", err)
	}

	log.Info().Msg("Disconnected from document store")

	return nil
}

func databaseName(config *config.Config) string {
	if config.DB.Mongo.Database != "" {
		return config.DB.Mongo.Database
	}

	return constant.DefaultDatabaseName
}
