package mongodb

import (
	"context"
	"testing"

	"todoapp/config"
	"todoapp/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(uri string) *config.Config {
	cfg := &config.Config{}
	cfg.DB.Driver = constant.DBDriverMongo
	cfg.DB.Mongo.URI = uri
	cfg.DB.Mongo.MaxPoolSize = 10
	cfg.DB.Mongo.MinPoolSize = 5
	cfg.DB.Mongo.ConnectTimeoutSeconds = 1

	return cfg
}

func TestConnect_MalformedURI(t *testing.T) {
	conn := New(newConfig("not-a-mongo-uri"))

	db, err := conn.Connect(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnection)
	assert.Nil(t, db)
}

func TestConnect_Unreachable(t *testing.T) {
	conn := New(newConfig("mongodb://127.0.0.1:1/todoapp"))

	_, err := conn.Connect(context.Background())
	require.ErrorIs(t, err, ErrConnection)

	// a failed attempt is not memoized
	_, err = conn.Collection(context.Background(), "todos")
	assert.ErrorIs(t, err, ErrConnection)
}

func TestPing_MemoryDriver(t *testing.T) {
	cfg := newConfig("not-a-mongo-uri")
	cfg.DB.Driver = constant.DBDriverMemory

	assert.NoError(t, New(cfg).Ping(context.Background()))
}

func TestDisconnect_WithoutConnect(t *testing.T) {
	conn := New(newConfig("mongodb://127.0.0.1:1/todoapp"))

	assert.NoError(t, conn.Disconnect(context.Background()))
}

func TestDatabaseName(t *testing.T) {
	cfg := newConfig("mongodb://localhost:27017")
	assert.Equal(t, constant.DefaultDatabaseName, databaseName(cfg))

	cfg.DB.Mongo.Database = "other"
	assert.Equal(t, "other", databaseName(cfg))
}
