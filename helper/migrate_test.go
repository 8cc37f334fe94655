package helper

import (
	"testing"

	"todoapp/config"
	"todoapp/shared/constant"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationURL(t *testing.T) {
	tests := []struct {
		name       string
		uri        string
		database   string
		collection string
		expected   string
	}{
		{
			name:       "replaces database from uri path",
			uri:        "mongodb://localhost:27017/other",
			database:   "todoapp",
			collection: "schema_migrations",
			expected:   "mongodb://localhost:27017/todoapp?x-migrations-collection=schema_migrations",
		},
		{
			name:       "keeps existing query options",
			uri:        "mongodb://user:pass@db:27017/?authSource=admin",
			database:   "todoapp",
			collection: "migrations",
			expected:   "mongodb://user:pass@db:27017/todoapp?authSource=admin&x-migrations-collection=migrations",
		},
		{
			name:     "falls back to defaults",
			uri:      "mongodb://localhost:27017",
			expected: "mongodb://localhost:27017/todoapp?x-migrations-collection=schema_migrations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.DB.Mongo.URI = tt.uri
			cfg.DB.Mongo.Database = tt.database
			cfg.DB.Mongo.MigrationCollection = tt.collection

			got, err := migrationURL(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMigrationURL_InvalidURI(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Mongo.URI = "mongodb://bad host\x7f"

	_, err := migrationURL(cfg)

	assert.Error(t, err)
}

func TestRunner_MemoryDriver(t *testing.T) {
	cfg := &config.Config{}
	cfg.DB.Driver = constant.DBDriverMemory

	err := Up(cfg)

	assert.ErrorIs(t, err, ErrMemoryDriver)
}
