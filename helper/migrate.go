package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net/url"

	"todoapp/config"
	"todoapp/shared/constant"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const (
	migrationSource          = "file://migrations/mongodb"
	migrationsCollectionArg  = "x-migrations-collection"
	defaultMigrationCollName = "schema_migrations"
)

var ErrMemoryDriver = errors.New("migrations are not supported by the memory driver")

// migrationURL points the migrate driver at the configured database. The
// database named in DB_MONGO_DATABASE wins over the one in the URI path.
func migrationURL(config *config.Config) (string, error) {
	uri, err := url.Parse(config.DB.Mongo.URI)
	if err != nil {
		return "", fmt.Errorf("error parsing mongo uri: %w", err)
	}

	database := config.DB.Mongo.Database
	if database == "" {
		database = constant.DefaultDatabaseName
	}

	collection := config.DB.Mongo.MigrationCollection
	if collection == "" {
		collection = defaultMigrationCollName
	}

	uri.Path = "/" + database

	query := uri.Query()
	query.Set(migrationsCollectionArg, collection)
	uri.RawQuery = query.Encode()

	return uri.String(), nil
}

func getConnection(config *config.Config) (*migrate.Migrate, error) {
	if config.DB.Driver == constant.DBDriverMemory {
		return nil, ErrMemoryDriver
	}

	connectionString, err := migrationURL(config)
	if err != nil {
		return nil, err
	}

	mig, err := migrate.New(
		migrationSource,
		connectionString,
	)
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func Runner(config *config.Config, action string) error {
	mig, err := getConnection(config)
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch action {
	case "up":
		if err := mig.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case "down":
		if err := mig.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	case "step-up":
		if err := mig.Steps(1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error running migrations: %w", err)
		}

		log.Info().Msg("Database migrations completed successfully")

		return nil
	case "drop":
		if err := mig.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("error rolling back migrations: %w", err)
		}

		log.Info().Msg("Database migrations rolled back successfully")

		return nil
	}

	return fmt.Errorf("unknown migration action %q", action)
}

func Up(config *config.Config) error {
	return Runner(config, "up")
}

func StepUp(config *config.Config) error {
	return Runner(config, "step-up")
}

func Down(config *config.Config) error {
	return Runner(config, "down")
}

func Drop(config *config.Config) error {
	return Runner(config, "drop")
}
