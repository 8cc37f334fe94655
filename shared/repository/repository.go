package repository

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"todoapp/infras/mongodb"
	"todoapp/infras/otel"
	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/logger"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	errRequiredFilter = errors.New("required filter")
	errInsertedID     = errors.New("unexpected inserted id type")
)

// Repository is a document collection bound to the entity type T. Every call
// obtains the collection from the shared connection, so a store that is down
// at startup is retried on the next request.
type Repository[T any] struct {
	db         *mongodb.Connection
	otel       otel.Otel
	collection string
	entitas    string
}

func NewRepository[T any](entitasName, collectionName string, dbConnection *mongodb.Connection, otl otel.Otel) Repository[T] {
	return Repository[T]{
		db:         dbConnection,
		otel:       otl,
		collection: collectionName,
		entitas:    entitasName,
	}
}

func (repo *Repository[T]) coll(ctx context.Context) (*mongo.Collection, error) {
	coll, err := repo.db.Collection(ctx, repo.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to get collection (%s): %w", repo.collection, err)
	}

	return coll, nil
}

func (repo *Repository[T]) Insert(ctx context.Context, model T) (bson.ObjectID, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	scope.SetAttribute(constant.OtelCollectionAttributeKey, repo.collection)

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return bson.NilObjectID, err
	}

	res, err := coll.InsertOne(ctx, model)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return bson.NilObjectID, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("%w (%s): %T", errInsertedID, repo.entitas, res.InsertedID)
	}

	return id, nil
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := filter.ToBSON()
	if len(query) == 0 {
		return false, errRequiredFilter
	}

	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: repo.collection,
		constant.OtelFilterAttributeKey:     query,
	})

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return false, err
	}

	count, err := coll.CountDocuments(ctx, query, options.Count().SetLimit(1))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	return count > 0, nil
}

// Get returns the first matching document, or the zero value of T when
// nothing matches.
func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	query := filter.ToBSON()
	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: repo.collection,
		constant.OtelFilterAttributeKey:     query,
	})

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return model, err
	}

	err = coll.FindOne(ctx, query).Decode(&model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

func (repo *Repository[T]) GetAll(ctx context.Context, filter dto.FilterGroup, sort dto.Sort) ([]T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	models := []T{}

	query := filter.ToBSON()
	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: repo.collection,
		constant.OtelFilterAttributeKey:     query,
	})

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return models, err
	}

	opts := options.Find()
	if order := sort.ToBSON(); order != nil {
		opts.SetSort(order)
	}

	cursor, err := coll.Find(ctx, query, opts)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	if err = cursor.All(ctx, &models); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return []T{}, fmt.Errorf("failed to decode all data (%s): %w", repo.entitas, err)
	}

	if models == nil {
		models = []T{}
	}

	return models, nil
}

// Update applies fields to the first matching document and returns the
// document as it is after the update. The zero value of T means nothing
// matched.
func (repo *Repository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (T, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Update", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	query := filter.ToBSON()
	if len(query) == 0 {
		return model, errRequiredFilter
	}

	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: repo.collection,
		constant.OtelFilterAttributeKey:     query,
	})

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return model, err
	}

	update := mongo.Pipeline{{{Key: "$set", Value: setStage(fields)}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err = coll.FindOneAndUpdate(ctx, query, update, opts).Decode(&model)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return model, fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	return model, nil
}

// Delete removes at most one matching document and reports how many were removed.
func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := filter.ToBSON()
	if len(query) == 0 {
		return 0, errRequiredFilter
	}

	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: repo.collection,
		constant.OtelFilterAttributeKey:     query,
	})

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return 0, err
	}

	res, err := coll.DeleteOne(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	return res.DeletedCount, nil
}

// DeleteMany removes every matching document. An empty filter empties the collection.
func (repo *Repository[T]) DeleteMany(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.DeleteMany", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := filter.ToBSON()
	scope.SetAttributes(map[string]any{
		constant.OtelCollectionAttributeKey: repo.collection,
		constant.OtelFilterAttributeKey:     query,
	})

	coll, err := repo.coll(ctx)
	if err != nil {
		scope.TraceError(err)

		return 0, err
	}

	res, err := coll.DeleteMany(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete all data (%s): %w", repo.entitas, err)
	}

	return res.DeletedCount, nil
}

// setStage renders fields as a pipeline $set stage. Values are wrapped in
// $literal so strings starting with "$" are not read as field paths.
// updatedAt is moved at least one millisecond past its stored value.
func setStage(fields map[string]any) bson.D {
	keys := slices.Sorted(maps.Keys(fields))
	stage := make(bson.D, 0, len(keys))

	for _, key := range keys {
		var value any = bson.D{{Key: "$literal", Value: fields[key]}}

		if key == constant.FieldUpdatedAt {
			value = bson.D{{Key: "$max", Value: bson.A{
				fields[key],
				bson.D{{Key: "$add", Value: bson.A{"$" + key, 1}}},
			}}}
		}

		stage = append(stage, bson.E{Key: key, Value: value})
	}

	return stage
}
