package repository

import (
	"context"

	"todoapp/config"
	"todoapp/infras/mongodb"
	"todoapp/infras/otel"
	"todoapp/shared/constant"
	"todoapp/shared/dto"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Store is the set of document operations shared by every backend.
type Store[T any] interface {
	Insert(ctx context.Context, model T) (bson.ObjectID, error)
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
	Get(ctx context.Context, filter dto.FilterGroup) (T, error)
	GetAll(ctx context.Context, filter dto.FilterGroup, sort dto.Sort) ([]T, error)
	Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (T, error)
	Delete(ctx context.Context, filter dto.FilterGroup) (int64, error)
	DeleteMany(ctx context.Context, filter dto.FilterGroup) (int64, error)
}

// New picks the backend configured in DB_DRIVER. uniqueFields only matter for
// the memory backend; the document store enforces them through its indexes.
func New[T any](cfg *config.Config, entitasName, collectionName string, db *mongodb.Connection, otl otel.Otel, uniqueFields ...string) Store[T] {
	if cfg.DB.Driver == constant.DBDriverMemory {
		return NewMemoryRepository[T](entitasName, otl, uniqueFields...)
	}

	repo := NewRepository[T](entitasName, collectionName, db, otl)

	return &repo
}
