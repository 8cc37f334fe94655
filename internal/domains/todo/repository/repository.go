package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"todoapp/config"
	"todoapp/infras/mongodb"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model"
	gDto "todoapp/shared/dto"
	gRepo "todoapp/shared/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Todo interface {
	Insert(ctx context.Context, model model.Todo) (bson.ObjectID, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Todo, error)
	GetAll(ctx context.Context, filter gDto.FilterGroup, sort gDto.Sort) ([]model.Todo, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (model.Todo, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	DeleteMany(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Store[model.Todo]
}

func New(db *mongodb.Connection, cfg *config.Config, otel otel.Otel) Todo {
	return &repositoryImpl{
		Store: gRepo.New[model.Todo](cfg, model.EntityName, model.CollectionName, db, otel),
	}
}
