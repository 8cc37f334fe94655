package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"todoapp/config"
	"todoapp/infras/mongodb"
	"todoapp/infras/otel"
	"todoapp/internal/domains/user/model"
	gDto "todoapp/shared/dto"
	gRepo "todoapp/shared/repository"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User interface {
	Insert(ctx context.Context, model model.User) (bson.ObjectID, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
}

type repositoryImpl struct {
	gRepo.Store[model.User]
}

func New(db *mongodb.Connection, cfg *config.Config, otel otel.Otel) User {
	return &repositoryImpl{
		Store: gRepo.New[model.User](cfg, model.EntityName, model.CollectionName, db, otel, model.FieldEmail),
	}
}
