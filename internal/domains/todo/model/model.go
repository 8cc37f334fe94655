package model

import (
	"todoapp/shared/model"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CollectionName = "todos"
	EntityName     = "todo"

	FieldTitle     = "title"
	FieldCompleted = "completed"
)

type Todo struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	Completed bool          `bson:"completed"`

	model.Timestamps `bson:",inline"`
}
