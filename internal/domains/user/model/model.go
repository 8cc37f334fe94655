package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	CollectionName = "users"
	EntityName     = "user"

	FieldEmail = "email"
)

// User is read-only after signup. Password holds a bcrypt hash.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Name      string        `bson:"name"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
}
