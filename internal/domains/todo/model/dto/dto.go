package dto

import (
	"strings"
	"time"

	"todoapp/internal/domains/todo/model"
	gDto "todoapp/shared/dto"
	gModel "todoapp/shared/model"
)

type CreateTodoRequest struct {
	Title string `json:"title" validate:"required,notblank"`
}

// Normalize trims surrounding whitespace from the title.
func (c *CreateTodoRequest) Normalize() {
	c.Title = strings.TrimSpace(c.Title)
}

func (c *CreateTodoRequest) ToModel(now time.Time) model.Todo {
	return model.Todo{
		Title:     c.Title,
		Completed: false,
		Timestamps: gModel.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// UpdateTodoRequest carries a partial update; nil fields are left untouched.
type UpdateTodoRequest struct {
	Title     *string `bson:"title"     json:"title"     validate:"omitempty,notblank"`
	Completed *bool   `bson:"completed" json:"completed"`
}

func (u *UpdateTodoRequest) Normalize() {
	if u.Title != nil {
		title := strings.TrimSpace(*u.Title)
		u.Title = &title
	}
}

type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	gDto.Timestamps
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID.Hex()
	r.Title = model.Title
	r.Completed = model.Completed
	r.Timestamps.FromModel(model.Timestamps)
}

func FromModels(models []model.Todo) []TodoResponse {
	res := make([]TodoResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}
