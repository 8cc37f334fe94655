package dto

import (
	"todoapp/internal/domains/user/model"
	"todoapp/shared/constant"
	"todoapp/shared/timezone"
)

// UserResponse is a user as returned to clients, without the password.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func (r *UserResponse) FromModel(user model.User) {
	r.ID = user.ID.Hex()
	r.Name = user.Name
	r.Email = user.Email
	r.CreatedAt = timezone.Format(user.CreatedAt, constant.DateFormat)
}
