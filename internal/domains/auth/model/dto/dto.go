package dto

import (
	"strings"
	"time"

	userModel "todoapp/internal/domains/user/model"
	userDto "todoapp/internal/domains/user/model/dto"
)

// UserResponse is the account returned by signup.
type UserResponse = userDto.UserResponse

type SignupRequest struct {
	Name     string `json:"name"     validate:"required,notblank"`
	Email    string `json:"email"    validate:"required,emailshape"`
	Password string `json:"password" validate:"required,min=6"`
}

// Normalize trims the name and canonicalizes the email. The password is kept
// exactly as sent.
func (r *SignupRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

func (r *SignupRequest) ToUserModel(hashedPassword string, now time.Time) userModel.User {
	return userModel.User{
		Name:      r.Name,
		Email:     r.Email,
		Password:  hashedPassword,
		CreatedAt: now,
	}
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (l *LoginRequest) Normalize() {
	l.Email = NormalizeEmail(l.Email)
}

// LoginResponse is the minimal identity a client keeps after logging in.
type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (l *LoginResponse) FromModel(user userModel.User) {
	l.Name = user.Name
	l.Email = user.Email
}

// NormalizeEmail is the lookup form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
