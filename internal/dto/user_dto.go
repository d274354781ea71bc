package dto

import (
	"time"

	"github.com/mihirnarula/consultigo-api/internal/models"
)

// UserCreateRequest registers a new account.
type UserCreateRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=64"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"omitempty,max=128"`
	LastName  string `json:"last_name" validate:"omitempty,max=128"`
}

// UserUpdateRequest modifies profile fields; absent fields are untouched.
type UserUpdateRequest struct {
	FirstName         *string `json:"first_name" validate:"omitempty,max=128"`
	LastName          *string `json:"last_name" validate:"omitempty,max=128"`
	Bio               *string `json:"bio" validate:"omitempty,max=2048"`
	ProfilePictureURL *string `json:"profile_picture_url" validate:"omitempty,url"`
}

// UserResponse is returned to API clients when viewing accounts.
type UserResponse struct {
	ID                uint       `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	Bio               string     `json:"bio"`
	IsActive          bool       `json:"is_active"`
	IsAdmin           bool       `json:"is_admin"`
	LastLogin         *time.Time `json:"last_login"`
	CreatedAt         time.Time  `json:"created_at"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:                model.ID,
		Username:          model.Username,
		Email:             model.Email,
		FirstName:         model.FirstName,
		LastName:          model.LastName,
		ProfilePictureURL: model.ProfilePictureURL,
		Bio:               model.Bio,
		IsActive:          model.IsActive,
		IsAdmin:           model.IsAdmin,
		LastLogin:         model.LastLogin,
		CreatedAt:         model.CreatedAt,
	}
}
