package dto

import (
	"time"

	"stockroom/internal/domain"
)

type SignInRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=3,max=72"`
}

type SignInResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

type CreateUserRequest struct {
	Username   string  `json:"username" validate:"required,min=3,max=50"`
	Password   string  `json:"password" validate:"required,min=3,max=72"`
	FirstName  string  `json:"first_name" validate:"required"`
	LastName   string  `json:"last_name" validate:"required"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Department *string `json:"department,omitempty"`
	IsAdmin    bool    `json:"is_admin"`
}

type UpdateUserRequest struct {
	Password   *string `json:"password,omitempty" validate:"omitempty,min=3,max=72"`
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Department *string `json:"department,omitempty"`
	IsAdmin    *bool   `json:"is_admin,omitempty"`
}

type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      *string   `json:"email,omitempty"`
	Department *string   `json:"department,omitempty"`
	IsAdmin    bool      `json:"is_admin"`
	CreatedAt  time.Time `json:"created_at"`
}

func UserFromDomain(user *domain.User) *User {
	if user == nil {
		return nil
	}
	return &User{
		ID:         user.ID,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Department: user.Department,
		IsAdmin:    user.IsAdmin,
		CreatedAt:  user.CreatedAt,
	}
}

func UsersFromDomain(users []*domain.User) []*User {
	result := make([]*User, len(users))
	for i, user := range users {
		result[i] = UserFromDomain(user)
	}
	return result
}
