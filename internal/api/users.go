package api

import (
	"context"
	"fmt"

	"github.com/provhub/provctl/internal/authz"
)

// UsersService handles account administration.
type UsersService struct {
	client *Client
}

// CreateUserRequest is the request for creating an account as an admin.
type CreateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     authz.Role `json:"role" validate:"required"`
}

// UpdateUserRequest is the request for updating an account. Password is
// optional; empty means keep the current one.
type UpdateUserRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password,omitempty" validate:"omitempty,min=6"`
	Role     authz.Role `json:"role" validate:"required"`
}

// List returns all accounts.
func (s *UsersService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.client.get(ctx, "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create adds an account.
func (s *UsersService) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var user User
	if err := s.client.post(ctx, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update modifies an account.
func (s *UsersService) Update(ctx context.Context, id int, req UpdateUserRequest) (*User, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var user User
	if err := s.client.put(ctx, fmt.Sprintf("/users/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes an account.
func (s *UsersService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/users/%d", id))
}
