package api

import (
	"context"

	"github.com/provhub/provctl/internal/authz"
)

// AuthService handles credential exchange and account registration.
type AuthService struct {
	client *Client
}

// LoginRequest is the request for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the credential-exchange response. Only these fields are
// consumed; anything else the backend sends is dropped.
type LoginResponse struct {
	ID    int        `json:"id"`
	Token string     `json:"token"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`
}

// RegisterRequest is the request for creating an account.
type RegisterRequest struct {
	Name     string     `json:"name" validate:"required"`
	Email    string     `json:"email" validate:"required,email"`
	Password string     `json:"password" validate:"required,min=6"`
	Role     authz.Role `json:"role" validate:"required"`
}

// Login exchanges credentials for a bearer token and the caller's identity
// fields. The token is NOT installed on the client; session management owns
// that side effect.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := s.client.post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account. The response body is not consumed; a new
// account does not log itself in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}
	return s.client.post(ctx, "/auth/register", req, nil)
}

// Profile fetches the authenticated user's profile.
func (s *AuthService) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := s.client.get(ctx, "/users/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
