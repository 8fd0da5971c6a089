package api

import (
	"context"
	"fmt"
)

// ProvidersService handles service-provider records.
type ProvidersService struct {
	client *Client
}

// ProviderRequest carries the provider fields for create and update.
type ProviderRequest struct {
	BusinessName  string `json:"businessName" validate:"required"`
	ContactPerson string `json:"contactPerson" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
}

// List returns all providers.
func (s *ProvidersService) List(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	if err := s.client.get(ctx, "/providers", &providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// Get retrieves a provider by ID.
func (s *ProvidersService) Get(ctx context.Context, id int) (*Provider, error) {
	var p Provider
	if err := s.client.get(ctx, fmt.Sprintf("/providers/%d", id), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create registers a provider owned by the given user.
func (s *ProvidersService) Create(ctx context.Context, userID int, req ProviderRequest) (*Provider, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var p Provider
	if err := s.client.post(ctx, fmt.Sprintf("/providers/user/%d", userID), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update replaces a provider's fields.
func (s *ProvidersService) Update(ctx context.Context, id int, req ProviderRequest) (*Provider, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var p Provider
	if err := s.client.put(ctx, fmt.Sprintf("/providers/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a provider.
func (s *ProvidersService) Delete(ctx context.Context, id int) error {
	return s.client.delete(ctx, fmt.Sprintf("/providers/%d", id))
}
