package api

import (
	"context"
	"fmt"
)

// ApplicationsService handles business-application operations.
type ApplicationsService struct {
	client *Client
}

// CreateApplicationRequest is the request for submitting an application.
type CreateApplicationRequest struct {
	BusinessName  string `json:"businessName" validate:"required"`
	ContactPerson string `json:"contactPerson" validate:"required"`
	PortfolioLink string `json:"portfolioLink,omitempty" validate:"omitempty,url"`
}

// ListByUser returns the applications submitted by one applicant.
func (s *ApplicationsService) ListByUser(ctx context.Context, userID int) ([]Application, error) {
	var apps []Application
	if err := s.client.get(ctx, fmt.Sprintf("/applications/user/%d", userID), &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Create submits a new application on behalf of the given applicant.
func (s *ApplicationsService) Create(ctx context.Context, userID int, req CreateApplicationRequest) (*Application, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var app Application
	if err := s.client.post(ctx, fmt.Sprintf("/applications/user/%d", userID), req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// List returns every application in the system.
func (s *ApplicationsService) List(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := s.client.get(ctx, "/applications", &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// Get retrieves a single application by ID.
func (s *ApplicationsService) Get(ctx context.Context, id int) (*Application, error) {
	var app Application
	if err := s.client.get(ctx, fmt.Sprintf("/applications/%d", id), &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Approve approves an application. Comments travel as a raw text body.
func (s *ApplicationsService) Approve(ctx context.Context, id int, comments string) (*Application, error) {
	var app Application
	if err := s.client.putText(ctx, fmt.Sprintf("/applications/%d/approve", id), comments, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// Reject rejects an application. Comments travel as a raw text body.
func (s *ApplicationsService) Reject(ctx context.Context, id int, comments string) (*Application, error) {
	var app Application
	if err := s.client.putText(ctx, fmt.Sprintf("/applications/%d/reject", id), comments, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
