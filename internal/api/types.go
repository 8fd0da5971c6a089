package api

import (
	"github.com/provhub/provctl/internal/authz"
)

// ApplicationStatus is the review state of a provider application.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	StatusApproved    ApplicationStatus = "APPROVED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

// User is a platform account as the backend returns it. Name is optional;
// screens fall back to the email when it is empty.
type User struct {
	ID    int        `json:"id"`
	Name  string     `json:"name,omitempty"`
	Email string     `json:"email"`
	Role  authz.Role `json:"role"`
}

// DisplayName returns the user's name, falling back to the email.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

// Application is a business application submitted by an applicant.
type Application struct {
	ID            int               `json:"id"`
	BusinessName  string            `json:"businessName"`
	ContactPerson string            `json:"contactPerson"`
	Status        ApplicationStatus `json:"status"`
	Comments      string            `json:"comments,omitempty"`
	PortfolioLink string            `json:"portfolioLink,omitempty"`
	CreatedAt     string            `json:"createdAt"`
}

// Provider is an approved service provider.
type Provider struct {
	ID            int    `json:"id"`
	BusinessName  string `json:"businessName"`
	ContactPerson string `json:"contactPerson"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phoneNumber"`
}
