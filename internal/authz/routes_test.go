package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultRouteFor(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleAdmin, "/admin/dashboard"},
		{RoleReviewer, "/reviewer/dashboard"},
		{RoleApplicant, "/applicant/dashboard"},
		{"", "/"},
		{"SUPERUSER", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultRouteFor(tt.role), "role %q", tt.role)
	}
}

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{RouteAdminDashboard, RouteAdminDashboard},
		{RouteLogin, RouteLogin},
		{RouteApplicantNewApplication, RouteApplicantNewApplication},
		{RouteDashboard, RouteHome},
		{"/no/such/route", RouteHome},
		{"", RouteHome},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ResolveRoute(tt.path), "path %q", tt.path)
	}
}

func TestRouteRoles(t *testing.T) {
	assert.Equal(t, []Role{RoleAdmin}, RouteRoles(RouteAdminProviders))
	assert.Equal(t, []Role{RoleReviewer}, RouteRoles(RouteReviewerApplications))
	assert.Equal(t, []Role{RoleApplicant}, RouteRoles(RouteApplicantNewApplication))
	assert.Nil(t, RouteRoles(RouteHome))
	assert.Nil(t, RouteRoles(RouteLogin))
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole(" admin ")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	_, ok = ParseRole("root")
	assert.False(t, ok)

	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestRoleFormat(t *testing.T) {
	assert.Equal(t, "Admin", RoleAdmin.Format())
	assert.Equal(t, "Reviewer", RoleReviewer.Format())
	assert.Equal(t, "", Role("").Format())
}
