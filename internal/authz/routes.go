package authz

import "strings"

// Client-side routing surface. Protected commands are bound to one of
// these paths; the guard decides whether the subtree may render.
const (
	RouteHome     = "/"
	RouteLogin    = "/login"
	RouteRegister = "/register"

	RouteAdminDashboard    = "/admin/dashboard"
	RouteAdminUsers        = "/admin/users"
	RouteAdminApplications = "/admin/applications"
	RouteAdminProviders    = "/admin/providers"

	RouteReviewerDashboard    = "/reviewer/dashboard"
	RouteReviewerApplications = "/reviewer/applications"

	RouteApplicantDashboard      = "/applicant/dashboard"
	RouteApplicantApplications   = "/applicant/applications"
	RouteApplicantNewApplication = "/applicant/applications/new"

	// RouteDashboard is a legacy alias kept for old bookmarks; it
	// resolves to home.
	RouteDashboard = "/dashboard"
)

// DefaultRouteFor maps a role to its landing route. Total: anything outside
// the closed enum (including the zero Role) falls through to home.
func DefaultRouteFor(role Role) string {
	switch role {
	case RoleAdmin:
		return RouteAdminDashboard
	case RoleReviewer:
		return RouteReviewerDashboard
	case RoleApplicant:
		return RouteApplicantDashboard
	default:
		return RouteHome
	}
}

// ResolveRoute canonicalises a requested path. Known routes pass through
// unchanged; the legacy dashboard alias and any unrecognised path land
// on home.
func ResolveRoute(path string) string {
	switch path {
	case RouteHome, RouteLogin, RouteRegister,
		RouteAdminDashboard, RouteAdminUsers, RouteAdminApplications, RouteAdminProviders,
		RouteReviewerDashboard, RouteReviewerApplications,
		RouteApplicantDashboard, RouteApplicantApplications, RouteApplicantNewApplication:
		return path
	default:
		return RouteHome
	}
}

// RouteRoles returns the role allow-list for a route. Each role owns its
// own subtree; an empty list means any authenticated user may enter.
func RouteRoles(path string) []Role {
	switch {
	case strings.HasPrefix(path, "/admin/"):
		return []Role{RoleAdmin}
	case strings.HasPrefix(path, "/reviewer/"):
		return []Role{RoleReviewer}
	case strings.HasPrefix(path, "/applicant/"):
		return []Role{RoleApplicant}
	default:
		return nil
	}
}
