package authz

import "strings"

// Role is a platform role. The set is closed: every authenticated user
// carries exactly one of these.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleReviewer  Role = "REVIEWER"
	RoleApplicant Role = "APPLICANT"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleReviewer, RoleApplicant}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReviewer, RoleApplicant:
		return true
	}
	return false
}

// Format returns the role in display form, e.g. "Admin".
func (r Role) Format() string {
	s := string(r)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// ParseRole normalises a user-supplied role string. Returns the zero Role
// when the input does not name a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", false
	}
	return r, true
}
