package authz

// SessionState is the guard's view of the session lifecycle.
type SessionState int

const (
	// StateInitializing means hydration from the session store has not
	// finished yet; the guard must not decide until it has.
	StateInitializing SessionState = iota
	// StateAnonymous means no valid session exists.
	StateAnonymous
	// StateAuthenticated means a valid session with an identity exists.
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// DecisionKind enumerates the guard's terminal outcomes plus the one
// transient loading outcome.
type DecisionKind int

const (
	// DecisionLoading: render a wait indicator, nothing else.
	DecisionLoading DecisionKind = iota
	// DecisionRedirectLogin: send the visitor to the login route,
	// remembering where they were headed.
	DecisionRedirectLogin
	// DecisionDenied: authenticated but the role is not on the allow-list.
	// Rendered in place, no redirect, and nothing from the guarded subtree
	// may leak.
	DecisionDenied
	// DecisionAllow: render the guarded subtree unchanged.
	DecisionAllow
)

// Decision is the explicit navigation-intent result of a guard check. The
// caller performs any navigation; the guard itself has no side effects.
type Decision struct {
	Kind DecisionKind

	// RedirectTo and From are set for DecisionRedirectLogin: the route to
	// navigate to and the originally requested route, so login can return
	// the user there afterwards.
	RedirectTo string
	From       string

	// Role and Required are set for DecisionDenied: the session's actual
	// role and the allow-list it failed.
	Role     Role
	Required []Role
}

// Guard gates a protected subtree. allowedRoles empty means open to every
// authenticated role. Pure: same inputs, same decision.
func Guard(state SessionState, role Role, allowedRoles []Role, from string) Decision {
	if state == StateInitializing {
		return Decision{Kind: DecisionLoading}
	}

	if state != StateAuthenticated {
		return Decision{Kind: DecisionRedirectLogin, RedirectTo: RouteLogin, From: from}
	}

	if len(allowedRoles) > 0 && !containsRole(allowedRoles, role) {
		return Decision{Kind: DecisionDenied, Role: role, Required: allowedRoles}
	}

	return Decision{Kind: DecisionAllow}
}

func containsRole(roles []Role, r Role) bool {
	for _, allowed := range roles {
		if allowed == r {
			return true
		}
	}
	return false
}
