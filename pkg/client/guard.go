package client

// Decision is the outcome of a route-guard evaluation.
type Decision int

const (
	// DecisionPending: rehydration has not finished; render nothing yet.
	DecisionPending Decision = iota
	// DecisionDenied: no identity or wrong role; send the caller to login.
	// The stored identity is left untouched — denial is not logout.
	DecisionDenied
	// DecisionAllowed: the identity satisfies the requirement.
	DecisionAllowed
)

func (d Decision) String() string {
	switch d {
	case DecisionPending:
		return "pending"
	case DecisionDenied:
		return "denied"
	default:
		return "allowed"
	}
}

// Guard gates access to protected views based on the current session.
type Guard struct {
	auth *AuthService
}

func NewGuard(auth *AuthService) *Guard {
	return &Guard{auth: auth}
}

// Evaluate decides access for a view requiring requiredRole. An empty
// requiredRole admits any authenticated identity.
func (g *Guard) Evaluate(requiredRole string) Decision {
	if g.auth.Loading() {
		return DecisionPending
	}

	id := g.auth.Identity()
	if id == nil {
		return DecisionDenied
	}
	if requiredRole != "" && id.Role != requiredRole {
		return DecisionDenied
	}
	return DecisionAllowed
}
