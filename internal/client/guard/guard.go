// Package guard decides whether a protected view may render, as a pure
// function of session state and an optional role allow-list.
package guard

import (
	"slices"

	"github.com/mkazymov/dealerdesk/internal/client/session"
	"github.com/mkazymov/dealerdesk/internal/models"
)

// Decision is the rendering outcome for a protected view.
type Decision int

const (
	// Show renders the protected content.
	Show Decision = iota
	// Loading renders a progress indicator while the session is unresolved.
	Loading
	// Deny renders nothing; the caller redirects to login or reports the
	// missing role.
	Deny
)

func (d Decision) String() string {
	switch d {
	case Show:
		return "show"
	case Loading:
		return "loading"
	default:
		return "deny"
	}
}

// Evaluate gates a view. An empty allow-list admits any authenticated
// role; otherwise the session's role must be listed.
func Evaluate(state session.State, role models.Role, allowed ...models.Role) Decision {
	switch state {
	case session.StateUnknown, session.StateChecking:
		return Loading
	case session.StateAuthenticated:
		if len(allowed) == 0 || slices.Contains(allowed, role) {
			return Show
		}
		return Deny
	default:
		return Deny
	}
}
