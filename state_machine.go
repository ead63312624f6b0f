package client

import goerrors "github.com/goliatone/go-errors"

const textCodeInvalidTransition = "INVALID_AUTH_STATE_TRANSITION"

// ErrInvalidTransition is returned when a requested auth state change is not
// allowed, e.g. starting a login while another one is in flight.
var ErrInvalidTransition = goerrors.New("invalid auth state transition", goerrors.CategoryConflict).
	WithTextCode(textCodeInvalidTransition).
	WithCode(goerrors.CodeConflict)

// AuthState is the client-side authentication lifecycle state.
type AuthState string

const (
	// StateAnonymous means no session is held.
	StateAnonymous AuthState = "anonymous"
	// StateAuthenticating means a login or registration is in flight.
	StateAuthenticating AuthState = "authenticating"
	// StateAuthenticated means a session with a credential is held.
	StateAuthenticated AuthState = "authenticated"
)

// authTransitions is the transition graph. Authenticating resolves to either
// outcome; an established session may re-authenticate or log out.
var authTransitions = map[AuthState][]AuthState{
	StateAnonymous:      {StateAuthenticating, StateAnonymous},
	StateAuthenticating: {StateAuthenticated, StateAnonymous},
	StateAuthenticated:  {StateAuthenticating, StateAnonymous},
}

// ValidTransition reports whether moving from one auth state to another is
// allowed.
func ValidTransition(from, to AuthState) bool {
	for _, next := range authTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
