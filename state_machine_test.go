package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	client "github.com/gpugrid/go-client"
)

func TestValidTransition(t *testing.T) {
	tests := []struct {
		from  client.AuthState
		to    client.AuthState
		valid bool
	}{
		{client.StateAnonymous, client.StateAuthenticating, true},
		{client.StateAnonymous, client.StateAnonymous, true},
		{client.StateAuthenticating, client.StateAuthenticated, true},
		{client.StateAuthenticating, client.StateAnonymous, true},
		{client.StateAuthenticated, client.StateAuthenticating, true},
		{client.StateAuthenticated, client.StateAnonymous, true},
		{client.StateAnonymous, client.StateAuthenticated, false},
		{client.StateAuthenticating, client.StateAuthenticating, false},
		{client.StateAuthenticated, client.StateAuthenticated, false},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.valid, client.ValidTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestInvalidTransitionErrorCode(t *testing.T) {
	assert.Equal(t, "INVALID_AUTH_STATE_TRANSITION", client.ErrInvalidTransition.TextCode)
	assert.Nil(t, client.ErrInvalidTransition.Metadata)
}
