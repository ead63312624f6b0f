package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	client "github.com/gpugrid/go-client"
)

func TestNormalizeBearerToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"plain token untouched", "abc123", "abc123"},
		{"single prefix stripped", "Bearer abc123", "abc123"},
		{"lowercase scheme stripped", "bearer abc123", "abc123"},
		{"extra whitespace stripped", "Bearer   abc123", "abc123"},
		{"double prefix stripped", "Bearer Bearer abc123", "abc123"},
		{"empty token", "", ""},
		{"scheme inside token preserved", "abcBearer 123", "abcBearer 123"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, client.NormalizeBearerToken(tc.token))
		})
	}
}

func TestNormalizeBearerTokenIdempotent(t *testing.T) {
	once := client.NormalizeBearerToken("Bearer abc123")
	twice := client.NormalizeBearerToken(once)
	assert.Equal(t, once, twice)
}

func TestNewSessionNormalizesToken(t *testing.T) {
	session := client.NewSession(client.Identity{ID: 1}, "Bearer abc123")
	assert.Equal(t, "abc123", session.AccessToken)
}
