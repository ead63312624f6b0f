package client

import "regexp"

var bearerPrefix = regexp.MustCompile(`^(?i:Bearer)\s+`)

// TokenResponse is the body returned by the token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NormalizeBearerToken strips any leading "Bearer " scheme from a token,
// repeatedly, so the result never carries the prefix no matter how many
// times a caller already applied it. The scheme is added back in exactly one
// place: the authorization interceptor.
func NormalizeBearerToken(token string) string {
	for bearerPrefix.MatchString(token) {
		token = bearerPrefix.ReplaceAllString(token, "")
	}
	return token
}
