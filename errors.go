package client

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	TextCodeInvalidCredentials = "invalid_credentials"
	TextCodeValidationFailed   = "registration_validation_failed"
	TextCodeMalformedResponse  = "malformed_response"
	TextCodeNoCredential       = "no_credential"
	TextCodeNetworkFailure     = "network_failure"
)

// ErrInvalidCredentials is returned when the token endpoint rejects a login.
var ErrInvalidCredentials = goerrors.New("incorrect email or password", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(goerrors.CodeUnauthorized)

// ErrValidationFailed is returned when the API rejects a registration
// payload, e.g. a duplicate email or wallet address.
var ErrValidationFailed = goerrors.New("registration rejected", goerrors.CategoryValidation).
	WithTextCode(TextCodeValidationFailed).
	WithCode(goerrors.CodeBadRequest)

// ErrMalformedResponse is returned when the server answered 2xx but the body
// is structurally invalid. A 2xx with an unexpected shape is a failure, not
// a degraded success.
var ErrMalformedResponse = goerrors.New("malformed server response", goerrors.CategoryBadInput).
	WithTextCode(TextCodeMalformedResponse).
	WithCode(goerrors.CodeBadRequest)

// ErrNoCredential is returned when an identity fetch is attempted and no
// token exists anywhere: neither passed explicitly nor held by the store.
var ErrNoCredential = goerrors.New("no authentication token available", goerrors.CategoryAuth).
	WithTextCode(TextCodeNoCredential).
	WithCode(goerrors.CodeUnauthorized)

// IsInvalidCredentials reports whether err represents a rejected login.
func IsInvalidCredentials(err error) bool {
	return hasTextCode(err, TextCodeInvalidCredentials)
}

// IsValidationFailed reports whether err represents a rejected registration.
func IsValidationFailed(err error) bool {
	return hasTextCode(err, TextCodeValidationFailed)
}

// IsMalformedResponse reports whether err represents a structurally invalid
// server response.
func IsMalformedResponse(err error) bool {
	return hasTextCode(err, TextCodeMalformedResponse)
}

// IsNoCredential reports whether err means no token was available for an
// identity fetch.
func IsNoCredential(err error) bool {
	return hasTextCode(err, TextCodeNoCredential)
}

// IsNetworkFailure reports whether err represents a transport failure where
// no server response reached the client.
func IsNetworkFailure(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status == 0
	}
	return hasTextCode(err, TextCodeNetworkFailure)
}

// cloneWithMetadata attaches a cause and metadata to a copy of the sentinel.
// Sentinels are shared package state; attaching call-specific details to the
// sentinel itself would leak them into every other caller holding it.
func cloneWithMetadata(sentinel *goerrors.Error, source error, meta map[string]any) *goerrors.Error {
	clone := sentinel.Clone()
	if clone == nil {
		return sentinel
	}
	if source != nil {
		clone.Source = source
	}
	if len(meta) > 0 {
		clone.WithMetadata(meta)
	}
	return clone
}

// hasTextCode walks the whole chain: a wrapped sentinel still matches even
// when the outer wrapper carries no text code of its own.
func hasTextCode(err error, code string) bool {
	for err != nil {
		if richErr, ok := err.(*goerrors.Error); ok && richErr.TextCode == code {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}
