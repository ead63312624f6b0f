package client

import (
	"context"
	"errors"
	"net/url"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// Authenticator orchestrates login, registration, current-user retrieval,
// and logout over an APIClient and a SessionStore. It is the store's only
// writer; login and registration update it exactly once, atomically, so no
// observer ever sees an identity without a credential.
type Authenticator struct {
	api      *APIClient
	store    *SessionStore
	routes   AuthRoutes
	logger   Logger
	onLogout func()

	mu       sync.Mutex
	inflight int
}

// AuthOption customizes Authenticator construction.
type AuthOption func(*Authenticator)

// WithAuthLogger overrides the authenticator logger.
func WithAuthLogger(logger Logger) AuthOption {
	return func(a *Authenticator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithAuthRoutes overrides the auth endpoints.
func WithAuthRoutes(routes AuthRoutes) AuthOption {
	return func(a *Authenticator) {
		a.routes = routes
	}
}

// WithLogoutHandler sets the navigation callback Logout invokes after the
// session is cleared, typically routing the UI back to the login view.
func WithLogoutHandler(fn func()) AuthOption {
	return func(a *Authenticator) {
		a.onLogout = fn
	}
}

// NewAuthenticator wires an authenticator over the given client and store.
func NewAuthenticator(api *APIClient, store *SessionStore, opts ...AuthOption) *Authenticator {
	a := &Authenticator{
		api:    api,
		store:  store,
		routes: DefaultAuthRoutes(),
		logger: defLogger{},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// State returns the current lifecycle state: Authenticating while a login or
// registration is in flight, otherwise derived from the store.
func (a *Authenticator) State() AuthState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *Authenticator) stateLocked() AuthState {
	if a.inflight > 0 {
		return StateAuthenticating
	}
	if session := a.store.Get(); session != nil && session.AccessToken != "" {
		return StateAuthenticated
	}
	return StateAnonymous
}

func (a *Authenticator) begin() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	from := a.stateLocked()
	if !ValidTransition(from, StateAuthenticating) {
		return cloneWithMetadata(ErrInvalidTransition, nil, map[string]any{
			"from": string(from),
			"to":   string(StateAuthenticating),
		})
	}

	a.inflight++
	return nil
}

func (a *Authenticator) end() {
	a.mu.Lock()
	a.inflight--
	a.mu.Unlock()
}

// Login exchanges credentials for a bearer token, fetches the identity it
// belongs to, and replaces the session in one atomic Set. On any failure the
// store is left untouched; a 4xx from the token endpoint surfaces as
// ErrInvalidCredentials, everything else propagates as-is.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*Session, error) {
	payload := LoginPayload{Email: email, Password: password}
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid login payload").
			WithTextCode(TextCodeInvalidCredentials)
	}

	if err := a.begin(); err != nil {
		return nil, err
	}
	defer a.end()

	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var token TokenResponse
	err := a.api.Post(ctx, a.routes.Login, form, &token)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			a.logger.Info("login rejected for %s: %s", email, apiErr.Message)
			return nil, cloneWithMetadata(ErrInvalidCredentials, apiErr, apiErr.Metadata())
		}
		return nil, err
	}

	if token.AccessToken == "" {
		return nil, cloneWithMetadata(ErrMalformedResponse, nil, map[string]any{
			"reason": "token endpoint returned no access_token",
		})
	}

	// The identity fetch is strictly sequenced after credential acquisition.
	identity, err := a.CurrentUser(ctx, token.AccessToken)
	if err != nil {
		return nil, err
	}

	session := NewSession(*identity, token.AccessToken)
	a.store.Set(session)

	a.logger.Debug("login completed for user id=%d", identity.ID)
	return session, nil
}

// Register creates an account, then establishes a session with an explicit
// follow-up Login using the same credentials: registration alone never
// yields a usable session. A 4xx from the registration endpoint surfaces as
// ErrValidationFailed; a nested login failure keeps its own attribution.
func (a *Authenticator) Register(ctx context.Context, payload RegisterPayload) (*Session, error) {
	if err := payload.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid registration payload").
			WithTextCode(TextCodeValidationFailed)
	}

	if err := a.begin(); err != nil {
		return nil, err
	}

	err := a.api.Post(ctx, a.routes.Register, payload, nil)
	a.end()

	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsClientError() {
			a.logger.Info("registration rejected for %s: %s", payload.Email, apiErr.Message)
			return nil, cloneWithMetadata(ErrValidationFailed, apiErr, apiErr.Metadata())
		}
		return nil, err
	}

	return a.Login(ctx, payload.Email, payload.Password)
}

// CurrentUser fetches the identity behind a credential. Without an explicit
// token it falls back to the store; with no token anywhere it fails with
// ErrNoCredential. A 2xx whose envelope carries no data field fails with
// ErrMalformedResponse. A failure never clears an existing session.
func (a *Authenticator) CurrentUser(ctx context.Context, token ...string) (*Identity, error) {
	credential := ""
	if len(token) > 0 {
		credential = token[0]
	}

	if credential == "" {
		if session := a.store.Get(); session != nil {
			credential = session.AccessToken
		}
	}

	if credential == "" {
		return nil, ErrNoCredential
	}

	var envelope userEnvelope
	err := a.api.Get(ctx, a.routes.Me, &envelope,
		WithHeader("Authorization", "Bearer "+NormalizeBearerToken(credential)))
	if err != nil {
		return nil, err
	}

	if envelope.Data == nil {
		return nil, cloneWithMetadata(ErrMalformedResponse, nil, map[string]any{
			"success": envelope.Success,
			"message": envelope.Message,
		})
	}

	return envelope.Data, nil
}

// Logout clears the session from memory and durable storage, then invokes
// the configured navigation callback. It makes no network call, cannot fail,
// and is idempotent.
func (a *Authenticator) Logout() {
	a.store.Set(nil)

	if a.onLogout != nil {
		a.onLogout()
	}
}

// IsAuthenticated reports whether the store holds a session with a
// non-empty credential.
func (a *Authenticator) IsAuthenticated() bool {
	session := a.store.Get()
	return session != nil && session.AccessToken != ""
}
