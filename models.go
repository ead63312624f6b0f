package client

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

var walletAddressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)

// Identity is the account record the identity endpoint returns.
type Identity struct {
	ID            int64      `json:"id"`
	Email         string     `json:"email"`
	WalletAddress string     `json:"wallet_address,omitempty"`
	IsActive      bool       `json:"is_active"`
	IsAdmin       bool       `json:"is_admin"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// Session pairs an authenticated identity with its bearer token. The token
// is held without the "Bearer " scheme; NewSession normalizes it on intake.
type Session struct {
	Identity    Identity `json:"identity"`
	AccessToken string   `json:"access_token"`
}

// NewSession builds a Session, stripping any bearer scheme from the token.
func NewSession(identity Identity, token string) *Session {
	return &Session{
		Identity:    identity,
		AccessToken: NormalizeBearerToken(token),
	}
}

// clone returns a deep copy. The identity timestamps are pointers and must
// not be shared between the store's slot and its callers.
func (s *Session) clone() *Session {
	if s == nil {
		return nil
	}

	copied := *s
	if s.Identity.CreatedAt != nil {
		t := *s.Identity.CreatedAt
		copied.Identity.CreatedAt = &t
	}
	if s.Identity.UpdatedAt != nil {
		t := *s.Identity.UpdatedAt
		copied.Identity.UpdatedAt = &t
	}

	return &copied
}

// LoginPayload carries the credentials for the token endpoint.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required),
	)
}

// RegisterPayload carries the fields the registration endpoint expects.
type RegisterPayload struct {
	Email         string `json:"email"`
	WalletAddress string `json:"wallet_address"`
	Password      string `json:"password"`
}

func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&p.WalletAddress, validation.Required, validation.Match(walletAddressPattern)),
		validation.Field(&p.Password, validation.Required, validation.Length(8, 100)),
	)
}

// userEnvelope is the wrapped shape the identity endpoint answers with.
type userEnvelope struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Data    *Identity `json:"data"`
}
