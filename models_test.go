package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	client "github.com/gpugrid/go-client"
)

const testWallet = "0x52908400098527886E0F7030069857D2E4169EE7"

func TestRegisterPayloadValidate(t *testing.T) {
	valid := client.RegisterPayload{
		Email:         "renter@example.com",
		WalletAddress: testWallet,
		Password:      "s3cret-enough",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*client.RegisterPayload)
		message string
	}{
		{"missing email", func(p *client.RegisterPayload) { p.Email = "" }, "email"},
		{"bad email", func(p *client.RegisterPayload) { p.Email = "not-an-email" }, "email"},
		{"missing wallet", func(p *client.RegisterPayload) { p.WalletAddress = "" }, "wallet_address"},
		{"bad wallet", func(p *client.RegisterPayload) { p.WalletAddress = "0x123" }, "wallet_address"},
		{"short password", func(p *client.RegisterPayload) { p.Password = "short" }, "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := valid
			tc.mutate(&payload)
			err := payload.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestLoginPayloadValidate(t *testing.T) {
	assert.NoError(t, client.LoginPayload{Email: "a@b.com", Password: "pw"}.Validate())
	assert.Error(t, client.LoginPayload{Email: "", Password: "pw"}.Validate())
	assert.Error(t, client.LoginPayload{Email: "a@b.com", Password: ""}.Validate())
	assert.Error(t, client.LoginPayload{Email: "nope", Password: "pw"}.Validate())
}
