// Package fake provides a deterministic in-memory identity provider with a
// single demo user. It performs no I/O and is intended for local runs and
// tests.
package fake

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/kbukum/identity-backend/auth"
	"github.com/kbukum/identity-backend/errors"
)

const (
	// AccessToken is the only token the provider issues and accepts.
	AccessToken = "fake-access-token.demo"

	demoUsername = "demo"
	demoPassword = "letmein"
)

// argon2id parameters. The salt is fixed so the digest is deterministic.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 8 * 1024
	argonThreads uint8  = 1
	argonKeyLen  uint32 = 32
)

var (
	digestSalt     = []byte("identity-backend/fake-provider")
	demoPasswordID = digest(demoPassword)
)

var demoUser = auth.Profile{
	ID:          "user_demo_001",
	Username:    demoUsername,
	DisplayName: "Demo User",
	Roles:       []string{"user"},
}

// Provider is the fake identity variant.
type Provider struct{}

var _ auth.Provider = (*Provider)(nil)

// New returns a fake Provider.
func New() *Provider { return &Provider{} }

// ID implements auth.Provider.
func (*Provider) ID() auth.ProviderID { return auth.ProviderFake }

// Login accepts exactly the demo credentials. The username is compared after
// trimming; the password is compared as given.
func (*Provider) Login(_ context.Context, creds auth.Credentials) (*auth.LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	userOK := creds.NormalizedUsername() == demoUsername
	passOK := subtle.ConstantTimeCompare(digest(creds.Password), demoPasswordID) == 1
	if !userOK || !passOK {
		return nil, errors.Unauthorized("Invalid credentials")
	}

	return &auth.LoginResult{
		Provider: auth.ProviderFake,
		Session: auth.Session{
			AccessToken: AccessToken,
			TokenType:   auth.TokenTypeBearer,
		},
		User: *DemoUser(),
	}, nil
}

// GetUserFromToken accepts only AccessToken.
func (*Provider) GetUserFromToken(_ context.Context, token string) (*auth.Profile, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return nil, errors.Unauthorized("Missing token")
	}
	if t != AccessToken {
		return nil, errors.Unauthorized("Invalid token")
	}
	return DemoUser(), nil
}

// DemoUser returns a fresh copy of the demo profile.
func DemoUser() *auth.Profile {
	return demoUser.Clone()
}

func digest(password string) []byte {
	return argon2.IDKey([]byte(password), digestSalt, argonTime, argonMemory, argonThreads, argonKeyLen)
}
