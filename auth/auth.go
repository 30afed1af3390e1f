package auth

import (
	"context"
	"strings"

	"github.com/kbukum/identity-backend/errors"
	"github.com/kbukum/identity-backend/validation"
)

// ProviderID names an identity provider variant.
type ProviderID string

const (
	// ProviderFake is the deterministic in-memory variant.
	ProviderFake ProviderID = "fake"
	// ProviderSupabase is the external identity service variant.
	ProviderSupabase ProviderID = "supabase"
)

// TokenTypeBearer is the only token type issued by any provider.
const TokenTypeBearer = "bearer"

const credentialsRequiredMessage = "username and password are required"

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
}

// Validate fails with BAD_REQUEST naming both fields when either is empty
// after trimming.
func (c Credentials) Validate() *errors.AppError {
	if len(validation.Struct(c)) == 0 {
		return nil
	}
	return errors.BadRequest(credentialsRequiredMessage).
		WithDetail("fields", []string{"username", "password"})
}

// NormalizedUsername returns the username with surrounding whitespace removed.
func (c Credentials) NormalizedUsername() string {
	return strings.TrimSpace(c.Username)
}

// Profile describes an authenticated user.
type Profile struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
}

// Clone returns a copy that shares no memory with p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Roles = append([]string(nil), p.Roles...)
	return &cp
}

// Session is the token material returned by a successful login.
type Session struct {
	AccessToken  string  `json:"accessToken"`
	TokenType    string  `json:"tokenType"`
	ExpiresAt    *string `json:"expiresAt,omitempty"`
	RefreshToken string  `json:"refreshToken,omitempty"`
}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Provider ProviderID `json:"provider"`
	Session  Session    `json:"session"`
	User     Profile    `json:"user"`
}

// MeResponse is the payload served for the current user.
type MeResponse struct {
	User Profile `json:"user"`
}

// Provider is the capability every identity variant implements.
// Errors returned by a Provider are *errors.AppError.
type Provider interface {
	// ID returns the variant name reported in LoginResult.Provider.
	ID() ProviderID
	// Login exchanges credentials for a session and profile.
	Login(ctx context.Context, creds Credentials) (*LoginResult, error)
	// GetUserFromToken resolves a bearer token to a profile.
	GetUserFromToken(ctx context.Context, token string) (*Profile, error)
}

// ConfigSource resolves named configuration values at call time.
// Blank values are reported as absent.
type ConfigSource interface {
	Lookup(name string) (string, bool)
}

// ConfigSourceFunc adapts a function to ConfigSource.
type ConfigSourceFunc func(name string) (string, bool)

// Lookup implements ConfigSource.
func (f ConfigSourceFunc) Lookup(name string) (string, bool) { return f(name) }
