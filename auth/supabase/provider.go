// Package supabase implements the external identity variant on top of a
// Supabase project's GoTrue API.
//
// The project URL and anon key are read from configuration on every call:
//
//	SUPABASE_URL=https://<project>.supabase.co
//	SUPABASE_ANON_KEY=<anon key>
//
// Token signatures are verified by the remote service. Tokens that are not
// structurally JWTs are rejected locally before any network call.
package supabase

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kbukum/identity-backend/auth"
	"github.com/kbukum/identity-backend/errors"
)

// Configuration keys read through the auth.ConfigSource.
const (
	EnvURL     = "SUPABASE_URL"
	EnvAnonKey = "SUPABASE_ANON_KEY"
)

const (
	defaultTimeout = 10 * time.Second

	// timestampLayout renders the session expiry as an ISO-8601 UTC instant
	// with millisecond precision.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

var defaultRoles = []string{"user"}

// ClientFactory builds a Client for a project URL and anon key.
type ClientFactory func(url, anonKey string) (Client, error)

// Option configures a Provider.
type Option func(*Provider)

// WithClientFactory replaces the HTTP client factory.
func WithClientFactory(f ClientFactory) Option {
	return func(p *Provider) { p.newClient = f }
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(p *Provider) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// Provider is the external identity variant.
type Provider struct {
	source    auth.ConfigSource
	newClient ClientFactory
	timeout   time.Duration
	parser    *jwt.Parser

	mu        sync.Mutex
	client    Client
	clientKey string
}

var _ auth.Provider = (*Provider)(nil)

// New creates a Provider that resolves its settings from source.
func New(source auth.ConfigSource, opts ...Option) *Provider {
	p := &Provider{
		source:  source,
		timeout: defaultTimeout,
		parser:  jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.newClient == nil {
		p.newClient = func(url, anonKey string) (Client, error) {
			return NewHTTPClient(url, anonKey, p.timeout)
		}
	}
	return p
}

// ID implements auth.Provider.
func (*Provider) ID() auth.ProviderID { return auth.ProviderSupabase }

// Login signs in with the username as the email address.
func (p *Provider) Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	client, appErr := p.resolveClient()
	if appErr != nil {
		return nil, appErr
	}

	session, err := client.SignInWithPassword(ctx, creds.NormalizedUsername(), creds.Password)
	if err != nil {
		return nil, mapRemoteError(err, "Invalid credentials", "Auth login failed")
	}
	if session == nil || session.AccessToken == "" || session.User == nil || session.User.ID == "" {
		return nil, errors.InternalMessage("Auth login failed")
	}

	result := &auth.LoginResult{
		Provider: auth.ProviderSupabase,
		Session: auth.Session{
			AccessToken:  session.AccessToken,
			TokenType:    auth.TokenTypeBearer,
			RefreshToken: session.RefreshToken,
		},
		User: toProfile(session.User),
	}
	if session.ExpiresAt != nil {
		expiresAt := formatExpiry(*session.ExpiresAt)
		result.Session.ExpiresAt = &expiresAt
	}
	return result, nil
}

// GetUserFromToken asks the identity service who owns token.
func (p *Provider) GetUserFromToken(ctx context.Context, token string) (*auth.Profile, error) {
	t := strings.TrimSpace(token)
	if t == "" {
		return nil, errors.Unauthorized("Missing token")
	}
	if _, _, err := p.parser.ParseUnverified(t, jwt.MapClaims{}); err != nil {
		return nil, errors.Unauthorized("Invalid token")
	}

	client, appErr := p.resolveClient()
	if appErr != nil {
		return nil, appErr
	}

	user, err := client.GetUser(ctx, t)
	if err != nil {
		return nil, rejectToken(err)
	}
	if user == nil || user.ID == "" {
		return nil, errors.Unauthorized("Invalid token")
	}

	profile := toProfile(user)
	return &profile, nil
}

// resolveClient reads the project settings and returns a client for them,
// reusing the previous one while the settings are unchanged.
func (p *Provider) resolveClient() (Client, *errors.AppError) {
	url, ok := p.lookup(EnvURL)
	if !ok {
		return nil, errors.MissingConfig(EnvURL)
	}
	anonKey, ok := p.lookup(EnvAnonKey)
	if !ok {
		return nil, errors.MissingConfig(EnvAnonKey)
	}

	key := url + "\x00" + anonKey
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil && p.clientKey == key {
		return p.client, nil
	}
	client, err := p.newClient(url, anonKey)
	if err != nil {
		return nil, errors.Internal(err)
	}
	p.client, p.clientKey = client, key
	return client, nil
}

func (p *Provider) lookup(name string) (string, bool) {
	if p.source == nil {
		return "", false
	}
	v, ok := p.source.Lookup(name)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// mapRemoteError turns a rejection into UNAUTHORIZED rejected, keeping the
// remote message in details. An unreachable service or an unreadable reply
// becomes INTERNAL_ERROR failed.
func mapRemoteError(err error, rejected, failed string) *errors.AppError {
	var remote *RemoteError
	if !stderrors.As(err, &remote) {
		return errors.InternalMessage(failed).WithCause(err)
	}
	if remote.Unreachable() {
		return errors.InternalMessage(failed).
			WithDetail("message", remote.Message).
			WithCause(err)
	}
	appErr := errors.Unauthorized(rejected).WithCause(err)
	if remote.Message != "" {
		appErr.WithDetail("message", remote.Message)
	}
	return appErr
}

// rejectToken maps any lookup failure to UNAUTHORIZED "Invalid token". A
// caller holding a token the service could not confirm is not signed in,
// whether the service said no or could not be reached.
func rejectToken(err error) *errors.AppError {
	appErr := errors.Unauthorized("Invalid token").WithCause(err)
	var remote *RemoteError
	if stderrors.As(err, &remote) {
		if remote.Message != "" {
			appErr.WithDetail("message", remote.Message)
		}
	} else if msg := err.Error(); msg != "" {
		appErr.WithDetail("message", msg)
	}
	return appErr
}

func toProfile(u *RemoteUser) auth.Profile {
	username := u.Email
	if username == "" {
		username = u.ID
	}
	displayName := metadataName(u.UserMetadata)
	if displayName == "" {
		displayName = username
	}
	return auth.Profile{
		ID:          u.ID,
		Username:    username,
		DisplayName: displayName,
		Roles:       append([]string(nil), defaultRoles...),
	}
}

// metadataName returns full_name, else name, when it is a non-blank string.
func metadataName(md map[string]any) string {
	for _, key := range []string{"full_name", "name"} {
		if s, ok := md[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func formatExpiry(epochSeconds int64) string {
	return time.Unix(epochSeconds, 0).UTC().Format(timestampLayout)
}
