package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/kbukum/identity-backend/httpclient"
)

const (
	tokenPath = "/auth/v1/token"
	userPath  = "/auth/v1/user"

	apiKeyHeader = "apikey"
)

// RemoteError is a failure reported by the identity service. Status is the
// HTTP status of the reply, or 0 when the service could not be reached.
type RemoteError struct {
	Status  int
	Message string
}

// Error implements error.
func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return "supabase: unreachable: " + e.Message
	}
	return "supabase: " + http.StatusText(e.Status) + ": " + e.Message
}

// Unreachable reports whether the request never got an answer.
func (e *RemoteError) Unreachable() bool { return e.Status == 0 }

// RemoteUser is the user object returned by the identity service.
type RemoteUser struct {
	ID           string         `json:"id"`
	Email        string         `json:"email,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// RemoteSession is the session returned by a password sign-in.
type RemoteSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	ExpiresAt    *int64      `json:"expires_at,omitempty"`
	User         *RemoteUser `json:"user,omitempty"`
}

// Client is the remote identity service boundary. Failures are *RemoteError.
type Client interface {
	SignInWithPassword(ctx context.Context, email, password string) (*RemoteSession, error)
	GetUser(ctx context.Context, token string) (*RemoteUser, error)
}

// HTTPClient talks to the GoTrue REST API of a Supabase project.
type HTTPClient struct {
	http *httpclient.Client
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the project at baseURL. Every request
// carries the anon key in the apikey header.
func NewHTTPClient(baseURL, anonKey string, timeout time.Duration) (*HTTPClient, error) {
	c, err := httpclient.New(httpclient.Config{
		BaseURL: baseURL,
		Timeout: timeout,
		Auth:    httpclient.BearerAuth(anonKey),
		Headers: map[string]string{apiKeyHeader: anonKey},
	})
	if err != nil {
		return nil, err
	}
	return &HTTPClient{http: c}, nil
}

type passwordGrant struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInWithPassword exchanges an email and password for a session.
func (c *HTTPClient) SignInWithPassword(ctx context.Context, email, password string) (*RemoteSession, error) {
	resp, err := httpclient.DoJSON[RemoteSession](c.http, ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   tokenPath,
		Query:  map[string]string{"grant_type": "password"},
		Body:   passwordGrant{Email: email, Password: password},
	})
	if err != nil {
		return nil, toRemoteError(err)
	}
	return &resp.Data, nil
}

// GetUser returns the user owning token. A reply without a user id yields a
// nil user.
func (c *HTTPClient) GetUser(ctx context.Context, token string) (*RemoteUser, error) {
	resp, err := httpclient.DoJSON[RemoteUser](c.http, ctx, httpclient.Request{
		Method: http.MethodGet,
		Path:   userPath,
		Auth:   httpclient.BearerAuth(token),
	})
	if err != nil {
		return nil, toRemoteError(err)
	}
	if resp.Data.ID == "" {
		return nil, nil
	}
	return &resp.Data, nil
}

// toRemoteError converts an httpclient failure. A timeout or connection
// failure becomes an unreachable RemoteError. Replies keep their status and
// the most specific message from the error payload. Anything else, such as a
// reply that could not be decoded, is returned unchanged.
func toRemoteError(err error) error {
	if httpclient.IsTimeout(err) || httpclient.IsConnection(err) {
		hErr, _ := httpclient.AsError(err)
		return &RemoteError{Message: hErr.Message}
	}
	hErr, ok := httpclient.AsError(err)
	if !ok || hErr.Code == httpclient.ErrCodeDecode || hErr.StatusCode == 0 {
		return err
	}
	return &RemoteError{
		Status:  hErr.StatusCode,
		Message: remoteMessage(hErr.Body, hErr.Message),
	}
}

// remoteMessage picks error_description, msg, message or error from a GoTrue
// error body, in that order, falling back to fallback.
func remoteMessage(body []byte, fallback string) string {
	var payload map[string]any
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil {
		for _, key := range []string{"error_description", "msg", "message", "error"} {
			if s, ok := payload[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return fallback
}
