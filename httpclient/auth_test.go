package httpclient

import (
	"net/http"
	"testing"
)

func newTestRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	return req
}

func TestBearerAuth(t *testing.T) {
	req := newTestRequest(t)
	BearerAuth("my-token").apply(req)
	if got := req.Header.Get("Authorization"); got != "Bearer my-token" {
		t.Errorf("got %q, want %q", got, "Bearer my-token")
	}
}

func TestNilAuth(t *testing.T) {
	req := newTestRequest(t)
	var auth *AuthConfig
	auth.apply(req)
	if req.Header.Get("Authorization") != "" {
		t.Error("nil auth should not set headers")
	}
}

func TestAuthNone(t *testing.T) {
	req := newTestRequest(t)
	(&AuthConfig{Type: AuthNone, Token: "ignored"}).apply(req)
	if req.Header.Get("Authorization") != "" {
		t.Error("AuthNone should not set headers")
	}
}
