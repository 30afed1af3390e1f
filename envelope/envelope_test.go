package envelope

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	apperrors "github.com/kbukum/identity-backend/errors"
)

func TestSuccess_WireShape(t *testing.T) {
	env := Success("req-1", map[string]string{"hello": "world"})
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"ok":true,"requestId":"req-1","data":{"hello":"world"}}`
	if string(raw) != want {
		t.Errorf("expected %s, got %s", want, raw)
	}
}

func TestFailure_WireShape_NoDetails(t *testing.T) {
	env := Failure("req-2", apperrors.Unauthorized("Invalid credentials"))
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"ok":false,"requestId":"req-2","error":{"code":"UNAUTHORIZED","message":"Invalid credentials"}}`
	if string(raw) != want {
		t.Errorf("expected %s, got %s", want, raw)
	}
	if strings.Contains(string(raw), "null") {
		t.Errorf("details must be absent, not null: %s", raw)
	}
}

func TestFailure_EmptyDetailsOmitted(t *testing.T) {
	appErr := apperrors.Unauthorized("Invalid token").WithDetails(map[string]any{})
	raw, err := json.Marshal(Failure("req-3", appErr))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"ok":false,"requestId":"req-3","error":{"code":"UNAUTHORIZED","message":"Invalid token"}}`
	if string(raw) != want {
		t.Errorf("expected %s, got %s", want, raw)
	}
}

func TestFailure_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		err  *apperrors.AppError
	}{
		{"without details", apperrors.Unauthorized("Invalid token")},
		{"with details", apperrors.BadRequest("username and password are required").
			WithDetail("fields", []string{"username", "password"})},
		{"nested details", apperrors.Unauthorized("Invalid credentials").
			WithDetail("message", "Email not confirmed")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := json.Marshal(Failure("rid", tc.err))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}

			var decoded struct {
				OK        bool   `json:"ok"`
				RequestID string `json:"requestId"`
				Error     map[string]json.RawMessage
			}
			if err := json.Unmarshal(raw, &decoded); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if decoded.OK || decoded.RequestID != "rid" {
				t.Errorf("unexpected envelope header: %+v", decoded)
			}

			var code, message string
			_ = json.Unmarshal(decoded.Error["code"], &code)
			_ = json.Unmarshal(decoded.Error["message"], &message)
			if code != string(tc.err.Code) || message != tc.err.Message {
				t.Errorf("expected %s/%q, got %s/%q", tc.err.Code, tc.err.Message, code, message)
			}

			detailsRaw, present := decoded.Error["details"]
			if tc.err.Details == nil {
				if present {
					t.Errorf("details key must be absent, got %s", detailsRaw)
				}
				return
			}
			want, _ := json.Marshal(tc.err.Details)
			if string(detailsRaw) != string(want) {
				t.Errorf("expected details %s, got %s", want, detailsRaw)
			}
		})
	}
}

func TestFailure_Nil(t *testing.T) {
	env := Failure("rid", nil)
	if env.OK || env.Error.Code != apperrors.ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR envelope, got %+v", env)
	}
}

func TestFromError_Table(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    apperrors.ErrorCode
		message string
	}{
		{"app error", apperrors.Unauthorized("Invalid token"), 401, apperrors.ErrCodeUnauthorized, "Invalid token"},
		{"wrapped app error", fmt.Errorf("outer: %w", apperrors.Conflict("dup")), 409, apperrors.ErrCodeConflict, "dup"},
		{"method not allowed", apperrors.MethodNotAllowed("PUT", []string{"GET"}), http.StatusMethodNotAllowed, apperrors.ErrCodeBadRequest, "Method PUT not allowed"},
		{"plain error", fmt.Errorf("disk on fire"), 500, apperrors.ErrCodeInternal, "disk on fire"},
		{"empty message", stderrors.New(""), 500, apperrors.ErrCodeInternal, "Unknown error"},
		{"nil", nil, 500, apperrors.ErrCodeInternal, "Unknown error"},
		{"unknown code", &apperrors.AppError{Code: "WAT", Message: "m", HTTPStatus: 418}, 500, apperrors.ErrCodeInternal, "m"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, env := FromError("rid", tc.err)
			if status != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, status)
			}
			if env.Error.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, env.Error.Code)
			}
			if env.Error.Message != tc.message {
				t.Errorf("expected message %q, got %q", tc.message, env.Error.Message)
			}
			if env.RequestID != "rid" {
				t.Errorf("expected request id echoed, got %q", env.RequestID)
			}
		})
	}
}

func TestFromError_PreservesDetails(t *testing.T) {
	_, env := FromError("rid", apperrors.BadRequest("x").WithDetail("fields", []string{"a"}))
	if env.Error.Details == nil {
		t.Fatal("expected details to be preserved")
	}
}
