package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

const unknownErrorMessage = "Unknown error"

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the status code the boundary answers with.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the
// receiver. An empty map counts as no details.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if len(details) == 0 {
		return e
	}
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError. A zero status falls back to the code's default.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	if httpStatus == 0 {
		httpStatus = code.HTTPStatus()
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Common Error Constructors ---

// BadRequest creates a new AppError for malformed or incomplete input.
func BadRequest(message string) *AppError {
	return New(ErrCodeBadRequest, message, http.StatusBadRequest)
}

// MethodNotAllowed reports a request made with a method the route does not
// serve. The code stays BAD_REQUEST; only the status differs.
func MethodNotAllowed(method string, allowed []string) *AppError {
	if method == "" {
		method = "UNKNOWN"
	}
	return New(ErrCodeBadRequest, fmt.Sprintf("Method %s not allowed", method), http.StatusMethodNotAllowed).
		WithDetail("allowed", allowed)
}

// Unauthorized creates a new AppError for unauthorized access.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return New(ErrCodeUnauthorized, reason, http.StatusUnauthorized)
}

// Forbidden creates a new AppError for forbidden access.
func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return New(ErrCodeForbidden, reason, http.StatusForbidden)
}

// NotFound creates a new AppError for a resource that was not found.
func NotFound(resource, id string) *AppError {
	err := New(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource), http.StatusNotFound).
		WithDetail("resource", resource)
	if id != "" {
		err.Details["id"] = id
	}
	return err
}

// Conflict creates a new AppError for a conflict with the current state of the resource.
func Conflict(reason string) *AppError {
	return New(ErrCodeConflict, reason, http.StatusConflict)
}

// Internal creates a new AppError for an unexpected fault. The cause's message
// becomes the error message when present.
func Internal(cause error) *AppError {
	msg := unknownErrorMessage
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return New(ErrCodeInternal, msg, http.StatusInternalServerError).WithCause(cause)
}

// InternalMessage creates an INTERNAL_ERROR with an explicit message.
func InternalMessage(message string) *AppError {
	return New(ErrCodeInternal, message, http.StatusInternalServerError)
}

// MissingConfig reports a required configuration value that is not set.
func MissingConfig(name string) *AppError {
	return InternalMessage("Missing required environment variable: "+name).WithDetail("name", name)
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError with the given code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// Wrap converts any error into an AppError. A recognised AppError passes
// through; one missing its status is copied with the status filled in, so
// err itself is never modified. An AppError with a code outside the closed set and every
// other error become INTERNAL_ERROR with status 500.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		if appErr.Code.Valid() {
			if appErr.HTTPStatus == 0 {
				cp := *appErr
				cp.HTTPStatus = appErr.Code.HTTPStatus()
				return &cp
			}
			return appErr
		}
		return InternalMessage(appErr.Message).WithCause(err)
	}
	return Internal(err)
}
