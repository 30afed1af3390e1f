package errors

import "net/http"

// ErrorCode represents a machine-readable error code.
type ErrorCode string

const (
	// ErrCodeBadRequest indicates malformed or incomplete input.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
	// ErrCodeUnauthorized indicates missing or rejected credentials.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeForbidden indicates an authenticated caller lacks permission.
	ErrCodeForbidden ErrorCode = "FORBIDDEN"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeConflict indicates a conflict with the current state of the resource.
	ErrCodeConflict ErrorCode = "CONFLICT"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var defaultStatus = map[ErrorCode]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// Codes returns every member of the closed code set.
func Codes() []ErrorCode {
	return []ErrorCode{
		ErrCodeBadRequest,
		ErrCodeUnauthorized,
		ErrCodeForbidden,
		ErrCodeNotFound,
		ErrCodeConflict,
		ErrCodeInternal,
	}
}

// Valid reports whether c belongs to the closed code set.
func (c ErrorCode) Valid() bool {
	_, ok := defaultStatus[c]
	return ok
}

// HTTPStatus returns the default HTTP status for the code, or 500 for codes
// outside the set.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := defaultStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
