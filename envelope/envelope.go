// Package envelope encodes every response into the uniform JSON wrapper:
//
//	{"ok":true,"requestId":"...","data":...}
//	{"ok":false,"requestId":"...","error":{"code":"...","message":"...","details":...}}
//
// All functions are pure and total over their inputs.
package envelope

import (
	apperrors "github.com/kbukum/identity-backend/errors"
)

// SuccessEnvelope wraps a successful result.
type SuccessEnvelope[T any] struct {
	OK        bool   `json:"ok"`
	RequestID string `json:"requestId"`
	Data      T      `json:"data"`
}

// FailureEnvelope wraps a failure.
type FailureEnvelope struct {
	OK        bool      `json:"ok"`
	RequestID string    `json:"requestId"`
	Error     ErrorBody `json:"error"`
}

// ErrorBody is the failure payload sent to clients. Details is omitted when
// nil or empty; an empty map carries nothing for a client to read.
type ErrorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details map[string]any      `json:"details,omitempty"`
}

// Success encodes data into a success envelope.
func Success[T any](requestID string, data T) SuccessEnvelope[T] {
	return SuccessEnvelope[T]{OK: true, RequestID: requestID, Data: data}
}

// Failure encodes a recognised failure. A nil failure encodes as a generic
// INTERNAL_ERROR so the result is always a valid envelope.
func Failure(requestID string, failure *apperrors.AppError) FailureEnvelope {
	if failure == nil {
		failure = apperrors.Internal(nil)
	}
	return FailureEnvelope{
		OK:        false,
		RequestID: requestID,
		Error: ErrorBody{
			Code:    failure.Code,
			Message: failure.Message,
			Details: failure.Details,
		},
	}
}

// FromError encodes any error and returns the HTTP status the envelope should
// be sent with. Recognised failures keep their code, status, message and
// details; everything else becomes INTERNAL_ERROR/500 with the raw message.
func FromError(requestID string, err error) (int, FailureEnvelope) {
	appErr := apperrors.Wrap(err)
	if appErr == nil {
		appErr = apperrors.Internal(nil)
	}
	return appErr.HTTPStatus, Failure(requestID, appErr)
}
