// Package errors provides the failure taxonomy shared by every identity
// operation. A failure is an *AppError carrying one of a closed set of codes,
// the HTTP status the boundary should answer with, a human-readable message
// and optional structured details.
//
// Anything that is not an *AppError is coerced to INTERNAL_ERROR by Wrap
// before it reaches a caller.
package errors
