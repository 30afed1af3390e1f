// Package server provides the HTTP server of the identity API using Gin,
// served over HTTP/1.1 and h2c.
//
// The server follows the component pattern with lifecycle management and
// answers every response with an envelope, including unknown routes
// (NOT_FOUND) and unsupported methods (405 with details.allowed).
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - RequestID: reuse X-Request-Id or X-Correlation-Id, else a new UUID
//   - Recovery: panic recovery answering INTERNAL_ERROR
//   - Tracing, Metrics: OpenTelemetry server spans and request metrics
//   - CORS: cross-origin resource sharing, off unless origins are configured
//   - BodySizeLimit: request body size limit
//   - RequestLogger: request logging with duration tracking
//
// # Endpoints
//
// Handlers live in server/endpoint and are mounted with endpoint.Register.
package server
