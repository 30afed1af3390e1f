// Package endpoint provides the HTTP handlers of the identity API:
//
//   - POST /auth/login  exchange credentials for a session
//   - GET  /me          resolve the bearer token to the current user
//   - GET  /health      liveness and build metadata
//
// Every response is an envelope; see package envelope.
package endpoint
