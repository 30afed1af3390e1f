// Package logger provides structured logging for the identity service
// using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with structured fields. The request id placed in
// a context by the HTTP middleware is picked up by WithContext.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("auth")
//	log.Info("login succeeded", logger.Fields("provider", "fake"))
package logger
