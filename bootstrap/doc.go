// Package bootstrap runs the lifecycle of a service binary.
//
// An App validates its typed config, initializes logging, starts the
// registered components in order, runs the start and ready hooks, logs a
// startup summary (components, health and HTTP routes) and blocks until
// SIGINT or SIGTERM. Shutdown runs the stop hooks and stops components in
// reverse order within a graceful timeout.
package bootstrap
