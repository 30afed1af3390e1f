// Package component defines lifecycle-managed parts of the identity service
// and a registry that starts, stops and health-checks them in order.
//
// The HTTP server and the telemetry providers are components. Start order
// is registration order; stop order is the reverse.
//
//   - Component: lifecycle interface (Start/Stop/Health)
//   - Describable: startup summary description
//   - RouteProvider: HTTP routes for the startup summary
package component
