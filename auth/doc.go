// Package auth defines the authentication contracts of the identity backend
// and the facade that dispatches to a selected provider.
//
// The top-level package provides:
//
//   - Credentials, Profile, Session, LoginResult: the wire contracts
//   - Provider: the capability every identity variant implements
//   - Selector: picks the fake or external variant from configuration on every call
//   - Service: the facade that handlers call; it traces, meters and logs each operation
//
// Variants live in subpackages:
//
//   - auth/fake      deterministic in-memory identity for local runs and tests
//   - auth/supabase  external identity service reached over HTTP
//
// Configuration selects the variant:
//
//	AUTH_PROVIDER=fake      # fake variant
//	AUTH_PROVIDER=supabase  # external variant (also the default)
//
// Every error returned by a Provider or the Service is an *errors.AppError.
package auth
