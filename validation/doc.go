// Package validation provides input validation that reports failures as
// BAD_REQUEST application errors.
//
// Struct tag validation uses go-playground/validator with json field names
// and an extra notblank tag that rejects whitespace-only strings.
//
//	type Credentials struct {
//	    Username string `json:"username" validate:"notblank"`
//	}
//	if ferrs := validation.Struct(c); len(ferrs) > 0 { ... }
//
// Programmatic validation collects errors for configuration checks:
//
//	v := validation.New()
//	v.OneOf("auth.provider", provider, []string{"fake", "supabase"})
//	err := v.Validate()
package validation
