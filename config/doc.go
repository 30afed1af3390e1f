// Package config loads service configuration from a YAML file, a .env file
// and the process environment, using viper and godotenv.
//
// Environment variables override file values. AUTH_SUPABASE_URL binds to
// auth.supabase.url, auth.supabase_url and auth_supabase_url, so a nested
// struct field is reachable from a flat variable name.
//
// # Usage
//
//	var cfg Config
//	values, err := config.Load("identity-api", &cfg)
//
// The returned Values stays readable after load and answers runtime lookups
// such as the AUTH_PROVIDER switch.
package config
