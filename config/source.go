package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Values is a read view over the merged configuration. It answers lookups by
// the flat environment-style name of a setting.
type Values struct {
	v *viper.Viper
}

// NewValues wraps an existing viper instance.
func NewValues(v *viper.Viper) *Values {
	return &Values{v: v}
}

// Lookup returns the value stored under name. The live process environment is
// consulted first so changes after load are visible; then the loaded keys,
// trying name as given and its nested variants. Blank values count as absent.
func (s *Values) Lookup(name string) (string, bool) {
	if val, ok := (EnvSource{}).Lookup(name); ok {
		return val, true
	}
	if s == nil || s.v == nil {
		return "", false
	}
	for _, key := range generateEnvKeyVariants(name) {
		if !s.v.IsSet(key) {
			continue
		}
		if val := strings.TrimSpace(s.v.GetString(key)); val != "" {
			return val, true
		}
	}
	return "", false
}

// EnvSource reads directly from the process environment.
type EnvSource struct{}

// Lookup returns the environment variable name when it is set and non-blank.
func (EnvSource) Lookup(name string) (string, bool) {
	val, ok := os.LookupEnv(name)
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}

// MapSource is a fixed set of values, mostly for tests.
type MapSource map[string]string

// Lookup returns the value under name when present and non-blank.
func (m MapSource) Lookup(name string) (string, bool) {
	val, ok := m[name]
	if !ok || strings.TrimSpace(val) == "" {
		return "", false
	}
	return val, true
}

// Lookuper is anything that resolves a named value.
type Lookuper interface {
	Lookup(name string) (string, bool)
}

// AliasSource resolves a name directly and then through its aliases, in
// order, stopping at the first hit.
type AliasSource struct {
	Source  Lookuper
	Aliases map[string][]string
}

// Lookup implements Lookuper.
func (a AliasSource) Lookup(name string) (string, bool) {
	if a.Source == nil {
		return "", false
	}
	if val, ok := a.Source.Lookup(name); ok {
		return val, true
	}
	for _, alias := range a.Aliases[name] {
		if val, ok := a.Source.Lookup(alias); ok {
			return val, true
		}
	}
	return "", false
}
