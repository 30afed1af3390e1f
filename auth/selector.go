package auth

import "strings"

// DefaultProviderKey is the configuration key read by the Selector.
const DefaultProviderKey = "AUTH_PROVIDER"

// Selector chooses the provider variant from configuration. The key is read
// on every call, so a configuration change takes effect on the next request.
type Selector struct {
	Source   ConfigSource
	Key      string
	Fake     Provider
	External Provider
}

// NewSelector returns a Selector reading DefaultProviderKey from source.
func NewSelector(source ConfigSource, fake, external Provider) *Selector {
	return &Selector{
		Source:   source,
		Key:      DefaultProviderKey,
		Fake:     fake,
		External: external,
	}
}

// Select returns the fake variant when the configured value is "fake"
// (case-insensitive, trimmed) and the external variant otherwise, including
// when the value is absent.
func (s *Selector) Select() Provider {
	if strings.EqualFold(s.configured(), string(ProviderFake)) {
		return s.Fake
	}
	return s.External
}

func (s *Selector) configured() string {
	if s.Source == nil {
		return ""
	}
	key := s.Key
	if key == "" {
		key = DefaultProviderKey
	}
	v, ok := s.Source.Lookup(key)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}
