package main

import (
	"fmt"
	"time"

	"github.com/kbukum/identity-backend/config"
	"github.com/kbukum/identity-backend/observability"
	"github.com/kbukum/identity-backend/server"
	"github.com/kbukum/identity-backend/validation"
	"github.com/kbukum/identity-backend/version"
)

const serviceName = "identity-api"

// Config is the configuration of the identity API binary.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config       `yaml:"server" mapstructure:"server"`
	Auth          AuthConfig          `yaml:"auth" mapstructure:"auth"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
}

// AuthConfig selects and configures the identity provider. The provider key
// is read again on every request, so this value only seeds the startup log.
type AuthConfig struct {
	Provider string         `yaml:"provider" mapstructure:"provider"`
	Supabase SupabaseConfig `yaml:"supabase" mapstructure:"supabase"`
}

// SupabaseConfig configures the external identity service. SUPABASE_URL and
// SUPABASE_ANON_KEY in the environment take precedence over these values.
type SupabaseConfig struct {
	URL     string        `yaml:"url" mapstructure:"url"`
	AnonKey string        `yaml:"anon_key" mapstructure:"anon_key"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ObservabilityConfig toggles OTLP trace and metric export.
type ObservabilityConfig struct {
	Tracing observability.TracerConfig `yaml:"tracing" mapstructure:"tracing"`
	Metrics observability.MeterConfig  `yaml:"metrics" mapstructure:"metrics"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()

	if c.Auth.Supabase.Timeout <= 0 {
		c.Auth.Supabase.Timeout = 10 * time.Second
	}

	c.Observability.Tracing.ApplyDefaults()
	if c.Observability.Tracing.SampleRate == 0 {
		c.Observability.Tracing.SampleRate = 1.0
	}
	c.Observability.Metrics.ApplyDefaults()
	c.Observability.Tracing.ServiceName = c.Name
	c.Observability.Metrics.ServiceName = c.Name
	c.Observability.Tracing.ServiceVersion = c.Version
	c.Observability.Metrics.ServiceVersion = c.Version
	c.Observability.Tracing.Environment = c.Environment
	c.Observability.Metrics.Environment = c.Environment
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Observability.Tracing.Validate(); err != nil {
		return fmt.Errorf("observability.%w", err)
	}

	v := validation.New().
		URL("auth.supabase.url", c.Auth.Supabase.URL).
		Custom(c.Auth.Supabase.Timeout > 0, "auth.supabase.timeout", "must be positive")
	if appErr := v.Validate(); appErr != nil {
		return fmt.Errorf("config: %s", appErr.Message)
	}
	return nil
}
