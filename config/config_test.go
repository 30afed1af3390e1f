package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected logging service name to follow config name, got %q", cfg.Logging.ServiceName)
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected logging defaults applied, got level %q", cfg.Logging.Level)
		}
	})

	t.Run("production environment keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	valid := func(env string) ServiceConfig {
		c := ServiceConfig{Name: "svc", Environment: env}
		c.Logging.ApplyDefaults()
		return c
	}
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr bool
		errMsg  string
	}{
		{"valid development", valid("development"), false, ""},
		{"valid test", valid("test"), false, ""},
		{"valid production", valid("production"), false, ""},
		{"missing name", ServiceConfig{Environment: "production"}, true, "config.name is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, true, "config.environment must be one of"},
		{"invalid logging", ServiceConfig{Name: "svc", Environment: "staging"}, true, "config.logging"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !strings.Contains(err.Error(), tc.errMsg) {
					t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Auth          struct {
		Provider string `mapstructure:"provider"`
		Supabase struct {
			URL string `mapstructure:"url"`
		} `mapstructure:"supabase"`
	} `mapstructure:"auth"`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, `
name: identity-api
environment: staging
auth:
  provider: fake
  supabase:
    url: https://file.example
`)

	var cfg testConfig
	if err := LoadConfig("identity-api", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "identity-api" {
		t.Errorf("expected name 'identity-api', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Auth.Provider != "fake" {
		t.Errorf("expected provider 'fake', got %q", cfg.Auth.Provider)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "auth:\n  supabase:\n    url: https://file.example\n")
	t.Setenv("AUTH_SUPABASE_URL", "https://env.example")

	var cfg testConfig
	if err := LoadConfig("identity-api", &cfg, WithConfigFile(configPath), WithEnvFile(filepath.Join(dir, "missing.env"))); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Auth.Supabase.URL != "https://env.example" {
		t.Errorf("expected env override, got %q", cfg.Auth.Supabase.URL)
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	writeFile(t, envPath, "IDENTITY_TEST_FROM_DOTENV=dotenv-value\n")
	t.Cleanup(func() { os.Unsetenv("IDENTITY_TEST_FROM_DOTENV") })

	values, err := Load("identity-api", nil, WithConfigFile(filepath.Join(dir, "missing.yml")), WithEnvFile(envPath))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got, ok := values.Lookup("IDENTITY_TEST_FROM_DOTENV"); !ok || got != "dotenv-value" {
		t.Errorf("expected dotenv value, got %q %v", got, ok)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("nonexistent-service", &cfg, WithConfigFile("/nonexistent/path.yml"), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "name: [unclosed\n")

	var cfg testConfig
	if err := LoadConfig("identity-api", &cfg, WithConfigFile(configPath), WithEnvFile("/nonexistent/.env")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValues_Lookup(t *testing.T) {
	t.Setenv("AUTH_PROVIDER", "")
	if err := os.Unsetenv("AUTH_PROVIDER"); err != nil {
		t.Fatalf("unset AUTH_PROVIDER: %v", err)
	}
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yml")
	writeFile(t, configPath, "auth:\n  provider: fake\n  blank: \"   \"\n")

	values, err := Load("identity-api", nil, WithConfigFile(configPath), WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got, ok := values.Lookup("AUTH_PROVIDER"); !ok || got != "fake" {
		t.Errorf("expected nested file value via flat name, got %q %v", got, ok)
	}
	if _, ok := values.Lookup("AUTH_BLANK"); ok {
		t.Error("expected blank value to be absent")
	}
	if _, ok := values.Lookup("AUTH_NOTHING_HERE"); ok {
		t.Error("expected unknown key to be absent")
	}

	// The live environment wins and is re-read on every lookup.
	t.Setenv("AUTH_PROVIDER", "supabase")
	if got, _ := values.Lookup("AUTH_PROVIDER"); got != "supabase" {
		t.Errorf("expected live env value, got %q", got)
	}
}

func TestValues_NilSafe(t *testing.T) {
	var values *Values
	if _, ok := values.Lookup("IDENTITY_SURELY_UNSET_KEY"); ok {
		t.Error("expected nil Values to report absence")
	}
}

func TestEnvSource(t *testing.T) {
	t.Setenv("IDENTITY_ENV_SOURCE_SET", "x")
	t.Setenv("IDENTITY_ENV_SOURCE_BLANK", "  ")

	if got, ok := (EnvSource{}).Lookup("IDENTITY_ENV_SOURCE_SET"); !ok || got != "x" {
		t.Errorf("expected x, got %q %v", got, ok)
	}
	if _, ok := (EnvSource{}).Lookup("IDENTITY_ENV_SOURCE_BLANK"); ok {
		t.Error("expected blank env var to be absent")
	}
}

func TestMapSource(t *testing.T) {
	src := MapSource{"A": "1", "B": ""}
	if got, ok := src.Lookup("A"); !ok || got != "1" {
		t.Errorf("expected 1, got %q %v", got, ok)
	}
	if _, ok := src.Lookup("B"); ok {
		t.Error("expected empty value to be absent")
	}
	if _, ok := src.Lookup("C"); ok {
		t.Error("expected missing key to be absent")
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	got := generateEnvKeyVariants("AUTH_SUPABASE_URL")
	want := []string{"auth_supabase_url", "auth.supabase.url", "auth.supabase_url", "auth_supabase.url"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant %d: expected %q, got %q", i, want[i], got[i])
		}
	}
	if v := generateEnvKeyVariants("PORT"); len(v) != 1 || v[0] != "port" {
		t.Errorf("expected [port], got %v", v)
	}
}

func TestResolverWithMockFS(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/identity-api/config.yml": true,
		"./cmd/identity-api/.env":       true,
		"./.env":                        true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("identity-api", LoaderConfig{})
	if files.ConfigFile != "./cmd/identity-api/config.yml" {
		t.Errorf("expected config file at ./cmd/identity-api/config.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./cmd/identity-api/.env" {
		t.Errorf("expected env file at ./cmd/identity-api/.env, got %q", files.EnvFile)
	}
}

func TestResolver_ServiceEnvFileWins(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./.env":              true,
		"./.env.identity-api": true,
	}}
	files := (&Resolver{FileSystem: fs}).ResolveFiles("identity-api", LoaderConfig{})
	if files.EnvFile != "./.env.identity-api" {
		t.Errorf("expected service env file, got %q", files.EnvFile)
	}
	if files.ConfigFile != "" {
		t.Errorf("expected no config file, got %q", files.ConfigFile)
	}
}

func TestResolver_ExplicitPaths(t *testing.T) {
	files := (&Resolver{FileSystem: &mockFS{}}).ResolveFiles("x", LoaderConfig{ConfigFile: "a.yml", EnvFile: "b.env"})
	if files.ConfigFile != "a.yml" || files.EnvFile != "b.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	WithFileSystem(&mockFS{})(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
}

func TestAliasSource(t *testing.T) {
	src := AliasSource{
		Source:  MapSource{"AUTH_SUPABASE_URL": "https://alias.example", "DIRECT": "d"},
		Aliases: map[string][]string{"SUPABASE_URL": {"MISSING", "AUTH_SUPABASE_URL"}},
	}
	if got, ok := src.Lookup("SUPABASE_URL"); !ok || got != "https://alias.example" {
		t.Errorf("expected alias value, got %q %v", got, ok)
	}
	if got, ok := src.Lookup("DIRECT"); !ok || got != "d" {
		t.Errorf("expected direct value, got %q %v", got, ok)
	}
	if _, ok := src.Lookup("NOPE"); ok {
		t.Error("expected unknown name to be absent")
	}
	if _, ok := (AliasSource{}).Lookup("SUPABASE_URL"); ok {
		t.Error("expected empty alias source to be absent")
	}
}
