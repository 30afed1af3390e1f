package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file operations so resolution can be tested.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using the operating system.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// Resolver finds the config and env files of a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths when provided, otherwise the first
// existing candidate from the standard search locations.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{
		ConfigFile: opts.ConfigFile,
		EnvFile:    opts.EnvFile,
	}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = r.first(configCandidates(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = r.first(envCandidates(serviceName))
	}
	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// configCandidates lists config.yml locations from most to least specific.
func configCandidates(serviceName string) []string {
	var paths []string
	for _, dir := range serviceDirs(serviceName) {
		paths = append(paths, dir+"/config.yml")
	}
	return append(paths, "./config/config.yml", "../config/config.yml", "./config.yml")
}

// envCandidates lists .env locations; a service-specific file wins over a
// generic one in the same directory.
func envCandidates(serviceName string) []string {
	dirs := append(serviceDirs(serviceName), "./config", "../config", ".", "..", "../..")
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range dirs {
			paths = append(paths, dir+"/"+name)
		}
	}
	return paths
}

func serviceDirs(serviceName string) []string {
	names := []string{serviceName}
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		names = append(names, serviceName[idx+1:])
	}
	var dirs []string
	for _, prefix := range []string{".", "..", "../.."} {
		for _, n := range names {
			dirs = append(dirs, fmt.Sprintf("%s/cmd/%s", prefix, n))
		}
	}
	return dirs
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Direct config file path (optional)
	EnvFile    string // Direct env file path (optional)
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// LoadConfig loads configuration for a service into cfg.
func LoadConfig(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	_, err := Load(serviceName, cfg, opts...)
	return err
}

// Load loads configuration for a service into cfg and returns the merged
// values for runtime lookups.
func Load(serviceName string, cfg interface{}, opts ...LoaderOption) (*Values, error) {
	var lc LoaderConfig
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}

	resolver := &Resolver{FileSystem: lc.FileSystem}
	files := resolver.ResolveFiles(serviceName, lc)

	v, err := loadFromResolvedFiles(serviceName, cfg, files, lc.FileSystem)
	if err != nil {
		return nil, err
	}
	return &Values{v: v}, nil
}

func loadFromResolvedFiles(serviceName string, cfg interface{}, files ResolvedFiles, fs FileSystem) (*viper.Viper, error) {
	v := viper.New()

	// 1. YAML is the base layer
	if files.ConfigFile != "" && fs.Exists(files.ConfigFile) {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", files.ConfigFile, err)
		}
	}

	// 2. .env fills the environment without overriding variables already set
	if files.EnvFile != "" && fs.Exists(files.EnvFile) {
		if err := fs.LoadEnv(files.EnvFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load .env file %s: %v\n", files.EnvFile, err)
		}
	}

	// 3. environment overrides everything
	v.AutomaticEnv()
	autoBindEnvVars(v)

	if cfg != nil {
		if err := v.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config for service %s: %w", serviceName, err)
		}
	}
	return v, nil
}

// autoBindEnvVars copies every environment variable into v under all of its
// nested key variants.
func autoBindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok || key == "" {
			continue
		}
		for _, variant := range generateEnvKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// generateEnvKeyVariants creates the possible key variants of an environment
// variable name.
//
//	AUTH_SUPABASE_URL -> [auth_supabase_url, auth.supabase.url, auth.supabase_url, auth_supabase.url]
func generateEnvKeyVariants(envKey string) []string {
	lowerKey := strings.ToLower(envKey)
	parts := strings.Split(lowerKey, "_")
	if len(parts) <= 1 {
		return []string{lowerKey}
	}

	variants := []string{
		lowerKey,
		strings.ReplaceAll(lowerKey, "_", "."),
	}
	// progressive nesting: a.b_c_d, a.b.c_d, ...
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	// trailing split: a_b_c.d
	if len(parts) >= 3 {
		variants = append(variants, strings.Join(parts[:len(parts)-1], "_")+"."+parts[len(parts)-1])
	}
	return removeDuplicates(variants)
}

func removeDuplicates(items []string) []string {
	seen := make(map[string]bool, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}
