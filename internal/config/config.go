// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for biblioteka.
//
// Supports both TOML and JSON configuration formats, with defaults,
// environment variable overrides, and validation.
//
// Configuration file locations (in order of precedence):
//   - the path given with --config
//   - ~/.biblioteka/config.toml
//   - ~/.biblioteka/config.json
//   - Built-in defaults
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeranaias/biblioteka-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete biblioteka configuration.
type Config struct {
	// API is the library server connection.
	API APIConfig `toml:"api" json:"api"`

	// Session holds the fallback inactivity timers, used when the server's
	// /auth/config cannot be fetched.
	Session SessionConfig `toml:"session" json:"session"`

	// UI configuration
	UI UIConfig `toml:"ui" json:"ui"`

	// Library holds circulation rules the client applies when recording.
	Library LibraryConfig `toml:"library" json:"library"`

	// Log configuration
	Log LogConfig `toml:"log" json:"log"`

	// Storage is the local state database.
	Storage StorageConfig `toml:"storage" json:"storage"`
}

// APIConfig contains the library server connection settings.
type APIConfig struct {
	// BaseURL is the root of the library REST API.
	BaseURL string `toml:"base_url" json:"base_url"`
	// RequestTimeoutSecs bounds a single HTTP request.
	RequestTimeoutSecs int `toml:"request_timeout_secs" json:"request_timeout_secs"`
	// MaxRetries is the number of extra attempts for GET requests.
	MaxRetries int `toml:"max_retries" json:"max_retries"`
	// RateLimitPerSec caps outgoing requests (0 = unlimited).
	RateLimitPerSec float64 `toml:"rate_limit_per_sec" json:"rate_limit_per_sec"`
	// RateLimitBurst is the burst allowance for the rate limiter.
	RateLimitBurst int `toml:"rate_limit_burst" json:"rate_limit_burst"`
}

// SessionConfig contains the session timer fallbacks.
type SessionConfig struct {
	// DefaultTimeoutMinutes is the inactivity timeout.
	DefaultTimeoutMinutes int `toml:"default_timeout_minutes" json:"default_timeout_minutes"`
	// DefaultWarningMinutes is the warning lead time (0 disables the warning).
	DefaultWarningMinutes int `toml:"default_warning_minutes" json:"default_warning_minutes"`
	// LogoutGraceSecs bounds the best-effort server logout.
	LogoutGraceSecs int `toml:"logout_grace_secs" json:"logout_grace_secs"`
	// UseServerConfig fetches /auth/config at startup.
	UseServerConfig bool `toml:"use_server_config" json:"use_server_config"`
}

// UIConfig contains user interface settings.
type UIConfig struct {
	// Language is "sr" or "en".
	Language string `toml:"language" json:"language"`
	// Theme is "auto", "dark" or "light".
	Theme string `toml:"theme" json:"theme"`
	// Mouse enables mouse reporting, so pointer movement counts as activity.
	Mouse bool `toml:"mouse" json:"mouse"`
}

// LibraryConfig contains the library's billing conventions.
type LibraryConfig struct {
	// MembershipPeriod is "calendar" (paid memberships end on December 31st)
	// or "rolling" (365 days from payment).
	MembershipPeriod string `toml:"membership_period" json:"membership_period"`
	// DefaultMemberType is the category given to newly registered members.
	DefaultMemberType string `toml:"default_member_type" json:"default_member_type"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `toml:"level" json:"level"`
	// Format is text or json.
	Format string `toml:"format" json:"format"`
	// File receives logs while the TUI owns the terminal (empty = ~/.biblioteka/biblioteka.log).
	File string `toml:"file" json:"file"`
}

// StorageConfig contains local state settings.
type StorageConfig struct {
	// Path is the SQLite state database (empty = ~/.biblioteka/state.db).
	Path string `toml:"path" json:"path"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:            "http://127.0.0.1:8000",
			RequestTimeoutSecs: 30,
			MaxRetries:         2,
			RateLimitPerSec:    10,
			RateLimitBurst:     20,
		},
		Session: SessionConfig{
			DefaultTimeoutMinutes: 30,
			DefaultWarningMinutes: 5,
			LogoutGraceSecs:       5,
			UseServerConfig:       true,
		},
		UI: UIConfig{
			Language: "sr",
			Theme:    "auto",
			Mouse:    true,
		},
		Library: LibraryConfig{
			MembershipPeriod:  "calendar",
			DefaultMemberType: "odrasli",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the biblioteka configuration directory path.
// BIBLIOTEKA_HOME overrides the default ~/.biblioteka.
func ConfigDir() (string, error) {
	if dir := os.Getenv("BIBLIOTEKA_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".biblioteka"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// StatePath returns the state database path, resolving the default.
func (c *Config) StatePath() (string, error) {
	if c.Storage.Path != "" {
		return c.Storage.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

// LogPath returns the TUI log file path, resolving the default.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "biblioteka.log"), nil
}

// ensureSecurePermissions tightens a config file to owner read/write.
func ensureSecurePermissions(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		if err := os.Chmod(path, 0600); err != nil {
			return fmt.Errorf("failed to fix insecure permissions (was %o): %w", mode, err)
		}
	}
	return nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load loads configuration from path, or from the default locations when
// path is empty. A missing default file yields the built-in defaults.
// Environment overrides are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFromPath(path)
	}

	cfg := Default()
	for _, locate := range []func() (string, error){ConfigPathTOML, ConfigPathJSON} {
		p, err := locate()
		if err != nil {
			continue
		}
		if _, statErr := os.Stat(p); statErr == nil {
			return LoadFromPath(p)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific file with full validation.
// Keys absent from the file keep their defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ReadFile decodes path over the defaults without environment overrides or
// validation, for editing the file in place.
func ReadFile(path string) (*Config, error) {
	cfg := Default()

	if err := ensureSecurePermissions(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not ensure secure permissions on %s: %v\n", path, err)
	}

	if strings.HasSuffix(path, ".json") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read JSON config from %s: %w", path, err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode JSON config from %s: %w", path, err)
		}
	} else {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode TOML config from %s: %w", path, err)
		}
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes the configuration to path as TOML (or JSON for a .json path).
// An empty path means the default TOML location.
func Save(cfg *Config, path string) error {
	if path == "" {
		var err error
		if path, err = ConfigPathTOML(); err != nil {
			return err
		}
	}

	var data []byte
	if strings.HasSuffix(path, ".json") {
		var err error
		if data, err = json.MarshalIndent(cfg, "", "  "); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
	} else {
		var buf bytes.Buffer
		buf.WriteString("# biblioteka configuration file\n")
		buf.WriteString("# Generated by biblioteka - edit with care\n\n")
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		data = buf.Bytes()
	}

	if err := util.AtomicWriteFileWithDir(path, data, 0600, 0700); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every setting and reports all problems at once.
func (c *Config) Validate() error {
	var errs ValidateErrors

	// API
	if u, err := url.Parse(c.API.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "api.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must be an absolute http(s) URL", c.API.BaseURL),
		})
	}
	if c.API.RequestTimeoutSecs < 1 || c.API.RequestTimeoutSecs > 600 {
		errs = append(errs, ValidationError{
			Field:   "api.request_timeout_secs",
			Message: fmt.Sprintf("must be between 1 and 600, got %d", c.API.RequestTimeoutSecs),
		})
	}
	if c.API.MaxRetries < 0 || c.API.MaxRetries > 10 {
		errs = append(errs, ValidationError{
			Field:   "api.max_retries",
			Message: fmt.Sprintf("must be between 0 and 10, got %d", c.API.MaxRetries),
		})
	}
	if c.API.RateLimitPerSec < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rate_limit_per_sec",
			Message: "cannot be negative",
		})
	}
	if c.API.RateLimitBurst < 0 {
		errs = append(errs, ValidationError{
			Field:   "api.rate_limit_burst",
			Message: "cannot be negative",
		})
	}

	// Session
	if c.Session.DefaultTimeoutMinutes < 1 {
		errs = append(errs, ValidationError{
			Field:   "session.default_timeout_minutes",
			Message: fmt.Sprintf("must be at least 1, got %d", c.Session.DefaultTimeoutMinutes),
		})
	}
	if c.Session.DefaultWarningMinutes < 0 {
		errs = append(errs, ValidationError{
			Field:   "session.default_warning_minutes",
			Message: fmt.Sprintf("cannot be negative, got %d", c.Session.DefaultWarningMinutes),
		})
	}
	if c.Session.LogoutGraceSecs < 1 || c.Session.LogoutGraceSecs > 60 {
		errs = append(errs, ValidationError{
			Field:   "session.logout_grace_secs",
			Message: fmt.Sprintf("must be between 1 and 60, got %d", c.Session.LogoutGraceSecs),
		})
	}

	// UI
	switch c.UI.Language {
	case "sr", "en":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.language",
			Message: fmt.Sprintf("invalid language '%s', must be one of: sr, en", c.UI.Language),
		})
	}
	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}

	// Library
	switch strings.ToLower(c.Library.MembershipPeriod) {
	case "calendar", "rolling":
	default:
		errs = append(errs, ValidationError{
			Field:   "library.membership_period",
			Message: fmt.Sprintf("invalid membership period '%s', must be one of: calendar, rolling", c.Library.MembershipPeriod),
		})
	}
	if strings.TrimSpace(c.Library.DefaultMemberType) == "" {
		errs = append(errs, ValidationError{
			Field:   "library.default_member_type",
			Message: "default member type cannot be empty",
		})
	}

	// Log
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.Log.Level),
		})
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: text, json", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED VALUES
// =============================================================================

// RequestTimeout returns the per-request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.API.RequestTimeoutSecs) * time.Second
}

// RollingMemberships reports whether memberships run 365 days from payment.
func (c *Config) RollingMemberships() bool {
	return strings.EqualFold(c.Library.MembershipPeriod, "rolling")
}

// LogoutGrace returns the bound on the best-effort logout call.
func (c *Config) LogoutGrace() time.Duration {
	return time.Duration(c.Session.LogoutGraceSecs) * time.Second
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides to the config.
//
// Supported environment variables:
//   - BIBLIOTEKA_API_URL: overrides api.base_url
//   - BIBLIOTEKA_LANG: overrides ui.language
//   - BIBLIOTEKA_LOG_LEVEL: overrides log.level
//   - BIBLIOTEKA_LOG_FORMAT: overrides log.format
//   - BIBLIOTEKA_STATE_DB: overrides storage.path
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("BIBLIOTEKA_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("BIBLIOTEKA_LANG"); v != "" {
		c.UI.Language = strings.ToLower(v)
	}
	if v := os.Getenv("BIBLIOTEKA_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("BIBLIOTEKA_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("BIBLIOTEKA_STATE_DB"); v != "" {
		c.Storage.Path = v
	}
}

// =============================================================================
// GET/SET HELPERS (DOT NOTATION)
// =============================================================================

// Get retrieves a configuration value using dot notation (e.g., "api.base_url").
func (c *Config) Get(key string) (interface{}, error) {
	field, err := c.lookup(key)
	if err != nil {
		return nil, err
	}
	return field.Interface(), nil
}

// Set sets a configuration value using dot notation (e.g., "ui.language").
// String values are converted to the field's type.
func (c *Config) Set(key string, value interface{}) error {
	field, err := c.lookup(key)
	if err != nil {
		return err
	}
	if !field.CanSet() {
		return fmt.Errorf("cannot set field: %s", key)
	}
	return setFieldValue(field, value)
}

func (c *Config) lookup(key string) (reflect.Value, error) {
	if key == "" {
		return reflect.Value{}, errors.New("empty key")
	}
	parts := strings.Split(key, ".")

	v := reflect.ValueOf(c).Elem()
	for i, part := range parts {
		fieldName := normalizeFieldName(part)
		field := v.FieldByNameFunc(func(name string) bool {
			return strings.EqualFold(name, fieldName)
		})
		if !field.IsValid() {
			return reflect.Value{}, fmt.Errorf("unknown field: %s", strings.Join(parts[:i+1], "."))
		}
		if i == len(parts)-1 {
			return field, nil
		}
		if field.Kind() != reflect.Struct {
			return reflect.Value{}, fmt.Errorf("field '%s' is not a struct", strings.Join(parts[:i+1], "."))
		}
		v = field
	}
	return reflect.Value{}, fmt.Errorf("invalid key: %s", key)
}

// normalizeFieldName converts a snake_case or kebab-case name to its Go field
// name, e.g. base_url -> BaseUrl. Matching is case-insensitive.
func normalizeFieldName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var result strings.Builder
	for _, part := range parts {
		if len(part) > 0 {
			result.WriteString(strings.ToUpper(string(part[0])))
			result.WriteString(strings.ToLower(part[1:]))
		}
	}
	return result.String()
}

// setFieldValue sets a reflect.Value from an interface{} value with type conversion.
func setFieldValue(field reflect.Value, value interface{}) error {
	if strVal, ok := value.(string); ok {
		switch field.Kind() {
		case reflect.String:
			field.SetString(strVal)
			return nil
		case reflect.Int, reflect.Int64:
			intVal, err := strconv.ParseInt(strVal, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid integer value: %v", err)
			}
			field.SetInt(intVal)
			return nil
		case reflect.Float64:
			floatVal, err := strconv.ParseFloat(strVal, 64)
			if err != nil {
				return fmt.Errorf("invalid float value: %v", err)
			}
			field.SetFloat(floatVal)
			return nil
		case reflect.Bool:
			lower := strings.ToLower(strVal)
			field.SetBool(lower == "1" || lower == "true" || lower == "yes")
			return nil
		}
	}

	val := reflect.ValueOf(value)
	if !val.IsValid() {
		return fmt.Errorf("cannot assign nil to %s", field.Type())
	}
	if val.Type().AssignableTo(field.Type()) {
		field.Set(val)
		return nil
	}
	if val.Type().ConvertibleTo(field.Type()) {
		field.Set(val.Convert(field.Type()))
		return nil
	}
	return fmt.Errorf("cannot assign %T to %s", value, field.Type())
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// Keys returns all configuration keys in dot notation.
func Keys() []string {
	var keys []string
	collectKeys(reflect.TypeOf(Config{}), "", &keys)
	return keys
}

func collectKeys(t reflect.Type, prefix string, keys *[]string) {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("toml"), ",")[0]
		if name == "" {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}
		if f.Type.Kind() == reflect.Struct {
			collectKeys(f.Type, name, keys)
			continue
		}
		*keys = append(*keys, name)
	}
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Sprintf("error encoding config: %v", err)
	}
	return buf.String()
}
