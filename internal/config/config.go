// Package config loads the careers server settings from the environment,
// optionally seeded from .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/goliatone/go-careers/components/applications"
	"github.com/goliatone/go-careers/pkg/render"
	"github.com/goliatone/go-careers/pkg/submit"
)

// Environment keys.
const (
	EnvAddr           = "CAREERS_ADDR"
	EnvPort           = "PORT"
	EnvBasePath       = "CAREERS_BASE_PATH"
	EnvScriptURL      = "GOOGLE_SCRIPT_URL"
	EnvCatalogDir     = "CAREERS_CATALOG_DIR"
	EnvRoleOverlay    = "CAREERS_ROLE_OVERLAY"
	EnvWatchCatalog   = "CAREERS_WATCH_CATALOG"
	EnvTheme          = "CAREERS_THEME"
	EnvThemeVariant   = "CAREERS_THEME_VARIANT"
	EnvLogLevel       = "CAREERS_LOG_LEVEL"
	EnvLogFormat      = "CAREERS_LOG_FORMAT"
	EnvAllowedOrigins = "CAREERS_ALLOWED_ORIGINS"
	EnvMaxUploadBytes = "CAREERS_MAX_UPLOAD_BYTES"
	EnvHTTPTimeout    = "CAREERS_HTTP_TIMEOUT"
)

// DefaultEnvFiles are read by Load when no files are given.
var DefaultEnvFiles = []string{".env"}

// Config is the resolved server configuration.
type Config struct {
	Addr           string        `env:"CAREERS_ADDR" validate:"required"`
	BasePath       string        `env:"CAREERS_BASE_PATH" validate:"omitempty,startswith=/"`
	ScriptURL      string        `env:"GOOGLE_SCRIPT_URL" validate:"required,url"`
	CatalogDir     string        `env:"CAREERS_CATALOG_DIR" validate:"omitempty,dir"`
	RoleOverlay    string        `env:"CAREERS_ROLE_OVERLAY" validate:"omitempty,file"`
	WatchCatalog   bool          `env:"CAREERS_WATCH_CATALOG"`
	Theme          string        `env:"CAREERS_THEME" validate:"required"`
	ThemeVariant   string        `env:"CAREERS_THEME_VARIANT"`
	LogLevel       string        `env:"CAREERS_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat      string        `env:"CAREERS_LOG_FORMAT" validate:"oneof=json console"`
	AllowedOrigins []string      `env:"CAREERS_ALLOWED_ORIGINS" validate:"dive,required"`
	MaxUploadBytes int64         `env:"CAREERS_MAX_UPLOAD_BYTES" validate:"gt=0"`
	HTTPTimeout    time.Duration `env:"CAREERS_HTTP_TIMEOUT" validate:"gte=0"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Addr:           ":8080",
		ScriptURL:      submit.DefaultEndpoint,
		Theme:          render.DefaultThemeName,
		LogLevel:       "info",
		LogFormat:      "json",
		MaxUploadBytes: applications.DefaultMaxUploadBytes,
	}
}

// Load reads the given .env files (DefaultEnvFiles when none), skipping
// missing ones, and then resolves the configuration from the process
// environment. Variables already set in the environment win over files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	var present []string
	for _, file := range files {
		if _, err := os.Stat(file); err == nil {
			present = append(present, file)
		}
	}
	if len(present) > 0 {
		if err := godotenv.Load(present...); err != nil {
			return Config{}, fmt.Errorf("config: load env files: %w", err)
		}
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup resolves the configuration through lookup and validates it.
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	get := func(key string) (string, bool) {
		value, ok := lookup(key)
		value = strings.TrimSpace(value)
		return value, ok && value != ""
	}

	if port, ok := get(EnvPort); ok {
		cfg.Addr = ":" + port
	}
	if addr, ok := get(EnvAddr); ok {
		cfg.Addr = addr
	}
	if value, ok := get(EnvBasePath); ok {
		cfg.BasePath = strings.TrimRight(value, "/")
	}
	if value, ok := get(EnvScriptURL); ok {
		cfg.ScriptURL = value
	}
	if value, ok := get(EnvCatalogDir); ok {
		cfg.CatalogDir = value
	}
	if value, ok := get(EnvRoleOverlay); ok {
		cfg.RoleOverlay = value
	}
	if value, ok := get(EnvTheme); ok {
		cfg.Theme = value
	}
	if value, ok := get(EnvThemeVariant); ok {
		cfg.ThemeVariant = value
	}
	if value, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = strings.ToLower(value)
	}
	if value, ok := get(EnvLogFormat); ok {
		cfg.LogFormat = strings.ToLower(value)
	}
	if value, ok := get(EnvAllowedOrigins); ok {
		cfg.AllowedOrigins = splitList(value)
	}

	var errs []error
	if value, ok := get(EnvWatchCatalog); ok {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", EnvWatchCatalog, err))
		}
		cfg.WatchCatalog = parsed
	}
	if value, ok := get(EnvMaxUploadBytes); ok {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", EnvMaxUploadBytes, err))
		}
		cfg.MaxUploadBytes = parsed
	}
	if value, ok := get(EnvHTTPTimeout); ok {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("config: %s: %w", EnvHTTPTimeout, err))
		}
		cfg.HTTPTimeout = parsed
	}
	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if name := field.Tag.Get("env"); name != "" {
			return name
		}
		return field.Name
	})
	return v
}

// Validate checks every field and reports violations by environment key.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		msgs = append(msgs, describe(fieldErr))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func describe(err validator.FieldError) string {
	name := err.Field()
	switch err.Tag() {
	case "required":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", name, err.Param(), err.Value())
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", name, err.Value())
	case "dir", "file":
		return fmt.Sprintf("%s must be an existing %s, got %q", name, err.Tag(), err.Value())
	default:
		return fmt.Sprintf("%s failed %s%s", name, err.Tag(), paramSuffix(err.Param()))
	}
}

func paramSuffix(param string) string {
	if param == "" {
		return ""
	}
	return "=" + param
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
