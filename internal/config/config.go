// Package config loads and validates statements.yaml.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements/internal/model"
)

// FileName is the workspace config file name.
const FileName = "statements.yaml"

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "STATEMENTS_CONFIG"

// Config represents the top-level statements.yaml configuration.
type Config struct {
	Currency string       `yaml:"currency" validate:"required,len=3,uppercase"`
	Import   ImportConfig `yaml:"import"`
	Ledger   LedgerConfig `yaml:"ledger"`
	Rules    RulesConfig  `yaml:"rules"`
	Log      LogConfig    `yaml:"log"`
	Server   ServerConfig `yaml:"server"`
	Git      GitConfig    `yaml:"git"`
}

// ImportConfig locates the inbox of statement exports.
type ImportConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// LedgerConfig locates the monthly transaction ledgers.
type LedgerConfig struct {
	Dir string `yaml:"dir" validate:"required"`
}

// RulesConfig locates user categorization rules.
type RulesConfig struct {
	File string `yaml:"file" validate:"required"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// ServerConfig controls the HTTP surface.
type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name" validate:"required_if=AutoCommit true"`
	AuthorEmail string `yaml:"author_email" validate:"required_if=AutoCommit true,omitempty,email"`
}

// SlogLevel maps the configured level onto slog.
func (l LogConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Resolve returns p relative to the workspace root unless it is already absolute.
func Resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Currency: model.DefaultCurrency,
		Import:   ImportConfig{Dir: "import"},
		Ledger:   LedgerConfig{Dir: "ledger"},
		Rules:    RulesConfig{File: "rules/categorization-rules.yaml"},
		Log:      LogConfig{Level: "info"},
		Server:   ServerConfig{Addr: ":8080"},
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "Statements Importer",
			AuthorEmail: "importer@statements.local",
		},
	}
}

// Load reads a statements.yaml file from disk. Keys missing from the file
// keep their Default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and reports every violation at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, e := range verrs {
		msgs[i] = fieldErrorToString(e)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func fieldErrorToString(e validator.FieldError) string {
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	switch e.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must be %s characters", field, e.Param())
	case "uppercase":
		return fmt.Sprintf("%s must be uppercase", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, e.Param())
	case "email":
		return fmt.Sprintf("%s must be an email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
