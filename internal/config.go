package internal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Config struct {
	JJBinary    string        `yaml:"jj_binary,omitempty"`
	SearchDepth int           `yaml:"search_depth" validate:"min=0"`
	Color       string        `yaml:"color" validate:"oneof=always auto never"`
	Format      FormatOptions `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		JJBinary:    "jj",
		SearchDepth: DefaultSearchDepth,
		Color:       ColorAlways,
		Format:      DefaultFormatOptions(),
	}
}

// DefaultConfigPath honours JJ_PROMPT_CONFIG, then the user config directory.
func DefaultConfigPath() string {
	if p := os.Getenv("JJ_PROMPT_CONFIG"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "jj-prompt", "config.yaml")
}

// LoadConfig reads path over the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate reports the first invalid field as a *ValidationError.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate config: %w", err)
	}

	fe := fieldErrs[0]
	reason := "must be non-negative"
	if fe.Tag() == "oneof" {
		reason = "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	}
	return &ValidationError{
		Option: fe.Field(),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason,
	}
}
