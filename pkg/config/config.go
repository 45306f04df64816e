// Package config loads client configuration from YAML or JSON files.
//
// A configuration file carries the merchant credentials and environment
// selection so applications can build a gateway client without wiring
// options by hand:
//
//	merchant_id: d3cf1d33-6e38-4d86-9cbd-e18d3e9b2c0e
//	environment: homologation
//	timeout_seconds: 10
//	log:
//	  level: debug
//	  format: json
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/paymentsbr/pagador/pkg/logging"
	"github.com/paymentsbr/pagador/pkg/pagador"
	"github.com/paymentsbr/pagador/pkg/wire"
)

// Environments selectable in a configuration file.
const (
	EnvProduction   = "production"
	EnvHomologation = "homologation"
)

// Common errors for configuration loading.
var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrEmptyFile    = errors.New("configuration file is empty")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrInvalidJSON  = errors.New("invalid JSON syntax")
)

// Config is the file-level client configuration.
type Config struct {
	// MerchantID is the merchant identifier issued by the gateway.
	MerchantID string `yaml:"merchant_id" json:"merchantId"`

	// Environment selects the gateway endpoints. Defaults to production.
	Environment string `yaml:"environment" json:"environment"`

	// TimeoutSeconds bounds each gateway call. Zero means the client
	// default.
	TimeoutSeconds int `yaml:"timeout_seconds" json:"timeoutSeconds"`

	Log LogConfig `yaml:"log" json:"log"`
}

// LogConfig selects the logger level and format.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// Validate checks the configuration for values the client would reject.
func (c *Config) Validate() error {
	if c.MerchantID == "" {
		return errors.New("merchant_id is required")
	}
	if !wire.IsValidGUID(c.MerchantID) {
		return fmt.Errorf("merchant_id %q is not a well-formed identifier", c.MerchantID)
	}
	switch c.Environment {
	case "", EnvProduction, EnvHomologation:
	default:
		return fmt.Errorf("environment %q is not one of %s, %s", c.Environment, EnvProduction, EnvHomologation)
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("timeout_seconds must not be negative")
	}
	return nil
}

// LoadFromFile reads a Config from a JSON or YAML file. The format is
// detected from the file extension (.yaml, .yml for YAML, otherwise
// JSON) and the result is validated.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		return ParseYAML(data)
	}
	return ParseJSON(data)
}

// ParseYAML parses YAML bytes into a validated Config.
func ParseYAML(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// ParseJSON parses JSON bytes into a validated Config.
func ParseJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Logger builds the logger described by the Log section.
func (c *Config) Logger() *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(c.Log.Level),
		Format: logging.ParseFormat(c.Log.Format),
	})
}

// Options translates the configuration into client options.
func (c *Config) Options() []pagador.Option {
	opts := []pagador.Option{pagador.WithLogger(c.Logger())}
	if c.Environment == EnvHomologation {
		opts = append(opts, pagador.WithHomologation())
	}
	if c.TimeoutSeconds > 0 {
		opts = append(opts, pagador.WithTimeout(time.Duration(c.TimeoutSeconds)*time.Second))
	}
	return opts
}

// NewClient builds a gateway client from the configuration.
func (c *Config) NewClient(extra ...pagador.Option) *pagador.Client {
	return pagador.New(c.MerchantID, append(c.Options(), extra...)...)
}
