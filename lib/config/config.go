// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the drivelot
// client.
//
// Configuration is deployment wiring only: which backend the client
// talks to and how long it waits. It is loaded from a single file —
// the DRIVELOT_CONFIG environment variable or the --config flag if
// given, otherwise ~/.config/drivelot/config.yaml. A missing default
// file is fine; the built-in defaults apply. Environment variables
// never override individual config values.
//
// Key exports:
//
//   - [Config] -- server base URL, auth service URL, request timeouts
//   - [Default] -- a Config with local-development defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the client configuration.
type Config struct {
	// Server configures the marketplace backend.
	Server ServerConfig `yaml:"server"`
}

// ServerConfig locates the backend services.
type ServerConfig struct {
	// BaseURL is the marketplace API base URL (cars, notifications,
	// profile endpoints).
	BaseURL string `yaml:"base_url"`

	// AuthURL is the auth service base URL (register, login). Empty
	// means the auth service lives at BaseURL.
	AuthURL string `yaml:"auth_url"`

	// Timeout bounds each API request, as a Go duration string.
	// Default: 30s
	Timeout string `yaml:"timeout"`

	// UploadTimeout bounds multipart uploads (listing submission,
	// avatar update), which carry image files and need more headroom.
	// Default: 2m
	UploadTimeout string `yaml:"upload_timeout"`
}

// EffectiveAuthURL returns AuthURL, falling back to BaseURL.
func (s ServerConfig) EffectiveAuthURL() string {
	if s.AuthURL != "" {
		return s.AuthURL
	}
	return s.BaseURL
}

// RequestTimeout returns the parsed request timeout. Validate has
// already checked the string parses.
func (s ServerConfig) RequestTimeout() time.Duration {
	return parseDurationOr(s.Timeout, 30*time.Second)
}

// UploadRequestTimeout returns the parsed upload timeout.
func (s ServerConfig) UploadRequestTimeout() time.Duration {
	return parseDurationOr(s.UploadTimeout, 2*time.Minute)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

// Default returns the default configuration: a local development
// backend. Real deployments set server.base_url in the config file.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:       "http://localhost:8080",
			Timeout:       "30s",
			UploadTimeout: "2m",
		},
	}
}

// Path returns the config file path: DRIVELOT_CONFIG if set, otherwise
// ~/.config/drivelot/config.yaml (honoring XDG_CONFIG_HOME).
func Path() string {
	if envPath := os.Getenv("DRIVELOT_CONFIG"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "drivelot-config.yaml")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "drivelot", "config.yaml")
}

// Load loads configuration from the well-known path. A missing file at
// the default location is not an error — defaults apply. A missing
// file at an explicitly configured DRIVELOT_CONFIG path is an error,
// since the user asked for it.
func Load() (*Config, error) {
	path := Path()
	cfg, err := LoadFile(path)
	if err != nil {
		if os.Getenv("DRIVELOT_CONFIG") == "" && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads configuration from a specific file path, merging over
// the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.BaseURL == "" {
		errs = append(errs, errors.New("server.base_url is required"))
	} else if _, err := url.Parse(c.Server.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("server.base_url: %w", err))
	}
	if c.Server.AuthURL != "" {
		if _, err := url.Parse(c.Server.AuthURL); err != nil {
			errs = append(errs, fmt.Errorf("server.auth_url: %w", err))
		}
	}
	if c.Server.Timeout != "" {
		if _, err := time.ParseDuration(c.Server.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("server.timeout: %w", err))
		}
	}
	if c.Server.UploadTimeout != "" {
		if _, err := time.ParseDuration(c.Server.UploadTimeout); err != nil {
			errs = append(errs, fmt.Errorf("server.upload_timeout: %w", err))
		}
	}

	return errors.Join(errs...)
}
