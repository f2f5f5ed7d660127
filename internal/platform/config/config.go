// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values. For local development
an optional .env file is loaded first with 'joho/godotenv'; real environment
variables always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (backend client, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// csrfKeyBytes is the key length gorilla/csrf expects.
const csrfKeyBytes = 32

// # Configuration Schema

// Config holds all runtime configuration for the admin portal.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Authoritative REST backend
	BackendURL      string        `env:"BACKEND_URL,required"`
	BackendTimeout  time.Duration `env:"BACKEND_TIMEOUT"   envDefault:"15s"`
	BackendRPS      float64       `env:"BACKEND_RPS"       envDefault:"20"`
	BackendBurst    int           `env:"BACKEND_BURST"     envDefault:"40"`
	BackendPageSize int           `env:"BACKEND_PAGE_SIZE" envDefault:"100"`

	// Key-Value store (Redis) for sessions and curation drafts
	RedisURL string `env:"REDIS_URL,required"`

	// Relational Database (PostgreSQL). Optional: enables the audit trail.
	DatabaseURL string `env:"DATABASE_URL"`

	// MigrationPath overrides the embedded audit schema with a directory on disk.
	MigrationPath string `env:"MIGRATION_PATH"`

	// Backend-issued token verification
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`
	JWTIssuer     string `env:"JWT_ISSUER" envDefault:"tinytales.app"`

	// Sessions and per-session view state
	SessionTTL    time.Duration `env:"SESSION_TTL"    envDefault:"12h"`
	SessionCookie string        `env:"SESSION_COOKIE" envDefault:"tt_admin_session"`
	DraftTTL      time.Duration `env:"DRAFT_TTL"      envDefault:"2h"`

	// Uploads. Images wider than ImageMaxWidth are downscaled; -1 disables.
	MaxUploadMB   int64 `env:"MAX_UPLOAD_MB"   envDefault:"200"`
	ImageMaxWidth int   `env:"IMAGE_MAX_WIDTH" envDefault:"2048"`

	// FeaturedBatchSave sends featured-content saves as a single batch request.
	FeaturedBatchSave bool `env:"FEATURED_BATCH_SAVE" envDefault:"false"`

	// Cross-Origin Resource Sharing (comma separated origin suffixes)
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	// CSRF protection of form posts. CSRFKey is 64 hex characters (32 bytes);
	// CSRFTrustedOrigins lists the staff UI hosts allowed to post cross-origin.
	CSRFKey            string `env:"CSRF_KEY"`
	CSRFTrustedOrigins string `env:"CSRF_TRUSTED_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects combinations that env tags cannot express.
func (c *Config) validate() error {
	if c.BackendPageSize < 1 {
		return fmt.Errorf("config: BACKEND_PAGE_SIZE must be positive, got %d", c.BackendPageSize)
	}
	if c.BackendRPS <= 0 {
		return fmt.Errorf("config: BACKEND_RPS must be positive, got %v", c.BackendRPS)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.CSRFKey == "" && c.IsProduction() {
		return errors.New("config: CSRF_KEY is required in production")
	}
	if c.CSRFKey != "" {
		if key, err := hex.DecodeString(c.CSRFKey); err != nil || len(key) != csrfKeyBytes {
			return errors.New("config: CSRF_KEY must be 64 hex characters (32 bytes)")
		}
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AuditEnabled reports whether a database is configured for the audit trail.
func (c *Config) AuditEnabled() bool {
	return c.DatabaseURL != ""
}

// OriginSuffixes returns the trimmed, non-empty entries of AllowedOrigins.
func (c *Config) OriginSuffixes() []string {
	return splitList(c.AllowedOrigins)
}

// TrustedOrigins returns the trimmed, non-empty entries of CSRFTrustedOrigins.
func (c *Config) TrustedOrigins() []string {
	return splitList(c.CSRFTrustedOrigins)
}

// CSRFAuthKey decodes CSRFKey. Without one, a random key is generated, so CSRF
// tokens do not survive a restart. [Load] refuses that in production.
func (c *Config) CSRFAuthKey() ([]byte, error) {
	if c.CSRFKey != "" {
		return hex.DecodeString(c.CSRFKey)
	}

	key := make([]byte, csrfKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("config: failed to generate CSRF key: %w", err)
	}
	return key, nil
}

func splitList(raw string) []string {
	var entries []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	return entries
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
