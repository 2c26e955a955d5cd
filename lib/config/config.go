// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for OpenClaw.
//
// Configuration is loaded from a single file specified by:
//   - OPENCLAW_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. This ensures
// deterministic, auditable configuration with no hidden overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for the OpenClaw security core.
type Config struct {
	// Security configures the autonomy gate, rate limit, and sandbox
	// workspace.
	Security SecurityConfig `yaml:"security"`

	// HTTPRequest configures the outbound request tool.
	HTTPRequest HTTPRequestConfig `yaml:"http_request"`

	// Budget configures the LLM spend tracker.
	Budget BudgetConfig `yaml:"budget"`

	// Audit configures the action audit log.
	Audit AuditConfig `yaml:"audit"`
}

// SecurityConfig drives the policy engine, rate limiter, and sandbox.
type SecurityConfig struct {
	// Autonomy is one of "read_only", "supervised", "autonomous".
	Autonomy string `yaml:"autonomy"`

	// MaxActionsPerHour caps actions per rolling hourly window.
	// Zero disables tool execution entirely.
	MaxActionsPerHour int `yaml:"max_actions_per_hour"`

	// WorkspaceDir is the filesystem root the sandbox grants write
	// access to. Must be an absolute path.
	WorkspaceDir string `yaml:"workspace_dir"`

	// RulesFile is an optional JSONC file with additional command
	// risk rules, merged after the built-in table.
	RulesFile string `yaml:"rules_file,omitempty"`
}

// HTTPRequestConfig restricts outbound requests.
type HTTPRequestConfig struct {
	// AllowedDomains lists domain suffixes the http tool may reach.
	// Empty means the tool is fully disabled.
	AllowedDomains []string `yaml:"allowed_domains"`
}

// BudgetConfig caps LLM spend. Zero means unlimited.
type BudgetConfig struct {
	SessionUSD float64 `yaml:"session_usd"`
	DailyUSD   float64 `yaml:"daily_usd"`
}

// AuditConfig controls audit logging. An empty LogFile disables it.
type AuditConfig struct {
	LogFile string `yaml:"log_file"`
}

// autonomyLevels are the recognized security.autonomy values.
var autonomyLevels = map[string]bool{
	"read_only":  true,
	"supervised": true,
	"autonomous": true,
}

// Default returns the configuration used when no file is given:
// supervised autonomy, a modest hourly budget, the current directory
// as workspace, and the network tool disabled (fail-closed).
func Default() *Config {
	workspace, err := os.Getwd()
	if err != nil {
		workspace = "/"
	}
	return &Config{
		Security: SecurityConfig{
			Autonomy:          "supervised",
			MaxActionsPerHour: 30,
			WorkspaceDir:      workspace,
		},
	}
}

// Load reads the configuration from path, or from OPENCLAW_CONFIG if
// path is empty. An empty path with no environment variable returns
// Default(). The loaded configuration is validated before return.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("OPENCLAW_CONFIG")
	}
	if path == "" {
		cfg := Default()
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if !autonomyLevels[c.Security.Autonomy] {
		return fmt.Errorf("security.autonomy must be read_only, supervised, or autonomous (got %q)", c.Security.Autonomy)
	}
	if c.Security.MaxActionsPerHour < 0 {
		return fmt.Errorf("security.max_actions_per_hour must be >= 0 (got %d)", c.Security.MaxActionsPerHour)
	}
	if c.Security.WorkspaceDir == "" {
		return fmt.Errorf("security.workspace_dir is required")
	}
	if !filepath.IsAbs(c.Security.WorkspaceDir) {
		return fmt.Errorf("security.workspace_dir must be absolute (got %q)", c.Security.WorkspaceDir)
	}
	if c.Budget.SessionUSD < 0 || c.Budget.DailyUSD < 0 {
		return fmt.Errorf("budget ceilings must be >= 0")
	}
	for _, domain := range c.HTTPRequest.AllowedDomains {
		if domain == "" {
			return fmt.Errorf("http_request.allowed_domains must not contain empty entries")
		}
	}
	return nil
}
