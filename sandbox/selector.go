// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// LandlockExecCommand is the hidden CLI subcommand the Landlock tier
// re-execs through. The binary's main dispatch must route it to
// ExecLandlocked.
const LandlockExecCommand = "landlock-exec"

// Spawn is a wrapped process specification: the argv to execute and
// the environment to execute it with.
type Spawn struct {
	Argv []string
	Env  []string
}

// Selector probes the available isolation tiers once and wraps spawns
// with the strongest one. Safe for concurrent use; the probe result is
// immutable after first use.
type Selector struct {
	workspace string
	logger    *slog.Logger

	// probeFn is replaced in tests to force a tier.
	probeFn func() []Tier

	once  sync.Once
	tiers []Tier
}

// NewSelector creates a Selector granting write access to workspace.
func NewSelector(workspace string, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		workspace: workspace,
		logger:    logger,
		probeFn:   probeTiers,
	}
}

// NewFixedSelector creates a Selector pinned to one tier, skipping the
// probe. It backs the CLI tier override; pinning a tier the host does
// not support surfaces as a spawn failure rather than a probe error.
func NewFixedSelector(workspace string, tier Tier, logger *slog.Logger) *Selector {
	s := NewSelector(workspace, logger)
	s.probeFn = func() []Tier {
		if tier == TierNone {
			return []Tier{TierNone}
		}
		return []Tier{tier, TierNone}
	}
	return s
}

// probeTiers returns the available tiers, strongest first. TierNone is
// always present as the final fallback.
func probeTiers() []Tier {
	caps := DetectCapabilities()
	var tiers []Tier
	if caps.CanLandlock() {
		tiers = append(tiers, TierLandlock)
	}
	if caps.CanBwrap() {
		tiers = append(tiers, TierBwrap)
	}
	return append(tiers, TierNone)
}

// Probe returns the ordered available tiers, probing on first call and
// caching for the process lifetime. Falling back below the strongest
// conceivable tier is logged, never fatal.
func (s *Selector) Probe() []Tier {
	s.once.Do(func() {
		s.tiers = s.probeFn()
		selected := s.tiers[0]
		if selected == TierNone {
			s.logger.Warn("no OS sandbox available, running without isolation",
				"workspace", s.workspace)
		} else {
			s.logger.Info("sandbox tier selected",
				"tier", selected.String(),
				"available", len(s.tiers),
				"workspace", s.workspace)
		}
	})
	return s.tiers
}

// Tier returns the selected (strongest available) tier.
func (s *Selector) Tier() Tier {
	return s.Probe()[0]
}

// Workspace returns the writable scope passed at construction.
func (s *Selector) Workspace() string { return s.workspace }

// Wrap converts a spawn specification into its sandboxed equivalent
// under the selected tier. The returned Env is what the spawned
// process — the sandbox wrapper itself, where one exists — must run
// with; for bwrap the sanitized variables travel inside the argv as
// --setenv pairs and the wrapper gets a minimal environment so the
// parent's variables never appear in its /proc entry.
func (s *Selector) Wrap(argv []string, env []string) (*Spawn, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty command")
	}

	switch tier := s.Tier(); tier {
	case TierLandlock:
		self, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("resolving own binary for landlock re-exec: %w", err)
		}
		wrapped := []string{self, LandlockExecCommand, "--workspace=" + s.workspace, "--"}
		return &Spawn{Argv: append(wrapped, argv...), Env: env}, nil

	case TierBwrap:
		bwrapPath, err := BwrapPath()
		if err != nil {
			return nil, err
		}
		args, err := BuildBwrapArgs(s.workspace, env, argv)
		if err != nil {
			return nil, err
		}
		return &Spawn{
			Argv: append([]string{bwrapPath}, args...),
			Env: []string{
				"PATH=/usr/local/bin:/usr/bin:/bin",
				"TERM=" + os.Getenv("TERM"),
			},
		}, nil

	default:
		return &Spawn{Argv: argv, Env: env}, nil
	}
}
