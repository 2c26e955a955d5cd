// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/yihua-bot/openclaw/audit"
	"github.com/yihua-bot/openclaw/executor"
	"github.com/yihua-bot/openclaw/lib/config"
	"github.com/yihua-bot/openclaw/netguard"
	"github.com/yihua-bot/openclaw/policy"
	"github.com/yihua-bot/openclaw/ratelimit"
	"github.com/yihua-bot/openclaw/sandbox"
)

// exitError carries a child process exit code to main without
// wrapping it in an error message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

func isExitError(err error) (int, bool) {
	if coder, ok := err.(*exitError); ok {
		return coder.code, true
	}
	return 0, false
}

// buildExecutor assembles the pipeline from the loaded configuration.
// The returned audit log, when non-nil, must be closed by the caller.
func buildExecutor(cfg *config.Config, sandboxTier string, timeout time.Duration, logger *slog.Logger) (*executor.Executor, *audit.Log, error) {
	autonomy, err := policy.ParseAutonomy(cfg.Security.Autonomy)
	if err != nil {
		return nil, nil, err
	}

	var extraRules []policy.Rule
	if cfg.Security.RulesFile != "" {
		extraRules, err = policy.LoadRules(cfg.Security.RulesFile)
		if err != nil {
			return nil, nil, fmt.Errorf("loading risk rules: %w", err)
		}
	}

	var guard *netguard.Guard
	if len(cfg.HTTPRequest.AllowedDomains) > 0 {
		guard = netguard.New(netguard.Config{
			AllowedDomains: cfg.HTTPRequest.AllowedDomains,
			Logger:         logger,
		})
	}

	var selector *sandbox.Selector
	if sandboxTier != "" && sandboxTier != "auto" {
		tier, ok := sandbox.ParseTier(sandboxTier)
		if !ok {
			return nil, nil, fmt.Errorf("unknown sandbox tier %q (want auto, landlock, bwrap or none)", sandboxTier)
		}
		selector = sandbox.NewFixedSelector(cfg.Security.WorkspaceDir, tier, logger)
	} else {
		selector = sandbox.NewSelector(cfg.Security.WorkspaceDir, logger)
	}

	var auditLog *audit.Log
	if cfg.Audit.LogFile != "" {
		auditLog, err = audit.Open(cfg.Audit.LogFile, nil)
		if err != nil {
			return nil, nil, err
		}
	}

	exec := executor.New(executor.Config{
		Engine:    policy.NewEngine(autonomy),
		Validator: policy.NewValidator(policy.NewClassifier(extraRules...)),
		Limiter:   ratelimit.New(cfg.Security.MaxActionsPerHour, nil),
		Guard:     guard,
		Sandbox:   selector,
		Audit:     auditLog,
		Logger:    logger,
		Timeout:   timeout,
	})
	return exec, auditLog, nil
}
