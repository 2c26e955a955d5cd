// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/yihua-bot/openclaw/audit"
	"github.com/yihua-bot/openclaw/netguard"
	"github.com/yihua-bot/openclaw/policy"
	"github.com/yihua-bot/openclaw/ratelimit"
	"github.com/yihua-bot/openclaw/sandbox"
)

// DefaultTimeout bounds shell command wall time.
const DefaultTimeout = 60 * time.Second

// Config assembles an Executor from its pipeline stages. Engine,
// Validator, Limiter and Sandbox are required. Guard may be nil when
// outbound HTTP is disabled, and Audit may be nil to skip logging.
type Config struct {
	Engine    *policy.Engine
	Validator *policy.Validator
	Limiter   *ratelimit.Limiter
	Guard     *netguard.Guard
	Sandbox   *sandbox.Selector
	Audit     *audit.Log
	Logger    *slog.Logger
	Timeout   time.Duration
}

// Executor runs tool requests through the policy pipeline.
type Executor struct {
	engine    *policy.Engine
	validator *policy.Validator
	limiter   *ratelimit.Limiter
	guard     *netguard.Guard
	sandbox   *sandbox.Selector
	auditLog  *audit.Log
	logger    *slog.Logger
	timeout   time.Duration
	environ   func() []string
}

// New creates an executor. Missing required stages are a programming
// error and surface on first use.
func New(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Executor{
		engine:    cfg.Engine,
		validator: cfg.Validator,
		limiter:   cfg.Limiter,
		guard:     cfg.Guard,
		sandbox:   cfg.Sandbox,
		auditLog:  cfg.Audit,
		logger:    logger,
		timeout:   timeout,
		environ:   defaultEnviron,
	}
}

// Execute runs one request. A *Denial error means the pipeline
// refused the request before execution; a *TimeoutError accompanies a
// partial shell result. Denied requests never consume rate budget.
func (e *Executor) Execute(ctx context.Context, req Request) (*Result, error) {
	switch req.Tool {
	case ToolShell:
		return e.executeShell(ctx, req)
	case ToolHTTPRequest:
		return e.executeHTTP(ctx, req)
	default:
		return nil, e.deny(req, CodeValidation, fmt.Sprintf("unknown tool %q", req.Tool), "")
	}
}

func (e *Executor) executeShell(ctx context.Context, req Request) (*Result, error) {
	if err := e.engine.Gate(policy.KindShell); err != nil {
		return nil, e.deny(req, CodePolicy, err.Error(), "")
	}
	if e.limiter.Limited() {
		reason := fmt.Sprintf("hourly action limit reached, %d remaining", e.limiter.Remaining())
		return nil, e.deny(req, CodeRateLimited, reason, "")
	}

	params, err := decodeShellParams(req.Params)
	if err != nil {
		return nil, e.deny(req, CodeValidation, err.Error(), "")
	}

	match, err := e.validator.Validate(params.Command, params.Approved)
	if err != nil {
		var approvalErr *policy.ApprovalError
		if errors.As(err, &approvalErr) {
			return nil, e.deny(req, CodeApprovalRequired, err.Error(), match.Risk.String())
		}
		return nil, e.deny(req, CodeValidation, err.Error(), match.Risk.String())
	}

	childEnv := sandbox.ChildEnv(e.environ())
	spawn, err := e.sandbox.Wrap([]string{"/bin/sh", "-c", params.Command}, childEnv)
	if err != nil {
		return nil, &ExecError{Stage: "preparing sandbox", Err: err}
	}

	// The slot is committed only once execution is certain to start.
	e.limiter.Commit(1)

	e.logger.Info("executing shell command",
		"request", req.ID,
		"risk", match.Risk.String(),
		"tier", e.sandbox.Tier().String(),
	)

	shellResult, runErr := runSpawn(ctx, spawn, e.sandbox.Workspace(), e.timeout)

	result := &Result{
		RequestID: req.ID,
		Tool:      req.Tool,
		Risk:      match.Risk.String(),
		Rule:      match.Rule,
		Shell:     shellResult,
	}

	var timeoutErr *TimeoutError
	switch {
	case runErr == nil:
		e.record(req, audit.Entry{
			Decision: audit.DecisionExecuted,
			Risk:     match.Risk.String(),
			Rule:     match.Rule,
			Duration: shellResult.Duration,
		})
		return result, nil
	case errors.As(runErr, &timeoutErr):
		e.record(req, audit.Entry{
			Decision: audit.DecisionTimeout,
			Risk:     match.Risk.String(),
			Rule:     match.Rule,
			Reason:   runErr.Error(),
			Duration: shellResult.Duration,
		})
		return result, runErr
	default:
		e.record(req, audit.Entry{
			Decision: audit.DecisionError,
			Risk:     match.Risk.String(),
			Rule:     match.Rule,
			Reason:   runErr.Error(),
		})
		return nil, runErr
	}
}

func (e *Executor) executeHTTP(ctx context.Context, req Request) (*Result, error) {
	if err := e.engine.Gate(policy.KindHTTP); err != nil {
		return nil, e.deny(req, CodePolicy, err.Error(), "")
	}
	if e.limiter.Limited() {
		reason := fmt.Sprintf("hourly action limit reached, %d remaining", e.limiter.Remaining())
		return nil, e.deny(req, CodeRateLimited, reason, "")
	}

	params, err := decodeHTTPParams(req.Params)
	if err != nil {
		return nil, e.deny(req, CodeValidation, err.Error(), "")
	}

	if e.guard == nil {
		return nil, e.deny(req, CodeNetworkPolicy, "network access is disabled", "")
	}
	if err := e.guard.Validate(params.URL); err != nil {
		return nil, e.deny(req, CodeNetworkPolicy, err.Error(), "")
	}

	e.limiter.Commit(1)

	e.logger.Info("issuing http request",
		"request", req.ID,
		"method", params.Method,
		"url", params.URL,
	)

	var body []byte
	if params.Body != "" {
		body = []byte(params.Body)
	}
	resp, err := e.guard.Do(ctx, netguard.Request{
		URL:     params.URL,
		Method:  params.Method,
		Headers: params.Headers,
		Body:    body,
	})
	if err != nil {
		e.record(req, audit.Entry{Decision: audit.DecisionError, Reason: err.Error()})
		return nil, &ExecError{Stage: "issuing http request", Err: err}
	}

	e.record(req, audit.Entry{Decision: audit.DecisionExecuted, Duration: resp.Duration})
	return &Result{
		RequestID: req.ID,
		Tool:      req.Tool,
		HTTP: &HTTPResult{
			Status:        resp.Status,
			Headers:       resp.Headers,
			Body:          resp.Body,
			BodyTruncated: resp.BodyTruncated,
			Duration:      resp.Duration,
		},
	}, nil
}

// deny records the refusal and returns it as the pipeline error.
func (e *Executor) deny(req Request, code DenialCode, reason, risk string) error {
	e.logger.Warn("request denied",
		"request", req.ID,
		"tool", req.Tool,
		"code", string(code),
		"reason", reason,
	)
	e.record(req, audit.Entry{
		Decision: audit.DecisionDenied,
		Risk:     risk,
		Reason:   fmt.Sprintf("%s: %s", code, reason),
	})
	return &Denial{Code: code, Reason: reason}
}

// record writes an audit entry, logging rather than failing the
// request when the log itself is broken.
func (e *Executor) record(req Request, entry audit.Entry) {
	entry.Tool = req.Tool
	entry.Time = req.Time
	if err := e.auditLog.Record(entry); err != nil {
		e.logger.Error("audit record failed", "request", req.ID, "error", err)
	}
}
