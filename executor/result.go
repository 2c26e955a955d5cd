// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"fmt"
	"time"
)

// DenialCode names the pipeline stage that refused a request.
type DenialCode string

const (
	CodePolicy           DenialCode = "policy"
	CodeApprovalRequired DenialCode = "approval_required"
	CodeRateLimited      DenialCode = "rate_limited"
	CodeValidation       DenialCode = "validation"
	CodeNetworkPolicy    DenialCode = "network_policy"
)

// Denial is a refusal to execute. It is an error so callers can
// propagate it, and carries the stage and reason so the agent loop
// can report to the model why the tool call was rejected.
type Denial struct {
	Code   DenialCode
	Reason string
}

func (d *Denial) Error() string {
	return fmt.Sprintf("request denied (%s): %s", d.Code, d.Reason)
}

// TimeoutError reports that a shell command exceeded its deadline and
// was killed. The partial result captured before the kill accompanies
// the error.
type TimeoutError struct {
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command killed after %s timeout", e.Timeout)
}

// ExecError reports that a permitted request failed to run at all:
// spawn failure, transport failure, or an internal pipeline fault.
type ExecError struct {
	Stage string
	Err   error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *ExecError) Unwrap() error { return e.Err }

// ShellResult is the captured outcome of a shell command.
type ShellResult struct {
	ExitCode        int
	Stdout          []byte
	Stderr          []byte
	StdoutTruncated bool
	StderrTruncated bool
	TimedOut        bool
	Duration        time.Duration
}

// HTTPResult is the outcome of a guarded HTTP request. Headers are
// already redacted.
type HTTPResult struct {
	Status        int
	Headers       map[string]string
	Body          []byte
	BodyTruncated bool
	Duration      time.Duration
}

// Result is the outcome of one request. Exactly one of Shell and HTTP
// is set, matching the request tool. Risk and Rule carry the
// classification for shell commands.
type Result struct {
	RequestID string
	Tool      string
	Risk      string
	Rule      string
	Shell     *ShellResult
	HTTP      *HTTPResult
}
