// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package executor runs tool requests through the security pipeline:
// autonomy gate, rate limit, risk validation, then sandboxed shell
// execution or guarded HTTP. Every decision is written to the audit
// log, denials included.
//
// The pipeline order is fixed. Cheap policy checks run before any
// budget is consumed, so a denied request never counts against the
// hourly action ceiling.
package executor
