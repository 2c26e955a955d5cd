// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package policy implements the autonomy gate and command risk
// classification for the OpenClaw security core.
//
// Every action passes the autonomy gate first: read_only autonomy
// denies all outward-effecting actions unconditionally, before any
// other check runs. Shell commands are then classified against a rule
// table into Low, Medium, or High risk; Medium and High require an
// affirmed approval flag on the request. Where that flag comes from
// (human confirmation versus agent self-certification) is the caller's
// concern — this package only enforces its presence.
//
// The built-in rule table covers destructive filesystem operations,
// privilege escalation, raw device writes, remote-pipe-to-shell
// patterns, and system power state changes. Deployments extend it with
// a JSONC rules file (see LoadRules).
package policy
