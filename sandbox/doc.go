// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package sandbox probes the OS isolation tiers available on this host
// and wraps process spawns with the strongest one.
//
// Tiers, strongest first:
//
//  1. Landlock — the kernel-native filesystem restriction primitive
//     (Linux 5.13+). The spawn is re-executed through a helper that
//     applies a ruleset scoping writes to the workspace and the temp
//     directory, with read/execute on the standard system paths, then
//     execs the target command.
//  2. bubblewrap — a user-space sandboxing helper, used when the bwrap
//     binary is installed and unprivileged user namespaces work.
//  3. none — no OS-level isolation; policy and validation checks are
//     the only defense. Selecting this tier is logged, not fatal.
//
// Selection happens once (lazily on first use) and is cached for the
// process lifetime; the capability set is read-only after that and safe
// for unsynchronized concurrent reads.
//
// The package also owns child-environment sanitization: a child process
// environment is always rebuilt from a fixed allowlist, never inherited
// from the parent.
package sandbox
