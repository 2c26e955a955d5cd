// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package netguard validates outbound request targets and issues the
// requests that pass.
//
// Validation is fail-closed and ordered; the first failing check wins:
// scheme, userinfo, bracketed IPv6 literals, the fixed private-host
// ruleset (loopback, RFC 1918, link-local and the cloud metadata
// address, shared address space, documentation and benchmarking
// ranges, multicast/reserved/broadcast, IPv6 loopback/link-local/
// unique-local, v4-mapped equivalents, and the .localhost/.local name
// suffixes), then a label-boundary suffix match against the configured
// domain allowlist. An empty allowlist denies every request.
//
// Alternate IP notations (octal, hex, bare decimal) need no dedicated
// parser: the allowlist is the only path to an allow, and such strings
// cannot match a domain-suffix entry.
//
// Requests never follow redirects; a 3xx response is returned to the
// caller as data so a redirect cannot smuggle a request past
// validation after the fact. DNS rebinding between validation and
// connect is an accepted residual risk, delegated to network-layer
// egress controls.
package netguard
