// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of OpenClaw binaries.
package version

// version is set at build time via
// -ldflags "-X github.com/yihua-bot/openclaw/lib/version.version=v...".
var version = "dev"

// Info returns the version string for this build.
func Info() string { return version }
