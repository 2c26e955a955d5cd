// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

// Tier is one level of the ordered, probed set of OS isolation
// mechanisms.
type Tier int

const (
	// TierNone runs the command directly with no OS-level isolation.
	TierNone Tier = iota

	// TierBwrap wraps the command with the bubblewrap helper.
	TierBwrap

	// TierLandlock applies a kernel Landlock ruleset via re-exec.
	TierLandlock
)

// String returns the tier name used in logs and the probe command.
func (t Tier) String() string {
	switch t {
	case TierLandlock:
		return "landlock"
	case TierBwrap:
		return "bwrap"
	case TierNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseTier maps a tier name back to its value. Used by the CLI
// override flag.
func ParseTier(s string) (Tier, bool) {
	switch s {
	case "landlock":
		return TierLandlock, true
	case "bwrap":
		return TierBwrap, true
	case "none":
		return TierNone, true
	default:
		return TierNone, false
	}
}
