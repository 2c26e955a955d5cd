// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package sandbox

import "fmt"

// landlockABIVersion reports no Landlock support off Linux.
func landlockABIVersion() int { return 0 }

// ApplyLandlock is unavailable off Linux; the Selector never picks the
// Landlock tier here, so this is only reachable by calling it directly.
func ApplyLandlock(workspace string) error {
	return fmt.Errorf("landlock is only available on linux")
}

// ExecLandlocked is unavailable off Linux.
func ExecLandlocked(workspace string, argv []string, env []string) error {
	return fmt.Errorf("landlock is only available on linux")
}
