// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Capabilities describes what sandbox features are available on this
// host.
type Capabilities struct {
	// LandlockABI is the kernel Landlock ABI version, 0 when the
	// kernel does not support Landlock.
	LandlockABI int

	// BwrapAvailable is true if bubblewrap is installed.
	BwrapAvailable bool

	// BwrapPath is the path to bwrap if available.
	BwrapPath string

	// UserNamespacesEnabled is true if unprivileged user namespaces
	// work, which bwrap needs to run without setuid.
	UserNamespacesEnabled bool
}

// DetectCapabilities checks what sandbox features are available. It is
// called once per process by the Selector; results are not cached here.
func DetectCapabilities() *Capabilities {
	caps := &Capabilities{
		LandlockABI: landlockABIVersion(),
	}

	if path, err := BwrapPath(); err == nil {
		caps.BwrapAvailable = true
		caps.BwrapPath = path
		caps.UserNamespacesEnabled = checkUserNamespaces(path)
	}

	return caps
}

// CanLandlock reports whether the Landlock tier is usable.
func (c *Capabilities) CanLandlock() bool {
	return c.LandlockABI >= 1
}

// CanBwrap reports whether the bwrap tier is usable.
func (c *Capabilities) CanBwrap() bool {
	return c.BwrapAvailable && c.UserNamespacesEnabled
}

// BwrapPath returns the path to the bwrap executable.
func BwrapPath() (string, error) {
	// Check common locations first so the result does not depend on
	// the caller's PATH.
	for _, path := range []string{"/usr/bin/bwrap", "/usr/local/bin/bwrap", "/bin/bwrap"} {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	if path, err := exec.LookPath("bwrap"); err == nil {
		return path, nil
	}
	return "", fmt.Errorf("bwrap not found")
}

// checkUserNamespaces tests if unprivileged user namespaces work.
func checkUserNamespaces(bwrapPath string) bool {
	// First check the sysctl.
	data, err := os.ReadFile("/proc/sys/kernel/unprivileged_userns_clone")
	if err == nil {
		if strings.TrimSpace(string(data)) == "0" {
			return false
		}
	}
	// File not existing usually means userns is allowed.

	// Try to actually create a user namespace with bwrap.
	cmd := exec.Command(bwrapPath,
		"--unshare-user",
		"--ro-bind", "/", "/",
		"--",
		"true",
	)
	return cmd.Run() == nil
}
