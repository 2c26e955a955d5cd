// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// bwrapSystemPaths are bind-mounted read-only into the bwrap sandbox
// when they exist on the host.
var bwrapSystemPaths = []string{
	"/usr",
	"/bin",
	"/sbin",
	"/lib",
	"/lib64",
	"/etc",
	"/opt",
}

// BuildBwrapArgs constructs the bubblewrap argument list for running
// argv with write access scoped to the workspace. The child
// environment is cleared and rebuilt from env via --setenv, so the
// sandboxed process sees exactly the sanitized set.
func BuildBwrapArgs(workspace string, env []string, argv []string) ([]string, error) {
	if workspace == "" {
		return nil, fmt.Errorf("workspace is required")
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("command is required")
	}

	args := []string{
		"--proc", "/proc",
		"--dev", "/dev",
		"--tmpfs", "/tmp",
		"--unshare-pid",
		"--unshare-ipc",
		"--unshare-uts",
		"--die-with-parent",
		"--new-session",
	}

	for _, path := range bwrapSystemPaths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}
		args = append(args, "--ro-bind", path, path)
	}

	args = append(args,
		"--bind", workspace, workspace,
		"--chdir", workspace,
		"--clearenv",
	)

	// Sort for deterministic argument output.
	setenv := make(map[string]string, len(env))
	names := make([]string, 0, len(env))
	for _, entry := range env {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, seen := setenv[name]; !seen {
			names = append(names, name)
		}
		setenv[name] = value
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, "--setenv", name, setenv[name])
	}

	args = append(args, "--")
	args = append(args, argv...)
	return args, nil
}
