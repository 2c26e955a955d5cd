// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package sandbox

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

// landlockReadOnlyPaths are granted read and execute access under a
// Landlock ruleset: the standard binary, library, and configuration
// directories a shell command needs to run at all.
var landlockReadOnlyPaths = []string{
	"/usr",
	"/bin",
	"/sbin",
	"/lib",
	"/lib64",
	"/etc",
	"/opt",
}

// accessReadExecute is the Landlock access set for system paths.
const accessReadExecute = unix.LANDLOCK_ACCESS_FS_EXECUTE |
	unix.LANDLOCK_ACCESS_FS_READ_FILE |
	unix.LANDLOCK_ACCESS_FS_READ_DIR

// accessReadWrite is the full ABI v1 filesystem access set, granted on
// the workspace and the temp directory.
const accessReadWrite = accessReadExecute |
	unix.LANDLOCK_ACCESS_FS_WRITE_FILE |
	unix.LANDLOCK_ACCESS_FS_REMOVE_FILE |
	unix.LANDLOCK_ACCESS_FS_REMOVE_DIR |
	unix.LANDLOCK_ACCESS_FS_MAKE_CHAR |
	unix.LANDLOCK_ACCESS_FS_MAKE_DIR |
	unix.LANDLOCK_ACCESS_FS_MAKE_REG |
	unix.LANDLOCK_ACCESS_FS_MAKE_SOCK |
	unix.LANDLOCK_ACCESS_FS_MAKE_FIFO |
	unix.LANDLOCK_ACCESS_FS_MAKE_BLOCK |
	unix.LANDLOCK_ACCESS_FS_MAKE_SYM

// landlockABIVersion returns the kernel's Landlock ABI version, or 0
// when the kernel does not support Landlock. The version query uses
// the raw syscall because it requires a null attr with zero size.
func landlockABIVersion() int {
	version, _, errno := unix.Syscall(unix.SYS_LANDLOCK_CREATE_RULESET,
		0, 0, uintptr(unix.LANDLOCK_CREATE_RULESET_VERSION))
	if errno != 0 {
		return 0
	}
	return int(version)
}

// ApplyLandlock restricts the calling process (and everything it will
// exec) to read/execute on the system paths and read/write under the
// workspace and temp directories. Irreversible for the process
// lifetime; call only from a helper that is about to exec the target
// command.
func ApplyLandlock(workspace string) error {
	rulesetFd, err := unix.LandlockCreateRuleset(&unix.LandlockRulesetAttr{
		Access_fs: accessReadWrite,
	}, 0)
	if err != nil {
		return fmt.Errorf("landlock ruleset: %w", err)
	}
	defer unix.Close(rulesetFd)

	for _, path := range landlockReadOnlyPaths {
		if err := addLandlockRule(rulesetFd, path, accessReadExecute, true); err != nil {
			return err
		}
	}

	writable := []string{workspace, os.TempDir(), "/tmp"}
	for _, path := range writable {
		if err := addLandlockRule(rulesetFd, path, accessReadWrite, true); err != nil {
			return err
		}
	}

	// Landlock requires no_new_privs before restricting.
	if err := unix.Prctl(unix.PR_SET_NO_NEW_PRIVS, 1, 0, 0, 0); err != nil {
		return fmt.Errorf("prctl no_new_privs: %w", err)
	}
	if err := unix.LandlockRestrictSelf(rulesetFd, 0); err != nil {
		return fmt.Errorf("landlock restrict: %w", err)
	}
	return nil
}

// addLandlockRule grants access beneath path. Optional paths that do
// not exist are skipped.
func addLandlockRule(rulesetFd int, path string, access uint64, optional bool) error {
	pathFd, err := unix.Open(path, unix.O_PATH|unix.O_CLOEXEC, 0)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("landlock open %s: %w", path, err)
	}
	defer unix.Close(pathFd)

	err = unix.LandlockAddPathBeneathRule(rulesetFd, &unix.LandlockPathBeneathAttr{
		Allowed_access: access,
		Parent_fd:      int32(pathFd),
	}, 0)
	if err != nil {
		return fmt.Errorf("landlock rule %s: %w", path, err)
	}
	return nil
}

// ExecLandlocked applies the workspace ruleset to the current process
// and replaces it with the target command. Only the landlock-exec
// helper subcommand calls this; it does not return on success.
func ExecLandlocked(workspace string, argv []string, env []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("empty command")
	}
	binary, err := exec.LookPath(argv[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", argv[0], err)
	}
	if err := ApplyLandlock(workspace); err != nil {
		return err
	}
	return unix.Exec(binary, argv, env)
}
