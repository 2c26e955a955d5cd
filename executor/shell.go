// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package executor

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/yihua-bot/openclaw/lib/netutil"
	"github.com/yihua-bot/openclaw/sandbox"
)

func defaultEnviron() []string { return os.Environ() }

// runSpawn executes a sandbox-wrapped command with a hard deadline.
// On timeout the whole process group is killed and the output
// captured so far is returned with TimedOut set.
func runSpawn(ctx context.Context, spawn *sandbox.Spawn, workdir string, timeout time.Duration) (*ShellResult, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, spawn.Argv[0], spawn.Argv[1:]...)
	cmd.Dir = workdir
	cmd.Env = spawn.Env

	stdout := netutil.NewBoundedBuffer(netutil.MaxCaptureBytes)
	stderr := netutil.NewBoundedBuffer(netutil.MaxCaptureBytes)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	// Run the command in its own process group so that the kill on
	// timeout reaches the shell and everything it spawned, not just
	// the shell itself.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}

	start := time.Now()
	err := cmd.Run()
	result := &ShellResult{
		Stdout:          stdout.Bytes(),
		Stderr:          stderr.Bytes(),
		StdoutTruncated: stdout.Truncated(),
		StderrTruncated: stderr.Truncated(),
		Duration:        time.Since(start),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.ExitCode = -1
		return result, &TimeoutError{Timeout: timeout}
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return nil, &ExecError{Stage: "spawning command", Err: err}
	}
	return result, nil
}
