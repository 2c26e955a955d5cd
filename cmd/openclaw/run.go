// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/yihua-bot/openclaw/executor"
	"github.com/yihua-bot/openclaw/lib/config"
)

// runCmd implements the "run" command.
func runCmd(args []string, logger *slog.Logger) error {
	fs := pflag.NewFlagSet("run", pflag.ExitOnError)
	configPath := fs.String("config", "", "Path to configuration file")
	approve := fs.Bool("approve", false, "Mark the command as human-approved")
	sandboxTier := fs.String("sandbox", "auto", "Force a sandbox tier (auto, landlock, bwrap, none)")
	timeout := fs.Duration("timeout", 0, "Override the command timeout")

	fs.Usage = func() {
		fmt.Print(`openclaw run - Run a shell command through policy checks and the sandbox

USAGE
    openclaw run [flags] -- <command> [args...]

FLAGS
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	command := strings.Join(fs.Args(), " ")
	if command == "" {
		return fmt.Errorf("command is required after --")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	return runCommand(cfg, command, *approve, *sandboxTier, *timeout, logger)
}

func runCommand(cfg *config.Config, command string, approved bool, sandboxTier string, timeout time.Duration, logger *slog.Logger) error {
	exec, auditLog, err := buildExecutor(cfg, sandboxTier, timeout, logger)
	if err != nil {
		return err
	}
	defer auditLog.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	result, err := exec.Execute(ctx, executor.NewRequest(executor.ToolShell, map[string]any{
		"command":  command,
		"approved": approved,
	}))

	var denial *executor.Denial
	if errors.As(err, &denial) && denial.Code == executor.CodeApprovalRequired && !approved {
		ok, promptErr := promptApproval(command, denial.Reason)
		if promptErr != nil {
			return promptErr
		}
		if !ok {
			return fmt.Errorf("command not approved")
		}
		result, err = exec.Execute(ctx, executor.NewRequest(executor.ToolShell, map[string]any{
			"command":  command,
			"approved": true,
		}))
	}

	var timeoutErr *executor.TimeoutError
	if errors.As(err, &timeoutErr) {
		writeOutput(result)
		return fmt.Errorf("%w (partial output above)", timeoutErr)
	}
	if err != nil {
		return err
	}

	writeOutput(result)
	if result.Shell.ExitCode != 0 {
		return &exitError{code: result.Shell.ExitCode}
	}
	return nil
}

func writeOutput(result *executor.Result) {
	if result == nil || result.Shell == nil {
		return
	}
	os.Stdout.Write(result.Shell.Stdout)
	os.Stderr.Write(result.Shell.Stderr)
	if result.Shell.StdoutTruncated || result.Shell.StderrTruncated {
		fmt.Fprintln(os.Stderr, "openclaw: output truncated at capture limit")
	}
}

// promptApproval asks for interactive confirmation of a risky
// command. Without a terminal there is no one to ask, so the denial
// stands.
func promptApproval(command, reason string) (bool, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, fmt.Errorf("%s (use --approve to confirm non-interactively)", reason)
	}
	fmt.Fprintf(os.Stderr, "%s\n  %s\nRun anyway? [y/N] ", reason, command)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false, fmt.Errorf("reading approval: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
