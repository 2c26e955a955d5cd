// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

// openclaw runs agent tool requests through the security pipeline:
// autonomy gating, risk classification, rate limiting and OS
// sandboxing for shell commands, and the network guard for outbound
// HTTP.
//
// Usage:
//
//	openclaw run [flags] -- <command> [args...]
//	openclaw fetch [flags] <url>
//	openclaw check-url <url>
//	openclaw probe
//	openclaw version
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/yihua-bot/openclaw/lib/process"
	"github.com/yihua-bot/openclaw/lib/version"
	"github.com/yihua-bot/openclaw/sandbox"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	logLevel := slog.LevelInfo
	if os.Getenv("OPENCLAW_DEBUG") != "" {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "run":
		err = runCmd(args, logger)
	case "fetch":
		err = fetchCmd(args, logger)
	case "check-url":
		err = checkURLCmd(args, logger)
	case "probe":
		err = probeCmd(args, logger)
	case sandbox.LandlockExecCommand:
		// Internal re-exec target for the Landlock tier, not part of
		// the public surface.
		err = landlockExecCmd(args)
	case "version", "--version", "-v":
		fmt.Printf("openclaw %s\n", version.Info())
		return
	case "help", "--help", "-h":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		if code, ok := isExitError(err); ok {
			os.Exit(code)
		}
		process.Fatal(err)
	}
}

func printUsage() {
	fmt.Print(`openclaw - Run agent tool requests through the security pipeline

USAGE
    openclaw <command> [flags] [args...]

COMMANDS
    run        Run a shell command through policy checks and the sandbox
    fetch      Issue a guarded HTTP request
    check-url  Check a URL against the network policy without fetching
    probe      Report available sandbox isolation tiers
    version    Show version

EXAMPLES
    # Run a command in the strongest available sandbox
    openclaw run -- ls -la

    # Approve a risky command non-interactively
    openclaw run --approve -- rm -rf ./build

    # Fetch from an allowlisted domain
    openclaw fetch https://api.example.com/v1/status

ENVIRONMENT
    OPENCLAW_CONFIG  Path to the YAML configuration file
    OPENCLAW_DEBUG   Enable debug logging
`)
}
