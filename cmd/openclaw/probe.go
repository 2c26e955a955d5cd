// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"

	"github.com/yihua-bot/openclaw/sandbox"
)

// probeCmd implements the "probe" command.
func probeCmd(args []string, logger *slog.Logger) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}

	caps := sandbox.DetectCapabilities()
	fmt.Printf("landlock:        ")
	if caps.CanLandlock() {
		fmt.Printf("available (ABI v%d)\n", caps.LandlockABI)
	} else {
		fmt.Println("unavailable")
	}
	fmt.Printf("bwrap:           ")
	if caps.CanBwrap() {
		fmt.Printf("available (%s)\n", caps.BwrapPath)
	} else {
		fmt.Println("unavailable")
	}
	fmt.Printf("user namespaces: %v\n", caps.UserNamespacesEnabled)

	selector := sandbox.NewSelector("/", logger)
	fmt.Printf("selected tier:   %s\n", selector.Tier())
	return nil
}
