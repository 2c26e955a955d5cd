// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/yihua-bot/openclaw/sandbox"
)

// landlockExecCmd applies the Landlock ruleset and replaces this
// process with the target command. Reached only through sandbox.Wrap
// re-exec; it never returns on success.
func landlockExecCmd(args []string) error {
	fs := pflag.NewFlagSet(sandbox.LandlockExecCommand, pflag.ContinueOnError)
	workspace := fs.String("workspace", "", "Writable workspace directory")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *workspace == "" {
		return fmt.Errorf("--workspace is required")
	}
	command := fs.Args()
	if len(command) == 0 {
		return fmt.Errorf("command is required after --")
	}

	return sandbox.ExecLandlocked(*workspace, command, os.Environ())
}
