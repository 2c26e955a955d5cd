// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import (
	"slices"
	"strings"
	"testing"
)

func TestChildEnvAllowlist(t *testing.T) {
	parent := []string{
		"PATH=/usr/bin:/bin",
		"HOME=/home/agent",
		"TERM=xterm-256color",
		"LANG=en_US.UTF-8",
		"USER=agent",
		"SHELL=/bin/bash",
		"AWS_SECRET_ACCESS_KEY=supersecret",
		"OPENAI_API_KEY=sk-xxxx",
		"GITHUB_TOKEN=ghp_xxxx",
		"DATABASE_URL=postgres://u:p@host/db",
		"SSH_AUTH_SOCK=/run/ssh.sock",
	}

	child := ChildEnv(parent)

	want := []string{
		"PATH=/usr/bin:/bin",
		"HOME=/home/agent",
		"TERM=xterm-256color",
		"LANG=en_US.UTF-8",
		"USER=agent",
		"SHELL=/bin/bash",
	}
	if !slices.Equal(child, want) {
		t.Errorf("ChildEnv = %v, want %v", child, want)
	}

	for _, entry := range child {
		name, _, _ := strings.Cut(entry, "=")
		for _, leak := range []string{"KEY", "SECRET", "TOKEN"} {
			if strings.Contains(name, leak) {
				t.Errorf("child environment leaked %s", entry)
			}
		}
	}
}

func TestChildEnvEmptyParent(t *testing.T) {
	if got := ChildEnv(nil); len(got) != 0 {
		t.Errorf("ChildEnv(nil) = %v, want empty", got)
	}
}

func TestChildEnvIgnoresPrefixTricks(t *testing.T) {
	// Names that merely start with or contain an allowlisted name must
	// not pass.
	parent := []string{
		"PATH_EXTRA=/evil",
		"XPATH=/evil",
		"HOME2=/evil",
		"MY_SHELL=/evil",
	}
	if got := ChildEnv(parent); len(got) != 0 {
		t.Errorf("ChildEnv = %v, want empty", got)
	}
}

func TestChildEnvLastOccurrenceWins(t *testing.T) {
	parent := []string{"PATH=/first", "PATH=/second"}
	got := ChildEnv(parent)
	if len(got) != 1 || got[0] != "PATH=/second" {
		t.Errorf("ChildEnv = %v, want [PATH=/second]", got)
	}
}

func TestChildEnvMalformedEntries(t *testing.T) {
	parent := []string{"NOEQUALS", "PATH=/usr/bin"}
	got := ChildEnv(parent)
	if len(got) != 1 || got[0] != "PATH=/usr/bin" {
		t.Errorf("ChildEnv = %v, want [PATH=/usr/bin]", got)
	}
}
