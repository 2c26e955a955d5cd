// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package sandbox

import "strings"

// passEnvironment is the fixed set of variable names eligible for
// passthrough into a child process. Nothing outside this list is ever
// copied, regardless of value or prefix — in particular no name
// associated with secrets or credentials is present.
var passEnvironment = []string{
	"PATH",
	"HOME",
	"TERM",
	"LANG",
	"LC_ALL",
	"LC_CTYPE",
	"USER",
	"SHELL",
	"TMPDIR",
}

// ChildEnv builds a minimal child-process environment from the parent
// environment (as returned by os.Environ). It starts empty and copies
// only allowlisted names, verbatim value. Pure function; the parent
// environment is never mutated.
func ChildEnv(parent []string) []string {
	values := make(map[string]string, len(passEnvironment))
	for _, entry := range parent {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		for _, allowed := range passEnvironment {
			if name == allowed {
				// Last occurrence wins, matching OS lookup semantics.
				values[name] = value
				break
			}
		}
	}

	child := make([]string, 0, len(values))
	for _, name := range passEnvironment {
		if value, ok := values[name]; ok {
			child = append(child, name+"="+value)
		}
	}
	return child
}
