// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import "fmt"

// AutonomyLevel is the configured trust tier for the agent. It is set
// once from configuration and immutable for the process lifetime.
type AutonomyLevel int

const (
	// ReadOnly denies every outward-effecting action unconditionally.
	ReadOnly AutonomyLevel = iota

	// Supervised permits actions subject to per-action approval; the
	// approval flag is produced by human confirmation upstream.
	Supervised

	// Autonomous permits actions subject to per-action approval; the
	// approval flag is produced by the agent itself.
	Autonomous
)

// String returns the configuration spelling of the level.
func (l AutonomyLevel) String() string {
	switch l {
	case ReadOnly:
		return "read_only"
	case Supervised:
		return "supervised"
	case Autonomous:
		return "autonomous"
	default:
		return fmt.Sprintf("autonomy(%d)", int(l))
	}
}

// ParseAutonomy converts a configuration string to an AutonomyLevel.
func ParseAutonomy(s string) (AutonomyLevel, error) {
	switch s {
	case "read_only":
		return ReadOnly, nil
	case "supervised":
		return Supervised, nil
	case "autonomous":
		return Autonomous, nil
	default:
		return ReadOnly, fmt.Errorf("unknown autonomy level %q", s)
	}
}

// ActionKind identifies the class of a requested action.
type ActionKind string

const (
	// KindShell is a shell command execution.
	KindShell ActionKind = "shell"

	// KindHTTP is an outbound HTTP request.
	KindHTTP ActionKind = "http"
)

// GateError reports an action blocked by the autonomy level.
type GateError struct {
	Level AutonomyLevel
	Kind  ActionKind
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s action blocked by %s autonomy", e.Kind, e.Level)
}

// Engine is the autonomy gate: the single entry point every action
// passes before any other check runs. It is a pure decision with no
// side effects.
type Engine struct {
	level AutonomyLevel
}

// NewEngine creates the gate for the process-wide autonomy level.
func NewEngine(level AutonomyLevel) *Engine {
	return &Engine{level: level}
}

// Level returns the configured autonomy level.
func (e *Engine) Level() AutonomyLevel { return e.level }

// Gate permits or denies an action kind. Both shell commands and
// outbound HTTP requests have effects beyond the agent process, so
// read_only denies both; there is no bypass path. Supervised and
// autonomous both forward to the action-specific validator — they
// differ only in how the approval flag was produced upstream.
func (e *Engine) Gate(kind ActionKind) error {
	if e.level == ReadOnly {
		return &GateError{Level: e.level, Kind: kind}
	}
	return nil
}
