// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"fmt"
	"regexp"
	"strings"
)

// RiskLevel classifies a command's potential for harm. It is computed
// per request and never persisted.
type RiskLevel int

const (
	// RiskLow needs no approval.
	RiskLow RiskLevel = iota

	// RiskMedium requires the request's approved flag.
	RiskMedium

	// RiskHigh requires the request's approved flag.
	RiskHigh
)

// String returns the lowercase name of the level.
func (r RiskLevel) String() string {
	switch r {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	default:
		return "unknown"
	}
}

// MatchKind selects how a rule pattern is applied to a command.
type MatchKind string

const (
	// MatchPrefix matches when the trimmed command starts with the
	// pattern.
	MatchPrefix MatchKind = "prefix"

	// MatchSubstring matches when the command contains the pattern.
	MatchSubstring MatchKind = "substring"

	// MatchRegex matches when the compiled pattern matches anywhere
	// in the command.
	MatchRegex MatchKind = "regex"
)

// Rule is one entry in the risk classification table.
type Rule struct {
	// Name identifies the rule in deny reasons and audit records.
	Name string

	// Match selects the pattern semantics.
	Match MatchKind

	// Pattern is the prefix, substring, or regular expression.
	Pattern string

	// Risk is the tier assigned when the rule matches.
	Risk RiskLevel

	// compiled holds the regexp for MatchRegex rules.
	compiled *regexp.Regexp
}

// DefaultRules returns the built-in risk rule table. The table is
// deliberately conservative: a rule match escalates, never downgrades,
// and an unmatched command defaults to low risk.
func DefaultRules() []Rule {
	rules := []Rule{
		// Destructive filesystem operations.
		{Name: "recursive-force-remove", Match: MatchSubstring, Pattern: "rm -rf", Risk: RiskHigh},
		{Name: "recursive-force-remove-alt", Match: MatchSubstring, Pattern: "rm -fr", Risk: RiskHigh},
		{Name: "remove", Match: MatchPrefix, Pattern: "rm ", Risk: RiskMedium},
		{Name: "filesystem-format", Match: MatchSubstring, Pattern: "mkfs", Risk: RiskHigh},
		{Name: "raw-disk-write", Match: MatchRegex, Pattern: `\bdd\b.*\bof=/dev/`, Risk: RiskHigh},
		{Name: "device-redirect", Match: MatchRegex, Pattern: `>\s*/dev/(sd|nvme|vd|hd)`, Risk: RiskHigh},

		// Privilege escalation.
		{Name: "sudo", Match: MatchPrefix, Pattern: "sudo ", Risk: RiskHigh},
		{Name: "doas", Match: MatchPrefix, Pattern: "doas ", Risk: RiskHigh},
		{Name: "su-shell", Match: MatchRegex, Pattern: `^su\b`, Risk: RiskHigh},

		// Remote code piped into a shell.
		{Name: "pipe-to-shell", Match: MatchRegex, Pattern: `(curl|wget)[^|;]*\|\s*(ba|z|da)?sh\b`, Risk: RiskHigh},

		// System power state.
		{Name: "shutdown", Match: MatchPrefix, Pattern: "shutdown", Risk: RiskHigh},
		{Name: "reboot", Match: MatchPrefix, Pattern: "reboot", Risk: RiskHigh},
		{Name: "halt", Match: MatchPrefix, Pattern: "halt", Risk: RiskHigh},
		{Name: "poweroff", Match: MatchPrefix, Pattern: "poweroff", Risk: RiskHigh},

		// Permission-mask blowouts and broad ownership changes.
		{Name: "world-writable", Match: MatchRegex, Pattern: `chmod\s+(-R\s+)?0?777\b`, Risk: RiskMedium},
		{Name: "recursive-chown", Match: MatchPrefix, Pattern: "chown -R", Risk: RiskMedium},

		// Process-wide kills.
		{Name: "killall", Match: MatchPrefix, Pattern: "killall", Risk: RiskMedium},
		{Name: "pkill", Match: MatchPrefix, Pattern: "pkill", Risk: RiskMedium},

		// History rewrites pushed to shared remotes.
		{Name: "force-push", Match: MatchSubstring, Pattern: "push --force", Risk: RiskMedium},
		{Name: "force-push-short", Match: MatchSubstring, Pattern: "push -f", Risk: RiskMedium},
	}
	for i := range rules {
		if rules[i].Match == MatchRegex {
			rules[i].compiled = regexp.MustCompile(rules[i].Pattern)
		}
	}
	return rules
}

// Classifier matches commands against a rule table.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a classifier over the built-in table plus any
// extra rules (typically loaded with LoadRules). Extra regex rules must
// arrive pre-compiled; LoadRules guarantees this.
func NewClassifier(extra ...Rule) *Classifier {
	return &Classifier{rules: append(DefaultRules(), extra...)}
}

// Match is the classification outcome for one command.
type Match struct {
	// Risk is the highest tier among matched rules, RiskLow if none
	// matched.
	Risk RiskLevel

	// Rule names the rule that set the tier, empty if none matched.
	Rule string
}

// Classify returns the risk tier for a command string. The command is
// only trimmed, never parsed: rule patterns apply to the raw text that
// will reach the shell.
func (c *Classifier) Classify(command string) Match {
	trimmed := strings.TrimSpace(command)
	result := Match{Risk: RiskLow}
	for _, rule := range c.rules {
		if !rule.matches(trimmed) {
			continue
		}
		if rule.Risk > result.Risk {
			result = Match{Risk: rule.Risk, Rule: rule.Name}
		}
	}
	return result
}

func (r *Rule) matches(command string) bool {
	switch r.Match {
	case MatchPrefix:
		return strings.HasPrefix(command, r.Pattern)
	case MatchSubstring:
		return strings.Contains(command, r.Pattern)
	case MatchRegex:
		return r.compiled != nil && r.compiled.MatchString(command)
	default:
		return false
	}
}

// parseRisk converts a rules-file risk string to a RiskLevel.
func parseRisk(s string) (RiskLevel, error) {
	switch s {
	case "low":
		return RiskLow, nil
	case "medium":
		return RiskMedium, nil
	case "high":
		return RiskHigh, nil
	default:
		return RiskLow, fmt.Errorf("unknown risk level %q", s)
	}
}
