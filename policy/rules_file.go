// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/tidwall/jsonc"
)

// rulesFile is the on-disk shape of a risk rules file. Rules files are
// authored as JSONC (JSON extended with comments and trailing commas)
// so operators can annotate why a pattern is classified the way it is.
type rulesFile struct {
	Rules []ruleEntry `json:"rules"`
}

type ruleEntry struct {
	Name    string `json:"name"`
	Match   string `json:"match"`
	Pattern string `json:"pattern"`
	Risk    string `json:"risk"`
}

// LoadRules reads additional risk rules from a JSONC file. Malformed
// files fail loudly rather than silently weakening classification.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules file %s: %w", path, err)
	}
	return ParseRules(data)
}

// ParseRules strips JSONC comments and trailing commas from data and
// converts the entries to compiled rules.
func ParseRules(data []byte) ([]Rule, error) {
	var file rulesFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &file); err != nil {
		return nil, fmt.Errorf("parsing rules file: %w", err)
	}

	rules := make([]Rule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		if entry.Name == "" {
			return nil, fmt.Errorf("rule %d: name is required", i)
		}
		if entry.Pattern == "" {
			return nil, fmt.Errorf("rule %q: pattern is required", entry.Name)
		}

		var kind MatchKind
		switch MatchKind(entry.Match) {
		case MatchPrefix, MatchSubstring, MatchRegex:
			kind = MatchKind(entry.Match)
		default:
			return nil, fmt.Errorf("rule %q: match must be prefix, substring, or regex (got %q)", entry.Name, entry.Match)
		}

		risk, err := parseRisk(entry.Risk)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", entry.Name, err)
		}

		rule := Rule{Name: entry.Name, Match: kind, Pattern: entry.Pattern, Risk: risk}
		if kind == MatchRegex {
			compiled, err := regexp.Compile(entry.Pattern)
			if err != nil {
				return nil, fmt.Errorf("rule %q: invalid regex: %w", entry.Name, err)
			}
			rule.compiled = compiled
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
