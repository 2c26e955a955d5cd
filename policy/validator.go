// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import "fmt"

// ApprovalError reports a command whose risk tier requires an affirmed
// approval flag that was absent or false.
type ApprovalError struct {
	Risk RiskLevel
	Rule string
}

func (e *ApprovalError) Error() string {
	return fmt.Sprintf("%s-risk command requires approval (rule %s)", e.Risk, e.Rule)
}

// Validator enforces the approval requirement on shell commands.
// Stateless given its classifier; safe for concurrent use.
type Validator struct {
	classifier *Classifier
}

// NewValidator creates a validator over the given classifier.
func NewValidator(classifier *Classifier) *Validator {
	return &Validator{classifier: classifier}
}

// Classify exposes the underlying classification, for callers that
// need the risk tier before deciding how to obtain approval.
func (v *Validator) Classify(command string) Match {
	return v.classifier.Classify(command)
}

// Validate classifies the command and enforces approval: medium and
// high risk require approved == true, low risk never does. The
// computed tier is returned for audit regardless of the outcome.
func (v *Validator) Validate(command string, approved bool) (Match, error) {
	match := v.classifier.Classify(command)
	if match.Risk >= RiskMedium && !approved {
		return match, &ApprovalError{Risk: match.Risk, Rule: match.Rule}
	}
	return match, nil
}
