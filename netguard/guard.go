// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package netguard

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// PolicyError reports an outbound target rejected by validation.
type PolicyError struct {
	// Rule names the failed check: scheme, userinfo, ipv6-literal,
	// the matched private-range name, or allowlist.
	Rule string

	// Reason is the human-readable denial detail.
	Reason string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("network policy: %s (%s)", e.Reason, e.Rule)
}

// Guard validates outbound request targets against the configured
// domain allowlist and the fixed private-host ruleset. Stateless given
// its configuration; safe for concurrent use.
type Guard struct {
	allowed []string
	client  *http.Client
	logger  *slog.Logger
}

// Config holds configuration for creating a Guard.
type Config struct {
	// AllowedDomains are domain-suffix entries. Empty means every
	// request is denied.
	AllowedDomains []string

	// Timeout bounds a single request, connect through body read.
	// Defaults to 30 seconds.
	Timeout time.Duration

	// Logger for request logging.
	Logger *slog.Logger
}

// New creates a Guard.
func New(config Config) *Guard {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		allowed: config.AllowedDomains,
		logger:  logger,
		client: &http.Client{
			Timeout: timeout,
			// Redirect responses are data, never auto-chased: a
			// redirect must not smuggle a request past validation.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// Validate applies the ordered target checks to rawURL. A nil return
// means the target is allowed. Deterministic: identical configuration
// and input always produce the same decision.
func (g *Guard) Validate(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return &PolicyError{Rule: "parse", Reason: fmt.Sprintf("invalid URL: %v", err)}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		return &PolicyError{Rule: "scheme", Reason: fmt.Sprintf("scheme %q is not allowed", parsed.Scheme)}
	}

	if parsed.User != nil {
		return &PolicyError{Rule: "userinfo", Reason: "userinfo in URL authority is not allowed"}
	}

	// url.Hostname() strips brackets from IPv6 literals; detect them
	// on the raw authority. Literal IPv6 targets are denied outright
	// rather than range-classified.
	if strings.HasPrefix(parsed.Host, "[") {
		return &PolicyError{Rule: "ipv6-literal", Reason: "IPv6 address literals are not allowed"}
	}

	host := parsed.Hostname()
	if host == "" {
		return &PolicyError{Rule: "parse", Reason: "URL has no host"}
	}

	if rule, matched := classifyPrivateHost(host); matched {
		return &PolicyError{Rule: rule, Reason: fmt.Sprintf("host %q is in a blocked address range", host)}
	}

	if !allowedBySuffix(host, g.allowed) {
		if len(g.allowed) == 0 {
			return &PolicyError{Rule: "allowlist", Reason: "no domains are allowed (network tool disabled)"}
		}
		return &PolicyError{Rule: "allowlist", Reason: fmt.Sprintf("host %q does not match any allowed domain", host)}
	}

	return nil
}
