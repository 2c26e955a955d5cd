// Copyright 2026 The OpenClaw Authors
// SPDX-License-Identifier: Apache-2.0

package netguard

import (
	"net/netip"
	"strings"
)

// privateRange is one entry of the fixed private-host ruleset.
type privateRange struct {
	name   string
	prefix netip.Prefix
}

// privateRanges classifies private, local, reserved, and special-use
// address space. The table is constant, not configurable.
var privateRanges = []privateRange{
	{"loopback", netip.MustParsePrefix("127.0.0.0/8")},
	{"private", netip.MustParsePrefix("10.0.0.0/8")},
	{"private", netip.MustParsePrefix("172.16.0.0/12")},
	{"private", netip.MustParsePrefix("192.168.0.0/16")},
	{"link-local", netip.MustParsePrefix("169.254.0.0/16")},
	{"shared-address-space", netip.MustParsePrefix("100.64.0.0/10")},
	{"special-use", netip.MustParsePrefix("192.0.0.0/24")},
	{"documentation", netip.MustParsePrefix("192.0.2.0/24")},
	{"documentation", netip.MustParsePrefix("198.51.100.0/24")},
	{"documentation", netip.MustParsePrefix("203.0.113.0/24")},
	{"benchmarking", netip.MustParsePrefix("198.18.0.0/15")},
	{"unspecified", netip.MustParsePrefix("0.0.0.0/8")},
	{"multicast", netip.MustParsePrefix("224.0.0.0/4")},
	{"reserved", netip.MustParsePrefix("240.0.0.0/4")},
	{"broadcast", netip.MustParsePrefix("255.255.255.255/32")},
	{"loopback", netip.MustParsePrefix("::1/128")},
	{"unspecified", netip.MustParsePrefix("::/128")},
	{"link-local", netip.MustParsePrefix("fe80::/10")},
	{"unique-local", netip.MustParsePrefix("fc00::/7")},
	{"multicast", netip.MustParsePrefix("ff00::/8")},
}

// localNameSuffixes are hostname suffixes that always resolve inside
// the local machine or link.
var localNameSuffixes = []string{".localhost", ".local"}

// classifyPrivateHost checks a URL host (no port, no brackets) against
// the ruleset. It returns the matched rule name and true on a match.
// IPv4-mapped IPv6 addresses are unmapped first so ::ffff:127.0.0.1
// classifies as loopback.
func classifyPrivateHost(host string) (string, bool) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))

	if host == "localhost" {
		return "loopback-name", true
	}
	for _, suffix := range localNameSuffixes {
		if strings.HasSuffix(host, suffix) {
			return "local-name", true
		}
	}

	addr, err := netip.ParseAddr(host)
	if err != nil {
		// Not an address literal; name-based checks above are the
		// only ruleset concern.
		return "", false
	}
	addr = addr.Unmap()

	for _, r := range privateRanges {
		if r.prefix.Contains(addr) {
			return r.name, true
		}
	}
	return "", false
}

// allowedBySuffix reports whether host matches one of the allowlist
// entries at a label boundary: entry "example.com" matches
// "example.com" and "api.example.com" but never "notexample.com".
func allowedBySuffix(host string, allowed []string) bool {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	for _, entry := range allowed {
		entry = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(entry, "."), "."))
		if entry == "" {
			continue
		}
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}
