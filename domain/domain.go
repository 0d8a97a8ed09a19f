// Package domain reduces hostnames to their registrable root domain using
// public-suffix rules, so that "same site" comparisons work across
// subdomains and multi-label TLD suffixes (co.uk, com.au, gov.br, ...).
package domain

import (
	"net"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Domain pairs a normalized hostname with its registrable root (eTLD+1).
// Root is always a suffix of Host; they are equal when the host carries no
// subdomain.
type Domain struct {
	Host string
	Root string
}

// Normalize lowercases host, trims a trailing dot, and derives the
// registrable root from the public-suffix list. It never fails: IP literals
// keep themselves as root, and hosts the suffix list cannot place fall back
// to a two-label heuristic.
func Normalize(host string) Domain {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	d := Domain{Host: host}
	if host == "" {
		return d
	}

	if net.ParseIP(host) != nil {
		d.Root = host
		return d
	}

	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		// The host is itself a public suffix, a bare label, or otherwise
		// unplaceable. Two trailing labels are the best remaining guess.
		d.Root = lastLabels(host, 2)
		return d
	}
	d.Root = root
	return d
}

// Root is shorthand for Normalize(host).Root.
func Root(host string) string {
	return Normalize(host).Root
}

// SameSite reports whether two hosts share a registrable root. This is the
// internal-navigation rule: subdomain-to-subdomain and subdomain-to-root
// movements count as the same site. Empty hosts never match.
func SameSite(a, b string) bool {
	ra := Root(a)
	if ra == "" {
		return false
	}
	return ra == Root(b)
}

func lastLabels(host string, n int) string {
	parts := strings.Split(host, ".")
	if len(parts) <= n {
		return host
	}
	return strings.Join(parts[len(parts)-n:], ".")
}
