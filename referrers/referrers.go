// Package referrers provides the referrer knowledge base: an immutable
// in-memory index from referrer domain to a (source, medium)
// classification, loaded from a YAML dataset. The attribution engine
// queries it read-only; refreshing the dataset means building a new
// KnowledgeBase and publishing it as a new snapshot.
package referrers

import (
	"net/url"
	"strings"

	"github.com/refparse/attribution/domain"
)

// Medium classifies how a referrer drives traffic.
type Medium string

// Mediums used by the knowledge base dataset.
const (
	MediumSearch Medium = "search"
	MediumSocial Medium = "social"
	MediumEmail  Medium = "email"
	MediumCPC    Medium = "cpc"
)

// String returns the string representation of the medium.
func (m Medium) String() string {
	return string(m)
}

// IsValid reports whether the medium is one of the dataset mediums.
func (m Medium) IsValid() bool {
	switch m {
	case MediumSearch, MediumSocial, MediumEmail, MediumCPC:
		return true
	default:
		return false
	}
}

// Classification is the class a referrer domain maps to. It is immutable:
// built during load, never mutated at runtime.
type Classification struct {
	// Source is the provider name as it appears in the dataset
	// (e.g. "Google", "Facebook").
	Source string

	// Medium is the dataset medium for the provider.
	Medium Medium

	// TermParams lists the query parameters the provider uses to carry a
	// search term (e.g. q, p, wd). Empty for non-search providers.
	TermParams []string
}

// ExtractTerm pulls the search term out of a referrer's raw query string
// using the provider's term parameters. The first matching parameter wins.
// Decoding follows standard query-string semantics ('+' means space);
// undecodable values are kept raw. Returns "" when no term is present.
func (c Classification) ExtractTerm(rawQuery string) string {
	if rawQuery == "" || len(c.TermParams) == 0 {
		return ""
	}
	for _, seg := range strings.Split(rawQuery, "&") {
		key, val, _ := strings.Cut(seg, "=")
		if dec, err := url.QueryUnescape(key); err == nil {
			key = dec
		}
		for _, p := range c.TermParams {
			if strings.EqualFold(key, p) {
				if dec, err := url.QueryUnescape(val); err == nil {
					val = dec
				}
				return strings.TrimSpace(val)
			}
		}
	}
	return ""
}

// KnowledgeBase is an immutable index from referrer domain to
// classification. Build it once with Parse, Load or Bundled and share it
// freely: lookups never mutate state, so concurrent readers need no
// locking.
type KnowledgeBase struct {
	index map[string]Classification
}

// Empty returns a knowledge base with no entries. Every lookup misses,
// which the engine renders as referral traffic.
func Empty() *KnowledgeBase {
	return &KnowledgeBase{index: map[string]Classification{}}
}

// Classify looks up a referrer host. The exact host is tried first, then
// its registrable root, so a provider keyed by subdomain (a webmail host
// under a search engine's domain, say) is not shadowed by the root entry.
// Both lookups are case-insensitive and exact — no fuzzy matching. ok is
// false for unknown domains.
func (kb *KnowledgeBase) Classify(host string) (Classification, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return Classification{}, false
	}
	if c, ok := kb.index[host]; ok {
		return c, true
	}
	if root := domain.Root(host); root != "" && root != host {
		if c, ok := kb.index[root]; ok {
			return c, true
		}
	}
	return Classification{}, false
}

// Len reports the number of indexed domains.
func (kb *KnowledgeBase) Len() int {
	return len(kb.index)
}
