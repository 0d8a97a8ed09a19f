// Package urlparse decomposes URLs and query strings for attribution
// analysis. Parsing is deliberately lenient: real-world landing URLs carry
// malformed encodings, duplicated question marks, and parameters smuggled
// into fragments, and dropping a page view over any of those would lose the
// attribution signal entirely. Malformed input degrades to empty fields,
// never to an error.
package urlparse

import (
	"net/url"
	"strings"
)

// Param is a single query parameter as it appeared in the URL.
// Keys keep their original case.
type Param struct {
	Key   string
	Value string
}

// Params is an ordered list of query parameters. Duplicate keys are kept in
// order of appearance.
type Params []Param

// Get returns the value for an exact key match. When the key appears more
// than once the last value wins, matching query-string convention.
func (p Params) Get(key string) string {
	var val string
	for _, kv := range p {
		if kv.Key == key {
			val = kv.Value
		}
	}
	return val
}

// GetFold returns the value for key, matching case-insensitively and
// ignoring array notation on the stored key (utm_source[] and utm_source[0]
// both match utm_source). The last matching value wins.
func (p Params) GetFold(key string) string {
	var val string
	for _, kv := range p {
		if strings.EqualFold(canonicalKey(kv.Key), key) {
			val = kv.Value
		}
	}
	return val
}

// HasFold reports whether any parameter matches key under GetFold rules.
func (p Params) HasFold(key string) bool {
	for _, kv := range p {
		if strings.EqualFold(canonicalKey(kv.Key), key) {
			return true
		}
	}
	return false
}

func canonicalKey(k string) string {
	if i := strings.IndexByte(k, '['); i >= 0 {
		return k[:i]
	}
	return k
}

// URL is the decomposed form of a raw URL.
type URL struct {
	Scheme   string
	Host     string
	Path     string
	RawQuery string
	Params   Params
}

// Decompose splits a raw URL into scheme, host, path and query parameters.
// It never fails: malformed input yields a URL with empty fields rather
// than an error. Scheme and host are lowercased; parameter keys keep their
// original case.
func Decompose(raw string) URL {
	var out URL
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return out
	}

	u, err := url.Parse(raw)
	if err != nil {
		// Even unparseable input can carry a usable query string.
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			out.RawQuery = raw[i+1:]
			out.Params = ParseQuery(out.RawQuery)
		}
		return out
	}

	out.Scheme = strings.ToLower(u.Scheme)
	out.Host = strings.ToLower(u.Hostname())
	out.Path = u.Path
	out.RawQuery = u.RawQuery
	out.Params = ParseQuery(u.RawQuery)

	// Fragments sometimes smuggle query parameters (#utm_source=drift).
	// Fragments starting with '/' are SPA routes, not parameters.
	if f := u.Fragment; strings.Contains(f, "=") && !strings.HasPrefix(f, "/") {
		out.Params = append(out.Params, ParseQuery(f)...)
	}

	return out
}

// ParseQuery parses a raw query string into ordered parameters. The string
// is split on '&' (or ';' when a chunk uses only semicolons), each segment
// on the first '='; segments without '=' become empty-string values. Keys
// and values are percent-decoded leniently: a failed decode keeps the raw
// substring. Chunks introduced by stray extra '?' characters are recovered
// when they contain at least one '='.
func ParseQuery(query string) Params {
	var params Params
	for i, chunk := range strings.Split(query, "?") {
		if chunk == "" {
			continue
		}
		// The first chunk is the query proper; the rest are malformed
		// leftovers and only worth parsing when they look like parameters.
		if i > 0 && !strings.Contains(chunk, "=") {
			continue
		}
		sep := "&"
		if strings.Contains(chunk, ";") && !strings.Contains(chunk, "&") {
			sep = ";"
		}
		for _, seg := range strings.Split(chunk, sep) {
			if seg == "" {
				continue
			}
			key, val, _ := strings.Cut(seg, "=")
			if key == "" {
				continue
			}
			params = append(params, Param{
				Key:   decodeKey(key),
				Value: DecodeValue(val),
			})
		}
	}
	return params
}

func decodeKey(k string) string {
	dec, err := url.PathUnescape(k)
	if err != nil {
		return k
	}
	return dec
}

// DecodeValue percent-decodes a parameter value with the edge cases seen in
// campaign URLs. Double-encoded values (%25..) are decoded twice. A '+' is
// converted to a space only when the value shows no sign of it being a
// literal plus: campaign names routinely use '+' as part of the label.
// A value that cannot be decoded is returned unchanged.
func DecodeValue(v string) string {
	if v == "" {
		return ""
	}

	if strings.Contains(v, "%25") {
		once, err := url.PathUnescape(v)
		if err != nil {
			return v
		}
		if strings.Contains(once, "%") {
			if twice, err := url.PathUnescape(once); err == nil {
				return twice
			}
		}
		return once
	}

	if strings.Contains(v, "+") &&
		!strings.Contains(v, "%20") &&
		!strings.Contains(v, "%2B") &&
		strings.Count(v, "+") <= 3 {
		if dec, err := url.PathUnescape(v); err == nil {
			return dec
		}
		return v
	}

	if dec, err := url.QueryUnescape(v); err == nil {
		return dec
	}
	return v
}
