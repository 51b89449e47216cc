// Package scopex implements permission scope matching.
//
// A granted scope matches a required scope when it is:
//   - "*", which matches everything;
//   - equal to the required scope;
//   - "prefix.*", which matches any required scope starting with "prefix.".
//
// Matching is one directional. A required scope that itself contains a
// wildcard is only satisfied by the same literal or a broader wildcard.
package scopex

import "strings"

// Wildcard grants every scope.
const Wildcard = "*"

const wildcardSuffix = ".*"

// Match reports whether a single granted scope satisfies required.
func Match(granted, required string) bool {
	if granted == "" || required == "" {
		return false
	}
	if granted == Wildcard || granted == required {
		return true
	}
	if prefix, ok := strings.CutSuffix(granted, wildcardSuffix); ok && prefix != "" {
		return strings.HasPrefix(required, prefix+".")
	}
	return false
}

// Grants reports whether any granted scope satisfies required.
func Grants(granted []string, required string) bool {
	for _, g := range granted {
		if Match(g, required) {
			return true
		}
	}
	return false
}

// AnyGranted reports whether at least one of required is satisfied by
// granted. An empty required list places no restriction and returns true.
func AnyGranted(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if Grants(granted, r) {
			return true
		}
	}
	return false
}

// Normalize trims, drops blanks and removes duplicates while keeping the
// first-seen order.
func Normalize(scopes []string) []string {
	out := make([]string, 0, len(scopes))
	seen := make(map[string]struct{}, len(scopes))
	for _, s := range scopes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Parse splits a space-delimited scope string (the OAuth2 "scope" form
// value) and normalizes it.
func Parse(s string) []string {
	return Normalize(strings.Fields(s))
}

// Valid reports whether s is usable as a scope entry: non-empty, no
// whitespace, and any "*" appears only as the whole scope or as a trailing
// ".*" segment.
func Valid(s string) bool {
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	if s == Wildcard {
		return true
	}
	body, _ := strings.CutSuffix(s, wildcardSuffix)
	if body == "" || strings.Contains(body, "*") {
		return false
	}
	return !strings.HasPrefix(body, ".") && !strings.HasSuffix(body, ".")
}
