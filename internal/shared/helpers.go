// Package shared provides common utility functions used across multiple
// packages in the whlgen codebase.
package shared

import "strings"

// NormalizePipName lowercases a Python package name and replaces runs of
// underscores, dots, and hyphens with a single hyphen, following PEP 503
// normalization.
func NormalizePipName(value string) string {
	lower := strings.ToLower(strings.TrimSpace(value))
	var b strings.Builder
	prevHyphen := false
	for i := 0; i < len(lower); i++ {
		switch lower[i] {
		case '-', '_', '.':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		default:
			b.WriteByte(lower[i])
			prevHyphen = false
		}
	}
	return b.String()
}

// SafeExtra canonicalizes an extra name the way setuptools does: runs of
// characters outside [A-Za-z0-9.-] collapse to a single underscore, and
// the result is lowercased.
func SafeExtra(value string) string {
	trimmed := strings.TrimSpace(value)
	var b strings.Builder
	prevUnderscore := false
	for i := 0; i < len(trimmed); i++ {
		c := trimmed[i]
		safe := c == '.' || c == '-' ||
			(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if safe {
			b.WriteByte(c)
			prevUnderscore = false
			continue
		}
		if !prevUnderscore {
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	return strings.ToLower(b.String())
}
