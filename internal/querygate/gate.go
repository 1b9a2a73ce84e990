// Package querygate screens and runs free-form read queries.
//
// The gate is a substring heuristic, not a SQL parser. It rejects anything
// that does not start with "select" and anything containing a denylisted
// keyword anywhere, string literals and comments included. Identifiers that
// merely contain a keyword (e.g. "updated_at") are rejected too. It is a
// best-effort filter for a trusted internal tool and must not be relied on as
// a security boundary.
package querygate

import "strings"

var forbiddenKeywords = []string{
	"insert",
	"update",
	"delete",
	"drop",
	"alter",
	"pragma",
	"attach",
	"detach",
}

// IsSafeReadQuery reports whether text passes the read-only gate.
func IsSafeReadQuery(text string) bool {
	q := strings.ToLower(strings.TrimSpace(text))
	if !strings.HasPrefix(q, "select") {
		return false
	}
	for _, keyword := range forbiddenKeywords {
		if strings.Contains(q, keyword) {
			return false
		}
	}
	return true
}
