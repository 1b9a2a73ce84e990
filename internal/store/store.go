package store

import (
	"context"
	"strings"
)

// Store is the storage collaborator behind the catalog, graph and console.
// Table names passed to Columns must come from ListTables output; value
// parameters are always bound with ? placeholders.
type Store interface {
	Close(ctx context.Context) error
	EnsureSchema(ctx context.Context, linksTable string) error

	ListTables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]Column, error)
	Query(ctx context.Context, query string, args ...any) (*ResultSet, error)

	InsertObject(ctx context.Context, o ObjectInput) (int64, error)
	InsertLink(ctx context.Context, linksTable string, l LinkInput) error
}

// QuoteIdent quotes a trusted identifier for interpolation. Both backends
// accept double-quoted identifiers.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
