package catalog

import (
	"context"
	"fmt"

	"economap/internal/store"
)

const DefaultPreviewLimit = 20

type TableDescription struct {
	Name    string
	Columns []store.Column
	Preview *store.ResultSet
}

// Describe lists every table with its columns and the first rows.
func (c *Catalog) Describe(ctx context.Context, previewLimit int) ([]TableDescription, error) {
	if previewLimit <= 0 {
		previewLimit = DefaultPreviewLimit
	}

	tables, err := c.db.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("describing schema: %w", err)
	}

	out := make([]TableDescription, 0, len(tables))
	for _, table := range tables {
		columns, err := c.db.Columns(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("describing %s: %w", table, err)
		}
		preview, err := c.Preview(ctx, table, previewLimit)
		if err != nil {
			return nil, err
		}
		out = append(out, TableDescription{Name: table, Columns: columns, Preview: preview})
	}
	return out, nil
}

// Preview returns up to limit rows of a table. The name must come from
// ListTables.
func (c *Catalog) Preview(ctx context.Context, table string, limit int) (*store.ResultSet, error) {
	if limit <= 0 {
		limit = DefaultPreviewLimit
	}
	query := fmt.Sprintf("SELECT * FROM %s LIMIT ?", store.QuoteIdent(table))
	rows, err := c.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("previewing %s: %w", table, err)
	}
	return rows, nil
}
