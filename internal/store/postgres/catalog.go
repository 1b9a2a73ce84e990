package postgres

import (
	"context"
	"fmt"
	"time"

	"economap/internal/metrics"
	"economap/internal/store"
)

// ListTables returns the base tables of the current schema; catalog and
// information_schema tables live elsewhere and are never listed.
func (c *Client) ListTables(ctx context.Context) (tables []string, err error) {
	defer func(start time.Time) { metrics.ObserveStoreQuery(backend, start, err) }(time.Now())

	rows, err := c.pool.Query(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = current_schema()
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	tables = make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating table rows: %w", err)
	}
	return tables, nil
}

func (c *Client) Columns(ctx context.Context, table string) (columns []store.Column, err error) {
	defer func(start time.Time) { metrics.ObserveStoreQuery(backend, start, err) }(time.Now())

	rows, err := c.pool.Query(ctx, `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = current_schema()
		  AND table_name = $1
		ORDER BY ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	defer rows.Close()

	columns = make([]store.Column, 0)
	for rows.Next() {
		var col store.Column
		if err := rows.Scan(&col.Name, &col.Type); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating column rows: %w", err)
	}
	return columns, nil
}
