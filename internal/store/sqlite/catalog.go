package sqlite

import (
	"context"
	"fmt"
	"time"

	"economap/internal/metrics"
	"economap/internal/store"
)

func (c *Client) ListTables(ctx context.Context) (tables []string, err error) {
	defer func(start time.Time) { metrics.ObserveStoreQuery(backend, start, err) }(time.Now())

	rows, err := c.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name",
	)
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

	rows, err := c.db.QueryContext(ctx,
		"SELECT name, type FROM pragma_table_info(?) ORDER BY cid",
		table,
	)
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
