// Package catalog inspects the store schema and locates the objects table.
//
// Nothing is cached: the store may be swapped or altered between calls, so
// every lookup reads the schema again.
package catalog

import (
	"context"
	"fmt"

	"economap/internal/ctxlog"
	"economap/internal/store"
)

// RequiredColumns is the minimal attribute set a table needs to be treated
// as the objects table.
var RequiredColumns = []string{"name", "base_price_2025", "origin_country"}

// Inspector is the subset of store.Store the catalog reads.
type Inspector interface {
	ListTables(ctx context.Context) ([]string, error)
	Columns(ctx context.Context, table string) ([]store.Column, error)
	Query(ctx context.Context, query string, args ...any) (*store.ResultSet, error)
}

type Catalog struct {
	db Inspector
}

func New(db Inspector) *Catalog {
	return &Catalog{db: db}
}

// ObjectsTable is a validated handle on the table resolved as the objects
// table. It is only produced by ResolveObjectsTable.
type ObjectsTable struct {
	name    string
	columns []store.Column
	index   map[string]struct{}
}

func (t *ObjectsTable) Name() string { return t.name }

// Quoted returns the table name ready for interpolation into SQL.
func (t *ObjectsTable) Quoted() string { return store.QuoteIdent(t.name) }

func (t *ObjectsTable) Columns() []store.Column {
	return append([]store.Column(nil), t.columns...)
}

func (t *ObjectsTable) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

func (c *Catalog) ListTables(ctx context.Context) ([]string, error) {
	return c.db.ListTables(ctx)
}

func (c *Catalog) ColumnsOf(ctx context.Context, table string) ([]store.Column, error) {
	return c.db.Columns(ctx, table)
}

// ResolveObjectsTable returns the first table, in listing order, whose
// columns include RequiredColumns. It returns nil when none qualifies.
func (c *Catalog) ResolveObjectsTable(ctx context.Context) (*ObjectsTable, error) {
	tables, err := c.db.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving objects table: %w", err)
	}

	for _, table := range tables {
		columns, err := c.db.Columns(ctx, table)
		if err != nil {
			return nil, fmt.Errorf("resolving objects table: %w", err)
		}
		index := make(map[string]struct{}, len(columns))
		for _, col := range columns {
			index[col.Name] = struct{}{}
		}
		if !hasAll(index, RequiredColumns) {
			continue
		}
		ctxlog.FromContext(ctx).Debug("resolved objects table", "table", table, "columns", len(columns))
		return &ObjectsTable{name: table, columns: columns, index: index}, nil
	}

	ctxlog.FromContext(ctx).Debug("no table qualifies as objects table", "tables", len(tables))
	return nil, nil
}

func hasAll(index map[string]struct{}, required []string) bool {
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return false
		}
	}
	return true
}
