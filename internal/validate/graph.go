package validate

import (
	"context"

	"economap/internal/catalog"
	"economap/internal/graph"
)

type SchemaReader interface {
	ListTables(ctx context.Context) ([]string, error)
	ResolveObjectsTable(ctx context.Context) (*catalog.ObjectsTable, error)
}

type GraphReader interface {
	LinksTable() string
	ListObjects(ctx context.Context, table *catalog.ObjectsTable) ([]graph.ObjectSummary, error)
	ListLinks(ctx context.Context) ([]graph.Link, error)
}
