package ingest

import (
	"context"

	"economap/internal/store"
)

type Store interface {
	ListTables(ctx context.Context) ([]string, error)
	EnsureSchema(ctx context.Context, linksTable string) error
	InsertObject(ctx context.Context, o store.ObjectInput) (int64, error)
	InsertLink(ctx context.Context, linksTable string, l store.LinkInput) error
}
