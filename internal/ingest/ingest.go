// Package ingest bootstraps an empty store with the schema and a fixture.
//
// Run is meant to be called once at process start or from the CLI, never
// from request handling.
package ingest

import (
	"context"
	"fmt"

	"economap/internal/config"
	"economap/internal/ctxlog"
	"economap/internal/store"
)

type Result struct {
	Created         bool
	ObjectsInserted int
	LinksInserted   int
	ObjectIDs       []int64
}

type Options struct {
	LinksTable string
}

// Run creates the schema and seeds fixture when the store holds no user
// table yet. A store that already has tables is left untouched.
func Run(ctx context.Context, db Store, fixture *config.Fixture, options Options) (*Result, error) {
	if err := config.ValidateFixture(fixture); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	linksTable := options.LinksTable
	if linksTable == "" {
		linksTable = config.DefaultLinksTable
	}
	logger := ctxlog.FromContext(ctx)

	tables, err := db.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	if len(tables) > 0 {
		logger.Debug("store already initialised, skipping seed", "tables", len(tables))
		return &Result{}, nil
	}

	if err := db.EnsureSchema(ctx, linksTable); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	result := &Result{Created: true, ObjectIDs: make([]int64, 0, len(fixture.Objects))}
	for _, obj := range fixture.Objects {
		id, err := db.InsertObject(ctx, store.ObjectInput{
			Name:            obj.Name,
			Category:        obj.Category,
			OriginCountry:   obj.OriginCountry,
			BasePrice2025:   obj.BasePrice2025,
			EcosystemImpact: obj.EcosystemImpact,
			EconomicImpact:  obj.EconomicImpact,
			Stock:           obj.Stock,
		})
		if err != nil {
			return nil, fmt.Errorf("seed objects: %w", err)
		}
		result.ObjectIDs = append(result.ObjectIDs, id)
		result.ObjectsInserted++
	}

	for _, link := range fixture.Links {
		err := db.InsertLink(ctx, linksTable, store.LinkInput{
			SourceObjectID: result.ObjectIDs[link.Source-1],
			TargetObjectID: result.ObjectIDs[link.Target-1],
			Probability:    link.Probability,
			RelationType:   link.RelationType,
		})
		if err != nil {
			return nil, fmt.Errorf("seed links: %w", err)
		}
		result.LinksInserted++
	}

	logger.Info("seeded store", "objects", result.ObjectsInserted, "links", result.LinksInserted, "links_table", linksTable)
	return result, nil
}
