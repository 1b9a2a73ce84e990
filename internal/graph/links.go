package graph

import (
	"context"
	"fmt"

	"economap/internal/catalog"
	"economap/internal/store"
)

// OutgoingLinks returns the direct dependents of sourceID. The inner join
// drops links whose target does not exist. Order is unspecified. A store
// without the links table has no dependents.
func (c *Client) OutgoingLinks(ctx context.Context, table *catalog.ObjectsTable, sourceID int64) ([]OutgoingLink, error) {
	if table == nil {
		return []OutgoingLink{}, nil
	}
	exists, err := c.hasLinksTable(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []OutgoingLink{}, nil
	}

	query := fmt.Sprintf(`
		SELECT l.target_object_id, l.probability, o.name, o.base_price_2025
		FROM %s l
		JOIN %s o ON o.id = l.target_object_id
		WHERE l.source_object_id = ?`,
		store.QuoteIdent(c.linksTable), table.Quoted(),
	)
	result, err := c.db.Query(ctx, query, sourceID)
	if err != nil {
		return nil, fmt.Errorf("loading links from %d: %w", sourceID, err)
	}

	links := make([]OutgoingLink, 0, len(result.Rows))
	for _, row := range result.Rows {
		link, err := outgoingLinkFromRow(row)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

// ListLinks returns every row of the links table, dangling ones included.
func (c *Client) ListLinks(ctx context.Context) ([]Link, error) {
	exists, err := c.hasLinksTable(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		return []Link{}, nil
	}

	query := fmt.Sprintf(
		"SELECT id, source_object_id, target_object_id, probability, relation_type FROM %s ORDER BY id",
		store.QuoteIdent(c.linksTable),
	)
	result, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing links: %w", err)
	}

	links := make([]Link, 0, len(result.Rows))
	for _, row := range result.Rows {
		link, err := linkFromRow(row)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, nil
}

func (c *Client) hasLinksTable(ctx context.Context) (bool, error) {
	tables, err := c.db.ListTables(ctx)
	if err != nil {
		return false, fmt.Errorf("listing tables: %w", err)
	}
	for _, table := range tables {
		if table == c.linksTable {
			return true, nil
		}
	}
	return false, nil
}
