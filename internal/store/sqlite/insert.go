package sqlite

import (
	"context"
	"fmt"

	"economap/internal/store"
)

func (c *Client) InsertObject(ctx context.Context, o store.ObjectInput) (int64, error) {
	res, err := c.db.ExecContext(ctx,
		`INSERT INTO objects (name, category, origin_country, base_price_2025, ecosystem_impact, economic_impact, stock)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.Name, o.Category, o.OriginCountry, o.BasePrice2025, o.EcosystemImpact, o.EconomicImpact, o.Stock,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting object %s: %w", o.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading object id: %w", err)
	}
	return id, nil
}

func (c *Client) InsertLink(ctx context.Context, linksTable string, l store.LinkInput) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (source_object_id, target_object_id, probability, relation_type) VALUES (?, ?, ?, ?)`,
		store.QuoteIdent(linksTable),
	)
	if _, err := c.db.ExecContext(ctx, query, l.SourceObjectID, l.TargetObjectID, l.Probability, l.RelationType); err != nil {
		return fmt.Errorf("inserting link %d->%d: %w", l.SourceObjectID, l.TargetObjectID, err)
	}
	return nil
}
