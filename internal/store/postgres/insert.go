package postgres

import (
	"context"
	"fmt"

	"economap/internal/store"
)

func (c *Client) InsertObject(ctx context.Context, o store.ObjectInput) (int64, error) {
	var id int64
	err := c.pool.QueryRow(ctx,
		`INSERT INTO objects (name, category, origin_country, base_price_2025, ecosystem_impact, economic_impact, stock)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		o.Name, o.Category, o.OriginCountry, o.BasePrice2025, o.EcosystemImpact, o.EconomicImpact, o.Stock,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting object %s: %w", o.Name, err)
	}
	return id, nil
}

func (c *Client) InsertLink(ctx context.Context, linksTable string, l store.LinkInput) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (source_object_id, target_object_id, probability, relation_type) VALUES ($1, $2, $3, $4)`,
		store.QuoteIdent(linksTable),
	)
	if _, err := c.pool.Exec(ctx, query, l.SourceObjectID, l.TargetObjectID, l.Probability, l.RelationType); err != nil {
		return fmt.Errorf("inserting link %d->%d: %w", l.SourceObjectID, l.TargetObjectID, err)
	}
	return nil
}
