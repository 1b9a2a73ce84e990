package postgres

import (
	"context"
	"fmt"

	"economap/internal/store"
)

func (c *Client) EnsureSchema(ctx context.Context, linksTable string) error {
	// Link endpoints carry no foreign keys: dangling references are tolerated
	// and drop out of joins.
	ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS objects (
    id               BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name             TEXT NOT NULL,
    category         TEXT NOT NULL,
    origin_country   TEXT NOT NULL,
    base_price_2025  DOUBLE PRECISION NOT NULL,
    ecosystem_impact DOUBLE PRECISION NOT NULL,
    economic_impact  DOUBLE PRECISION NOT NULL,
    stock            BIGINT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS %[1]s (
    id               BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    source_object_id BIGINT NOT NULL,
    target_object_id BIGINT NOT NULL,
    probability      DOUBLE PRECISION NOT NULL DEFAULT 1,
    relation_type    TEXT NOT NULL DEFAULT '=>'
);

CREATE INDEX IF NOT EXISTS idx_objects_name ON objects (name);
CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (source_object_id);
`, store.QuoteIdent(linksTable), store.QuoteIdent("idx_"+linksTable+"_source"))

	_, err := c.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
