package sqlite

import (
	"context"
	"fmt"
	"strings"

	"economap/internal/store"
)

func (c *Client) EnsureSchema(ctx context.Context, linksTable string) error {
	ddl := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS objects (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		name             TEXT NOT NULL,
		category         TEXT NOT NULL,
		origin_country   TEXT NOT NULL,
		base_price_2025  REAL NOT NULL,
		ecosystem_impact REAL NOT NULL,
		economic_impact  REAL NOT NULL,
		stock            INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS %[1]s (
		id               INTEGER PRIMARY KEY AUTOINCREMENT,
		source_object_id INTEGER NOT NULL REFERENCES objects(id),
		target_object_id INTEGER NOT NULL REFERENCES objects(id),
		probability      REAL NOT NULL DEFAULT 1,
		relation_type    TEXT NOT NULL DEFAULT '=>'
	);

	CREATE INDEX IF NOT EXISTS idx_objects_name ON objects (name);
	CREATE INDEX IF NOT EXISTS %[2]s ON %[1]s (source_object_id);
	`, store.QuoteIdent(linksTable), store.QuoteIdent("idx_"+linksTable+"_source"))

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(ddl) {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing DDL: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing schema transaction: %w", err)
	}

	return nil
}

func splitStatements(ddl string) []string {
	var statements []string
	var current strings.Builder

	for _, line := range strings.Split(ddl, "\n") {
		stripped := strings.TrimSpace(line)
		if strings.HasPrefix(stripped, "--") {
			continue
		}
		current.WriteString(line)
		current.WriteString("\n")

		if strings.HasSuffix(stripped, ";") {
			statements = append(statements, current.String())
			current.Reset()
		}
	}

	if strings.TrimSpace(current.String()) != "" {
		statements = append(statements, current.String())
	}

	return statements
}
