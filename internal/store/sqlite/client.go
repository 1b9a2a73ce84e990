package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"economap/internal/store"

	_ "modernc.org/sqlite"
)

const backend = "sqlite"

var _ store.Store = (*Client)(nil)

type Client struct {
	db *sql.DB
}

func New(ctx context.Context, dsn string) (*Client, error) {
	target, err := parseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing sqlite DSN: %w", err)
	}

	db, err := sql.Open("sqlite", target.path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if target.memory {
		// Every pooled connection to :memory: would see its own empty database.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite: %w", err)
	}

	// foreign_keys stays off: link endpoints are not enforced and dangling
	// references simply drop out of joins.
	pragmas := []string{
		"PRAGMA busy_timeout = 30000;",
	}
	if !target.memory {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL;")
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	return &Client{db: db}, nil
}

func (c *Client) Close(ctx context.Context) error {
	return c.db.Close()
}
