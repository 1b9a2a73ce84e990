// Package graph reads objects and their weighted dependency links.
//
// Every method takes the objects table handle resolved by the catalog; the
// handle is the only source of interpolated table names besides the
// configured links table. Value parameters are always bound.
package graph

import (
	"context"

	"economap/internal/config"
	"economap/internal/store"
)

type Querier interface {
	ListTables(ctx context.Context) ([]string, error)
	Query(ctx context.Context, query string, args ...any) (*store.ResultSet, error)
}

type Client struct {
	db         Querier
	linksTable string
}

func NewClient(db Querier, linksTable string) *Client {
	if linksTable == "" {
		linksTable = config.DefaultLinksTable
	}
	return &Client{db: db, linksTable: linksTable}
}

func (c *Client) LinksTable() string {
	return c.linksTable
}
