package graph

import (
	"context"
	"fmt"
	"strings"

	"economap/internal/catalog"
	"economap/internal/store"
)

const (
	OrderPriceDesc = "base_price_2025_desc"
	OrderPriceAsc  = "base_price_2025_asc"
	OrderNameAsc   = "name_asc"

	searchLimit = 100
	latestLimit = 5
)

var orderClauses = map[string]string{
	OrderPriceDesc: "base_price_2025 DESC",
	OrderPriceAsc:  "base_price_2025 ASC",
	OrderNameAsc:   "name ASC",
}

type SearchOptions struct {
	Query string
	Order string
}

// GetObject returns nil when no object has the given id.
func (c *Client) GetObject(ctx context.Context, table *catalog.ObjectsTable, id int64) (*ObjectSummary, error) {
	if table == nil {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT id, name, base_price_2025 FROM %s WHERE id = ?", table.Quoted())
	result, err := c.db.Query(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("getting object %d: %w", id, err)
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}
	obj, err := objectSummaryFromRow(result.Rows[0])
	if err != nil {
		return nil, err
	}
	return &obj, nil
}

// ListObjects returns every object ordered by name.
func (c *Client) ListObjects(ctx context.Context, table *catalog.ObjectsTable) ([]ObjectSummary, error) {
	if table == nil {
		return []ObjectSummary{}, nil
	}
	query := fmt.Sprintf("SELECT id, name, base_price_2025 FROM %s ORDER BY name", table.Quoted())
	result, err := c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing objects: %w", err)
	}

	objects := make([]ObjectSummary, 0, len(result.Rows))
	for _, row := range result.Rows {
		obj, err := objectSummaryFromRow(row)
		if err != nil {
			return nil, err
		}
		objects = append(objects, obj)
	}
	return objects, nil
}

// SearchObjects returns full rows matching the search text in name, category
// or origin_country (whichever the table has). Unknown orders fall back to
// price descending.
func (c *Client) SearchObjects(ctx context.Context, table *catalog.ObjectsTable, opts SearchOptions) (*store.ResultSet, error) {
	if table == nil {
		return &store.ResultSet{Rows: []store.Row{}}, nil
	}

	orderBy, ok := orderClauses[opts.Order]
	if !ok {
		orderBy = orderClauses[OrderPriceDesc]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s", table.Quoted())

	var args []any
	if search := strings.TrimSpace(opts.Query); search != "" {
		pattern := "%" + search + "%"
		var conds []string
		for _, col := range []string{"name", "category", "origin_country"} {
			if !table.Has(col) {
				continue
			}
			conds = append(conds, store.QuoteIdent(col)+" LIKE ?")
			args = append(args, pattern)
		}
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " OR "))
	}
	fmt.Fprintf(&b, " ORDER BY %s LIMIT %d", orderBy, searchLimit)

	result, err := c.db.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("searching objects: %w", err)
	}
	return result, nil
}

// LookupOrigin returns the first object whose name contains name, or nil.
func (c *Client) LookupOrigin(ctx context.Context, table *catalog.ObjectsTable, name string) (*Origin, error) {
	name = strings.TrimSpace(name)
	if table == nil || name == "" {
		return nil, nil
	}

	columns := "name, origin_country"
	if table.Has("category") {
		columns += ", category"
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE name LIKE ? LIMIT 1", columns, table.Quoted())
	result, err := c.db.Query(ctx, query, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("looking up origin of %q: %w", name, err)
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}
	row := result.Rows[0]
	return &Origin{
		Name:          store.String(row["name"]),
		OriginCountry: store.String(row["origin_country"]),
		Category:      store.String(row["category"]),
	}, nil
}

// Overview returns the average base price and the most recently inserted
// objects.
func (c *Client) Overview(ctx context.Context, table *catalog.ObjectsTable) (*Overview, error) {
	if table == nil {
		return &Overview{Latest: &store.ResultSet{Rows: []store.Row{}}}, nil
	}

	avg, err := c.db.Query(ctx, fmt.Sprintf("SELECT AVG(base_price_2025) AS avg_price FROM %s", table.Quoted()))
	if err != nil {
		return nil, fmt.Errorf("averaging prices: %w", err)
	}
	out := &Overview{}
	if len(avg.Rows) > 0 && avg.Rows[0]["avg_price"] != nil {
		price, err := store.Float(avg.Rows[0]["avg_price"])
		if err != nil {
			return nil, fmt.Errorf("average price: %w", err)
		}
		out.AveragePrice = &price
	}

	columns := []string{"name"}
	if table.Has("category") {
		columns = append(columns, "category")
	}
	columns = append(columns, "origin_country", "base_price_2025")
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(columns, ", "), table.Quoted())
	if table.Has("id") {
		query += " ORDER BY id DESC"
	}
	query += fmt.Sprintf(" LIMIT %d", latestLimit)

	out.Latest, err = c.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing latest objects: %w", err)
	}
	return out, nil
}
