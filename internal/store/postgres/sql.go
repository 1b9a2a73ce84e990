package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"economap/internal/metrics"
	"economap/internal/store"
)

type float64Valuer interface {
	Float64Value() (pgtype.Float8, error)
}

func (c *Client) Query(ctx context.Context, query string, args ...any) (result *store.ResultSet, err error) {
	defer func(start time.Time) { metrics.ObserveStoreQuery(backend, start, err) }(time.Now())

	if len(args) > 0 {
		query = rebind(query)
	}

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("running sql: %w", err)
	}
	defer rows.Close()

	fieldDescriptions := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescriptions))
	for i, fd := range fieldDescriptions {
		columns[i] = fd.Name
	}

	result = &store.ResultSet{Columns: columns, Rows: make([]store.Row, 0)}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("getting row values: %w", err)
		}

		row := make(store.Row, len(columns))
		for i, col := range columns {
			row[col] = normalize(values[i])
		}
		result.Rows = append(result.Rows, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sql rows: %w", err)
	}

	return result, nil
}

// normalize flattens NUMERIC values so callers only ever see float64.
func normalize(v any) any {
	fv, ok := v.(float64Valuer)
	if !ok {
		return v
	}
	f, err := fv.Float64Value()
	if err != nil || !f.Valid {
		return nil
	}
	return f.Float64
}

// rebind rewrites ? placeholders to $n, leaving quoted literals and
// identifiers untouched.
func rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	var quote rune
	for _, r := range query {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			b.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			b.WriteRune(r)
		case r == '?':
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
