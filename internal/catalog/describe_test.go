package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economap/internal/catalog"
	"economap/internal/testutil"
)

func TestDescribeSeededStore(t *testing.T) {
	ctx := context.Background()
	db := testutil.SeededStore(t)
	c := catalog.New(db)

	tables, err := c.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"links", "objects"}, tables)

	described, err := c.Describe(ctx, 2)
	require.NoError(t, err)
	require.Len(t, described, 2)

	assert.Equal(t, "links", described[0].Name)
	assert.Len(t, described[0].Preview.Rows, 2)
	assert.Equal(t, "objects", described[1].Name)
	assert.Equal(t, "id", described[1].Columns[0].Name)
	assert.Equal(t, []string{"id", "name", "category", "origin_country", "base_price_2025", "ecosystem_impact", "economic_impact", "stock"}, described[1].Preview.Columns)
}

func TestResolveSeededStore(t *testing.T) {
	db := testutil.SeededStore(t)
	table, err := catalog.New(db).ResolveObjectsTable(context.Background())
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, "objects", table.Name())
}

func TestPreviewDefaultsLimit(t *testing.T) {
	db := testutil.SeededStore(t)
	rows, err := catalog.New(db).Preview(context.Background(), "objects", 0)
	require.NoError(t, err)
	assert.Len(t, rows.Rows, 4)
}
