package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"economap/internal/store"
)

type fakeInspector struct {
	tables    []string
	columns   map[string][]string
	listErr   error
	columnErr error
	calls     int
}

func (f *fakeInspector) ListTables(ctx context.Context) ([]string, error) {
	f.calls++
	return f.tables, f.listErr
}

func (f *fakeInspector) Columns(ctx context.Context, table string) ([]store.Column, error) {
	if f.columnErr != nil {
		return nil, f.columnErr
	}
	cols := make([]store.Column, 0, len(f.columns[table]))
	for _, name := range f.columns[table] {
		cols = append(cols, store.Column{Name: name, Type: "TEXT"})
	}
	return cols, nil
}

func (f *fakeInspector) Query(ctx context.Context, query string, args ...any) (*store.ResultSet, error) {
	return &store.ResultSet{}, nil
}

func TestResolveObjectsTable(t *testing.T) {
	ctx := context.Background()

	t.Run("no qualifying table", func(t *testing.T) {
		db := &fakeInspector{
			tables: []string{"links", "objects", "prices"},
			columns: map[string][]string{
				"links":   {"id", "source_object_id", "target_object_id"},
				"objects": {"id", "name", "base_price_2025"},
				"prices":  {"origin_country", "base_price_2025"},
			},
		}
		table, err := New(db).ResolveObjectsTable(ctx)
		require.NoError(t, err)
		assert.Nil(t, table)
	})

	t.Run("empty store", func(t *testing.T) {
		table, err := New(&fakeInspector{}).ResolveObjectsTable(ctx)
		require.NoError(t, err)
		assert.Nil(t, table)
	})

	t.Run("single qualifying table among others", func(t *testing.T) {
		db := &fakeInspector{
			tables: []string{"audit", "goods", "links", "zeta"},
			columns: map[string][]string{
				"audit": {"id", "name"},
				"goods": {"id", "name", "category", "origin_country", "base_price_2025"},
				"links": {"id", "source_object_id"},
				"zeta":  {"base_price_2025"},
			},
		}
		table, err := New(db).ResolveObjectsTable(ctx)
		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Equal(t, "goods", table.Name())
		assert.Equal(t, `"goods"`, table.Quoted())
		assert.True(t, table.Has("category"))
		assert.False(t, table.Has("stock"))
		assert.Len(t, table.Columns(), 5)
	})

	t.Run("first match wins", func(t *testing.T) {
		cols := []string{"name", "base_price_2025", "origin_country"}
		db := &fakeInspector{
			tables:  []string{"a_objects", "b_objects"},
			columns: map[string][]string{"a_objects": cols, "b_objects": append(cols, "stock")},
		}
		table, err := New(db).ResolveObjectsTable(ctx)
		require.NoError(t, err)
		require.NotNil(t, table)
		assert.Equal(t, "a_objects", table.Name())
	})

	t.Run("recomputed on every call", func(t *testing.T) {
		db := &fakeInspector{
			tables:  []string{"objects"},
			columns: map[string][]string{"objects": {"name", "base_price_2025", "origin_country"}},
		}
		c := New(db)
		first, err := c.ResolveObjectsTable(ctx)
		require.NoError(t, err)
		require.NotNil(t, first)

		db.tables = nil
		second, err := c.ResolveObjectsTable(ctx)
		require.NoError(t, err)
		assert.Nil(t, second)
		assert.Equal(t, 2, db.calls)
	})

	t.Run("store errors propagate", func(t *testing.T) {
		_, err := New(&fakeInspector{listErr: errors.New("disk gone")}).ResolveObjectsTable(ctx)
		assert.ErrorContains(t, err, "disk gone")

		_, err = New(&fakeInspector{tables: []string{"x"}, columnErr: errors.New("locked")}).ResolveObjectsTable(ctx)
		assert.ErrorContains(t, err, "locked")
	})
}

func TestObjectsTableColumnsIsACopy(t *testing.T) {
	db := &fakeInspector{
		tables:  []string{"objects"},
		columns: map[string][]string{"objects": {"name", "base_price_2025", "origin_country"}},
	}
	table, err := New(db).ResolveObjectsTable(context.Background())
	require.NoError(t, err)

	cols := table.Columns()
	cols[0].Name = "mutated"
	assert.Equal(t, "name", table.Columns()[0].Name)
}
