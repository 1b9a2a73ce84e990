package graph_test

import (
	"context"
	"math"
	"reflect"
	"testing"

	"economap/internal/catalog"
	"economap/internal/graph"
	"economap/internal/store"
	"economap/internal/testutil"
)

func seeded(t *testing.T) (*graph.Client, *catalog.ObjectsTable, store.Store) {
	t.Helper()
	db := testutil.SeededStore(t)
	table, err := catalog.New(db).ResolveObjectsTable(context.Background())
	if err != nil {
		t.Fatalf("resolving objects table: %v", err)
	}
	if table == nil {
		t.Fatalf("expected objects table")
	}
	return graph.NewClient(db, ""), table, db
}

func names(rows []store.Row) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, store.String(row["name"]))
	}
	return out
}

func TestGetObject(t *testing.T) {
	ctx := context.Background()
	client, table, _ := seeded(t)

	obj, err := client.GetObject(ctx, table, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj == nil || *obj != (graph.ObjectSummary{ID: 2, Name: "Bois brut", BasePrice2025: 12.5}) {
		t.Fatalf("unexpected object: %+v", obj)
	}

	missing, err := client.GetObject(ctx, table, 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil, got %+v", missing)
	}

	none, err := client.GetObject(ctx, nil, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil without a table, got %+v", none)
	}
}

func TestListObjectsOrderedByName(t *testing.T) {
	client, table, _ := seeded(t)

	objects, err := client.ListObjects(context.Background(), table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]string, 0, len(objects))
	for _, obj := range objects {
		got = append(got, obj.Name)
	}
	want := []string{"Bois brut", "Chaise bois", "Copeaux recyclés", "Transport maritime"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestOutgoingLinks(t *testing.T) {
	ctx := context.Background()
	client, table, _ := seeded(t)

	links, err := client.OutgoingLinks(ctx, table, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected 2 links, got %d", len(links))
	}

	byTarget := map[int64]graph.OutgoingLink{}
	for _, link := range links {
		byTarget[link.TargetID] = link
	}
	if want := (graph.OutgoingLink{TargetID: 1, Probability: 0.9, TargetName: "Chaise bois", TargetBasePrice2025: 49.9}); byTarget[1] != want {
		t.Fatalf("expected %+v, got %+v", want, byTarget[1])
	}
	if want := (graph.OutgoingLink{TargetID: 4, Probability: 0.7, TargetName: "Copeaux recyclés", TargetBasePrice2025: 3.2}); byTarget[4] != want {
		t.Fatalf("expected %+v, got %+v", want, byTarget[4])
	}

	none, err := client.OutgoingLinks(ctx, table, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no links, got %+v", none)
	}
}

func TestOutgoingLinksDropsDanglingTargets(t *testing.T) {
	ctx := context.Background()
	client, table, db := seeded(t)
	testutil.Exec(t, db, "INSERT INTO links (source_object_id, target_object_id, probability, relation_type) VALUES (?, ?, ?, ?)", 1, 99, 0.5, "=>")

	links, err := client.OutgoingLinks(ctx, table, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected dangling link to be dropped, got %+v", links)
	}

	all, err := client.ListLinks(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 5 || all[4].TargetObjectID != 99 {
		t.Fatalf("expected dangling link in full listing, got %+v", all)
	}
}

func TestMissingLinksTable(t *testing.T) {
	ctx := context.Background()
	client, table, db := seeded(t)
	testutil.Exec(t, db, "DROP TABLE links")

	links, err := client.OutgoingLinks(ctx, table, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if links == nil || len(links) != 0 {
		t.Fatalf("expected empty links, got %#v", links)
	}

	all, err := client.ListLinks(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all == nil || len(all) != 0 {
		t.Fatalf("expected empty listing, got %#v", all)
	}
}

func TestSearchObjects(t *testing.T) {
	ctx := context.Background()
	client, table, _ := seeded(t)

	all, err := client.SearchObjects(ctx, table, graph.SearchOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Rows) != 4 || all.Rows[0]["name"] != "Chaise bois" {
		t.Fatalf("expected price descending by default, got %v", names(all.Rows))
	}

	france, err := client.SearchObjects(ctx, table, graph.SearchOptions{Query: "France", Order: graph.OrderPriceAsc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(france.Rows); !reflect.DeepEqual(got, []string{"Copeaux recyclés", "Chaise bois"}) {
		t.Fatalf("unexpected france results: %v", got)
	}

	byName, err := client.SearchObjects(ctx, table, graph.SearchOptions{Query: "bois", Order: graph.OrderNameAsc})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := names(byName.Rows); !reflect.DeepEqual(got, []string{"Bois brut", "Chaise bois"}) {
		t.Fatalf("unexpected bois results: %v", got)
	}

	unknown, err := client.SearchObjects(ctx, table, graph.SearchOptions{Order: "stock; DROP TABLE objects"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(unknown.Rows) != 4 {
		t.Fatalf("expected unknown order to fall back, got %d rows", len(unknown.Rows))
	}
}

func TestLookupOrigin(t *testing.T) {
	ctx := context.Background()
	client, table, _ := seeded(t)

	origin, err := client.LookupOrigin(ctx, table, "maritime")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if origin == nil || *origin != (graph.Origin{Name: "Transport maritime", OriginCountry: "International", Category: "Logistique"}) {
		t.Fatalf("unexpected origin: %+v", origin)
	}

	for _, name := range []string{"acier", "   "} {
		missing, err := client.LookupOrigin(ctx, table, name)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
		if missing != nil {
			t.Fatalf("expected nil for %q, got %+v", name, missing)
		}
	}
}

func TestOverview(t *testing.T) {
	ctx := context.Background()
	client, table, _ := seeded(t)

	overview, err := client.Overview(ctx, table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if overview.AveragePrice == nil || math.Abs(*overview.AveragePrice-(49.90+12.50+5.90+3.20)/4) > 1e-9 {
		t.Fatalf("unexpected average price: %v", overview.AveragePrice)
	}
	if len(overview.Latest.Rows) != 4 || overview.Latest.Rows[0]["name"] != "Copeaux recyclés" {
		t.Fatalf("unexpected latest rows: %v", names(overview.Latest.Rows))
	}
	if want := []string{"name", "category", "origin_country", "base_price_2025"}; !reflect.DeepEqual(overview.Latest.Columns, want) {
		t.Fatalf("expected columns %v, got %v", want, overview.Latest.Columns)
	}

	empty, err := client.Overview(ctx, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.AveragePrice != nil || len(empty.Latest.Rows) != 0 {
		t.Fatalf("expected empty overview, got %+v", empty)
	}
}

func TestDynamicObjectsTable(t *testing.T) {
	ctx := context.Background()
	db := testutil.EmptyStore(t)
	testutil.Exec(t, db, "CREATE TABLE goods (id INTEGER PRIMARY KEY, name TEXT, origin_country TEXT, base_price_2025 REAL)")
	testutil.Exec(t, db, "CREATE TABLE deps (id INTEGER PRIMARY KEY, source_object_id INTEGER, target_object_id INTEGER, probability REAL, relation_type TEXT)")
	testutil.Exec(t, db, "INSERT INTO goods (name, origin_country, base_price_2025) VALUES (?, ?, ?), (?, ?, ?)", "Acier", "Chine", 100.0, "Vis", "Chine", 0.5)
	testutil.Exec(t, db, "INSERT INTO deps (source_object_id, target_object_id, probability, relation_type) VALUES (1, 2, 0.25, '=>')")

	table, err := catalog.New(db).ResolveObjectsTable(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if table == nil || table.Name() != "goods" {
		t.Fatalf("expected goods table, got %+v", table)
	}

	client := graph.NewClient(db, "deps")
	links, err := client.OutgoingLinks(ctx, table, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(links) != 1 || links[0].TargetName != "Vis" {
		t.Fatalf("unexpected links: %+v", links)
	}

	// Search skips the missing category column.
	results, err := client.SearchObjects(ctx, table, graph.SearchOptions{Query: "Chine"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results.Rows) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results.Rows))
	}

	origin, err := client.LookupOrigin(ctx, table, "vis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if origin == nil || origin.Category != "" {
		t.Fatalf("unexpected origin: %+v", origin)
	}
}
