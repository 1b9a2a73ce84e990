package ingest

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"economap/internal/config"
	"economap/internal/store"
)

type mockStore struct {
	tables       []string
	ensureCalled string
	objects      []store.ObjectInput
	links        []store.LinkInput
	linksTable   string
	nextID       int64
	failLink     bool
}

func (m *mockStore) ListTables(ctx context.Context) ([]string, error) {
	return m.tables, nil
}

func (m *mockStore) EnsureSchema(ctx context.Context, linksTable string) error {
	m.ensureCalled = linksTable
	return nil
}

func (m *mockStore) InsertObject(ctx context.Context, o store.ObjectInput) (int64, error) {
	m.objects = append(m.objects, o)
	m.nextID += 10
	return m.nextID, nil
}

func (m *mockStore) InsertLink(ctx context.Context, linksTable string, l store.LinkInput) error {
	if m.failLink {
		return errors.New("forced error")
	}
	m.linksTable = linksTable
	m.links = append(m.links, l)
	return nil
}

func TestRunSeedsEmptyStore(t *testing.T) {
	db := &mockStore{}
	result, err := Run(context.Background(), db, config.DefaultFixture(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Created || result.ObjectsInserted != 4 || result.LinksInserted != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if db.ensureCalled != "links" || db.linksTable != "links" {
		t.Fatalf("expected default links table, got schema %q inserts %q", db.ensureCalled, db.linksTable)
	}
	if db.objects[0].Name != "Chaise bois" {
		t.Fatalf("expected fixture order, got %q first", db.objects[0].Name)
	}

	// Fixture positions map onto whatever ids the store assigned.
	if !reflect.DeepEqual(result.ObjectIDs, []int64{10, 20, 30, 40}) {
		t.Fatalf("unexpected object ids: %v", result.ObjectIDs)
	}
	want := store.LinkInput{SourceObjectID: 20, TargetObjectID: 40, Probability: 0.7, RelationType: "<=>"}
	if db.links[3] != want {
		t.Fatalf("expected %+v, got %+v", want, db.links[3])
	}
}

func TestRunIsNoOpWhenTablesExist(t *testing.T) {
	db := &mockStore{tables: []string{"anything"}}
	result, err := Run(context.Background(), db, config.DefaultFixture(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Created {
		t.Fatalf("expected no seed")
	}
	if db.ensureCalled != "" || len(db.objects) != 0 {
		t.Fatalf("store was modified: schema %q, %d objects", db.ensureCalled, len(db.objects))
	}
}

func TestRunCustomLinksTable(t *testing.T) {
	db := &mockStore{}
	if _, err := Run(context.Background(), db, config.DefaultFixture(), Options{LinksTable: "dependencies"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if db.ensureCalled != "dependencies" || db.linksTable != "dependencies" {
		t.Fatalf("expected custom links table, got schema %q inserts %q", db.ensureCalled, db.linksTable)
	}
}

func TestRunRejectsInvalidFixture(t *testing.T) {
	if _, err := Run(context.Background(), &mockStore{}, &config.Fixture{Version: 1}, Options{}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunPropagatesInsertErrors(t *testing.T) {
	_, err := Run(context.Background(), &mockStore{failLink: true}, config.DefaultFixture(), Options{})
	if err == nil || !strings.Contains(err.Error(), "seed links") {
		t.Fatalf("expected seed links error, got %v", err)
	}
}
