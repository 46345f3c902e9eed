package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustInsertContact inserts a contact and fails the test on error.
func mustInsertContact(t *testing.T, s *Store, name string, starred bool) contact.ID {
	t.Helper()
	id, err := s.InsertContact(context.Background(), ContactRecord{DisplayName: name, Starred: starred})
	if err != nil {
		t.Fatalf("InsertContact(%q) failed: %v", name, err)
	}
	return id
}

// mustInsertData inserts a data row and fails the test on error.
func mustInsertData(t *testing.T, s *Store, id contact.ID, mimetype string, values map[string]string) int64 {
	t.Helper()
	rowID, err := s.InsertData(context.Background(), DataRecord{ContactID: id, Mimetype: mimetype, Values: values})
	if err != nil {
		t.Fatalf("InsertData(%s) failed: %v", mimetype, err)
	}
	return rowID
}

// collect runs a query and drains the cursor.
func collect(t *testing.T, s *Store, q provider.Query) []provider.Row {
	t.Helper()
	cur, err := s.Query(context.Background(), q)
	if err != nil {
		t.Fatalf("Query(%s) failed: %v", q.Resource, err)
	}
	rows, err := provider.Collect(cur)
	if err != nil {
		t.Fatalf("Collect(%s) failed: %v", q.Resource, err)
	}
	return rows
}

func displayNames(rows []provider.Row) []string {
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.String(provider.ColumnDisplayName)
	}
	return names
}
