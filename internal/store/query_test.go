package store

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/roach88/contactlens/internal/provider"
)

func TestQuery_ContactsUseDeclaredCollation(t *testing.T) {
	s := createTestStore(t)
	mustInsertContact(t, s, "Zed", false)
	mustInsertContact(t, s, "amy", false)
	mustInsertContact(t, s, "Bob", false)

	rows := collect(t, s, provider.Query{Resource: provider.Contacts, Projection: provider.StubProjection})

	got := displayNames(rows)
	want := []string{"amy", "Bob", "Zed"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestQuery_SelectionAndArgs(t *testing.T) {
	s := createTestStore(t)
	alice := mustInsertContact(t, s, "Alice", true)
	mustInsertContact(t, s, "Bob", false)

	rows := collect(t, s, provider.Query{
		Resource:   provider.Contacts,
		Projection: provider.StubProjection,
		Selection:  "starred = ?",
		Args:       []any{1},
	})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if id, _ := rows[0].Int64(provider.ColumnID); id != int64(alice) {
		t.Errorf("id = %d, want %d", id, alice)
	}
	if !rows[0].Bool(provider.ColumnStarred) {
		t.Error("starred = false, want true")
	}
	if _, ok := rows[0].Lookup(provider.ColumnDisplayNameAlt); ok {
		t.Error("NULL display_name_alt should be absent from the row")
	}
}

func TestQuery_UnknownResource(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Query(context.Background(), provider.Query{Resource: provider.Authority + "/ringtones"})
	if !errors.Is(err, provider.ErrUnknownResource) {
		t.Errorf("err = %v, want ErrUnknownResource", err)
	}
}

func TestQuery_RejectsUnknownProjection(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Query(context.Background(), provider.Query{
		Resource:   provider.Contacts,
		Projection: []string{"id", "password"},
	})
	if err == nil {
		t.Fatal("expected error for unknown column")
	}
}

func TestQuery_DataRowsInIDOrder(t *testing.T) {
	s := createTestStore(t)
	id := mustInsertContact(t, s, "Alice", false)
	first := mustInsertData(t, s, id, provider.MimetypePhone, map[string]string{provider.PhoneNumber: "555-0100"})
	second := mustInsertData(t, s, id, provider.MimetypeEmail, map[string]string{provider.EmailAddress: "a@example.com"})

	rows := collect(t, s, provider.Query{
		Resource:   provider.Data,
		Projection: provider.DataProjection,
		Selection:  "contact_id = ?",
		Args:       []any{int64(id)},
	})
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if got, _ := rows[0].Int64(provider.ColumnID); got != first {
		t.Errorf("rows[0].id = %d, want %d", got, first)
	}
	if got, _ := rows[1].Int64(provider.ColumnID); got != second {
		t.Errorf("rows[1].id = %d, want %d", got, second)
	}
	if got := rows[0].String(provider.PhoneNormalized); got != "5550100" {
		t.Errorf("normalized number = %q, want 5550100", got)
	}
}

func TestQuery_EmailLookupIsCaseInsensitive(t *testing.T) {
	s := createTestStore(t)
	id := mustInsertContact(t, s, "Carol", false)
	mustInsertData(t, s, id, provider.MimetypeEmail, map[string]string{
		provider.EmailAddress: "Carol@Example.com",
		provider.EmailType:    "2",
	})
	other := mustInsertContact(t, s, "Dan", false)
	mustInsertData(t, s, other, provider.MimetypeEmail, map[string]string{provider.EmailAddress: "dan@example.com"})

	rows := collect(t, s, provider.Query{Resource: provider.EmailLookup("carol@example.com")})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
	if got := rows[0].String(provider.ColumnMatchedValue); got != "Carol@Example.com" {
		t.Errorf("matched_value = %q", got)
	}
	if got := rows[0].String(provider.ColumnMatchedType); got != "2" {
		t.Errorf("matched_type = %q, want 2", got)
	}
}

func TestQuery_EmailLookupOneRowPerContact(t *testing.T) {
	s := createTestStore(t)
	id := mustInsertContact(t, s, "Carol", false)
	mustInsertData(t, s, id, provider.MimetypeEmail, map[string]string{provider.EmailAddress: "c@example.com"})
	mustInsertData(t, s, id, provider.MimetypeEmail, map[string]string{provider.EmailAddress: "c@example.com"})

	rows := collect(t, s, provider.Query{Resource: provider.EmailLookup("c@example.com")})
	if len(rows) != 1 {
		t.Errorf("len(rows) = %d, want 1", len(rows))
	}
}

func TestQuery_PhoneLookupMatchesDigits(t *testing.T) {
	s := createTestStore(t)
	id := mustInsertContact(t, s, "Erin", false)
	mustInsertData(t, s, id, provider.MimetypePhone, map[string]string{provider.PhoneNumber: "+1 (555) 010-0199"})

	rows := collect(t, s, provider.Query{Resource: provider.PhoneLookup("15550100199")})
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}

	rows = collect(t, s, provider.Query{Resource: provider.PhoneLookup("no digits")})
	if len(rows) != 0 {
		t.Errorf("blank number matched %d rows", len(rows))
	}
}

func TestQuery_NameFilterFoldsCaseAndAccents(t *testing.T) {
	s := createTestStore(t)
	mustInsertContact(t, s, "José Álvarez", false)
	mustInsertContact(t, s, "Joanna", false)
	mustInsertContact(t, s, "100% Percent", false)

	rows := collect(t, s, provider.Query{Resource: provider.NameLookup("jose")})
	if got := displayNames(rows); !reflect.DeepEqual(got, []string{"José Álvarez"}) {
		t.Errorf("jose matched %v", got)
	}

	rows = collect(t, s, provider.Query{Resource: provider.NameLookup("JO")})
	if got := displayNames(rows); !reflect.DeepEqual(got, []string{"Joanna", "José Álvarez"}) {
		t.Errorf("JO matched %v", got)
	}

	rows = collect(t, s, provider.Query{Resource: provider.NameLookup("%")})
	if got := displayNames(rows); !reflect.DeepEqual(got, []string{"100% Percent"}) {
		t.Errorf("%% should match literally, got %v", got)
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("+44 20-7946 0958"); got != "442079460958" {
		t.Errorf("NormalizePhone = %q", got)
	}
	if got := NormalizePhone("ext."); got != "" {
		t.Errorf("NormalizePhone = %q, want empty", got)
	}
}
