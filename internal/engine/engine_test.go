package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/label"
	"github.com/roach88/contactlens/internal/predicate"
	"github.com/roach88/contactlens/internal/provider"
	"github.com/roach88/contactlens/internal/provider/providertest"
	"github.com/roach88/contactlens/internal/querysql"
	"github.com/roach88/contactlens/internal/store"
	"github.com/roach88/contactlens/internal/testutil"
)

// setupTestStore creates a temporary SQLite store.
func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return testutil.NewStore(t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(s provider.Store, opts ...Option) *Orchestrator {
	reg := accounts.NewRegistry(accounts.StaticResolver{
		{AccountType: "com.example.chat", Kinds: []accounts.DataKind{
			{Mimetype: "vnd.example/profile", Icon: "chat", SummaryColumn: "data2", DetailColumn: "data3"},
		}},
	}, accounts.WithLogger(quietLogger()))
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	return New(s, reg, opts...)
}

func addContact(t *testing.T, s *store.Store, id contact.ID, name string, starred bool) {
	t.Helper()
	_, err := s.InsertContact(context.Background(), store.ContactRecord{ID: id, DisplayName: name, Starred: starred})
	require.NoError(t, err)
}

func addData(t *testing.T, s *store.Store, id contact.ID, mimetype string, values map[string]string) int64 {
	t.Helper()
	rowID, err := s.InsertData(context.Background(), store.DataRecord{ContactID: id, Mimetype: mimetype, Values: values})
	require.NoError(t, err)
	return rowID
}

func TestQuery_IDsOrFavoriteEndToEnd(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "Alice", true)
	addContact(t, s, 2, "Bob", false)
	addContact(t, s, 3, "Carol", true)

	p := predicate.ByIDsOrFavorite{IDs: []contact.ID{1, 2}, Favorite: predicate.Favorite(true)}
	q, err := querysql.Translate(p)
	require.NoError(t, err)
	assert.Equal(t, "id IN (1,2) AND starred = 1", q.Selection)

	got, err := newTestOrchestrator(s).Query(context.Background(), p, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, contact.ID(1), got[0].ID)
	assert.Equal(t, "Alice", got[0].DisplayName)
	assert.True(t, got[0].Starred)
}

func TestQuery_AllUsesStoreCollation(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "Zed", false)
	addContact(t, s, 2, "amy", false)
	addContact(t, s, 3, "Bob", false)

	got, err := newTestOrchestrator(s).Query(context.Background(), predicate.All{}, nil)
	require.NoError(t, err)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.DisplayName
	}
	assert.Equal(t, []string{"amy", "Bob", "Zed"}, names)
}

func TestQuery_EnrichesRequestedColumns(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "Ada Lovelace", false)
	phoneRow := addData(t, s, 1, provider.MimetypePhone, map[string]string{"data1": "555-0100", "data2": "2"})
	addData(t, s, 1, provider.MimetypePhone, map[string]string{"data1": "  ", "data2": "1"})
	addData(t, s, 1, provider.MimetypeStructuredName, map[string]string{"data2": "Ada", "data3": "Lovelace"})
	addData(t, s, 1, provider.MimetypeNote, map[string]string{"data1": "not requested"})
	addData(t, s, 1, provider.MimetypeEmail, map[string]string{"data1": "ada@example.com", "data2": "1"})

	columns := []contact.Column{contact.ColumnPhones, contact.ColumnNames}
	got, err := newTestOrchestrator(s).Query(context.Background(), predicate.All{}, columns)
	require.NoError(t, err)
	require.Len(t, got, 1)

	c := got[0]
	assert.Equal(t, columns, c.Columns)
	assert.Equal(t, []contact.LabeledValue[string]{contact.NewLabeled("555-0100", label.Mobile, phoneRow)}, c.Phones)
	assert.Equal(t, contact.Name{Given: "Ada", Family: "Lovelace"}, c.Name)
	assert.Empty(t, c.Note, "note was not requested")
	assert.Empty(t, c.Emails, "mails were not requested")
}

func TestQuery_NoColumnsSkipsDetailQueries(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "Alice", false)
	addData(t, s, 1, provider.MimetypePhone, map[string]string{"data1": "555"})
	hooked := providertest.Wrap(s)

	got, err := newTestOrchestrator(hooked).Query(context.Background(), predicate.All{}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Empty(t, got[0].Phones)
	assert.Equal(t, 0, hooked.CountResource(provider.Data))
}

func TestQuery_PhotoAbsenceYieldsNilImage(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	addContact(t, s, 1, "Has Photo", false)
	addContact(t, s, 2, "No Photo", false)
	addContact(t, s, 3, "Row Without Stream", false)
	addData(t, s, 1, provider.MimetypePhoto, nil)
	addData(t, s, 3, provider.MimetypePhoto, nil)
	require.NoError(t, s.SetPhoto(ctx, 1, []byte("thumb"), []byte("full")))

	got, err := newTestOrchestrator(s).Query(ctx, predicate.All{}, []contact.Column{contact.ColumnImage})
	require.NoError(t, err)
	require.Len(t, got, 3)

	byID := make(map[contact.ID]contact.PartialContact)
	for _, c := range got {
		byID[c.ID] = c
	}
	assert.Equal(t, []byte("full"), byID[1].ImageData)
	assert.Nil(t, byID[2].ImageData)
	assert.Nil(t, byID[3].ImageData)

	got, err = newTestOrchestrator(s, WithHighResPhotos(false)).Query(ctx,
		predicate.ByIDsOrFavorite{IDs: []contact.ID{1}}, []contact.Column{contact.ColumnImage})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("thumb"), got[0].ImageData)
}

func TestQuery_FanoutPreservesStubOrder(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 5, "Amy", false)
	addContact(t, s, 2, "Bob", false)
	addContact(t, s, 9, "Cy", false)
	for _, id := range []contact.ID{5, 2, 9} {
		addData(t, s, id, provider.MimetypePhone, map[string]string{"data1": "555-000" + id.String()})
	}

	// The first stub finishes last.
	delays := map[contact.ID]time.Duration{5: 150 * time.Millisecond, 2: 50 * time.Millisecond, 9: 0}
	var mu sync.Mutex
	var completed []contact.ID
	hooked := providertest.Wrap(s)
	hooked.SetHook(func(ctx context.Context, q provider.Query) error {
		id, ok := providertest.ContactIDArg(q)
		if !ok {
			return nil
		}
		time.Sleep(delays[id])
		mu.Lock()
		completed = append(completed, id)
		mu.Unlock()
		return nil
	})

	got, err := newTestOrchestrator(hooked, WithFanout(3)).Query(context.Background(), predicate.All{}, []contact.Column{contact.ColumnPhones})
	require.NoError(t, err)

	assert.Equal(t, []contact.ID{5, 2, 9}, contact.IDs(got))
	for _, c := range got {
		require.Len(t, c.Phones, 1)
		assert.Equal(t, "555-000"+c.ID.String(), c.Phones[0].Value)
	}
	mu.Lock()
	assert.Equal(t, []contact.ID{9, 2, 5}, completed, "detail queries ran concurrently")
	mu.Unlock()
}

func TestQuery_DetailFailureKeepsStub(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "Alice", true)
	addData(t, s, 1, provider.MimetypePhone, map[string]string{"data1": "555"})
	hooked := providertest.Wrap(s)
	hooked.SetHook(func(ctx context.Context, q provider.Query) error {
		if q.Resource == provider.Data {
			return errors.New("data table locked")
		}
		return nil
	})

	got, err := newTestOrchestrator(hooked).Query(context.Background(), predicate.All{}, []contact.Column{contact.ColumnPhones})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].DisplayName)
	assert.Empty(t, got[0].Phones)
}

func TestQuery_BaseFailureReturnsQueryError(t *testing.T) {
	hooked := providertest.Wrap(setupTestStore(t))
	storeErr := errors.New("provider crashed")
	hooked.SetHook(func(context.Context, provider.Query) error { return storeErr })

	_, err := newTestOrchestrator(hooked).Query(context.Background(), predicate.All{}, nil)
	require.Error(t, err)
	assert.True(t, IsQueryError(err))
	assert.ErrorIs(t, err, storeErr)

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, ErrCodeQueryFailed, qe.Code)
	assert.Equal(t, provider.Contacts, qe.Resource)
}

func TestQuery_InputErrors(t *testing.T) {
	o := newTestOrchestrator(setupTestStore(t))
	ctx := context.Background()

	_, err := o.Query(ctx, predicate.ByIDsOrFavorite{}, nil)
	assert.True(t, querysql.IsInputError(err))
	assert.ErrorIs(t, err, predicate.ErrEmpty)

	_, err = o.Query(ctx, predicate.All{}, []contact.Column{contact.LinkedAccountValues{}})
	assert.True(t, querysql.IsInputError(err))

	_, err = o.Query(ctx, nil, nil)
	assert.True(t, querysql.IsInputError(err))
}

func TestQuery_EmailLookupCarriesMatchedValue(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "Alice", false)
	addContact(t, s, 2, "Bob", false)
	emailRow := addData(t, s, 1, provider.MimetypeEmail, map[string]string{"data1": "alice@example.com", "data2": "2"})
	addData(t, s, 2, provider.MimetypeEmail, map[string]string{"data1": "bob@example.com"})
	o := newTestOrchestrator(s)
	ctx := context.Background()

	got, err := o.Query(ctx, predicate.ByEmail{Address: "ALICE@example.com"}, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, contact.ID(1), got[0].ID)
	assert.Equal(t, []contact.LabeledValue[string]{{Value: "alice@example.com", Label: label.Work}}, got[0].Emails)

	got, err = o.Query(ctx, predicate.ByEmail{Address: "alice@example.com"}, []contact.Column{contact.ColumnMails})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []contact.LabeledValue[string]{contact.NewLabeled("alice@example.com", label.Work, emailRow)}, got[0].Emails)
}

func TestQuery_PhoneAndNameLookups(t *testing.T) {
	s := setupTestStore(t)
	addContact(t, s, 1, "José Martínez", false)
	addContact(t, s, 2, "Bob", false)
	addData(t, s, 2, provider.MimetypePhone, map[string]string{"data1": "+1 (555) 010-0200", "data2": "2"})
	o := newTestOrchestrator(s)
	ctx := context.Background()

	got, err := o.Query(ctx, predicate.ByPhone{Number: "15550100200"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []contact.ID{2}, contact.IDs(got))
	require.Len(t, got[0].Phones, 1)
	assert.False(t, got[0].Phones[0].RowID.Valid)

	got, err = o.Query(ctx, predicate.ByNameSubstring{Text: "jose"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []contact.ID{1}, contact.IDs(got))
}

func TestQuery_GroupTitlesAndLinkedAccounts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	addContact(t, s, 1, "Alice", false)
	_, err := s.InsertGroup(ctx, 7, "Friends", "")
	require.NoError(t, err)
	groupRow := addData(t, s, 1, provider.MimetypeGroupMembership, map[string]string{"data1": "7"})
	linkedRow, err := s.InsertData(ctx, store.DataRecord{
		ContactID:   1,
		AccountType: "com.example.chat",
		Mimetype:    "vnd.example/profile",
		Values:      map[string]string{"data2": "@alice", "data3": "Message @alice"},
	})
	require.NoError(t, err)
	addData(t, s, 1, "vnd.unknown/kind", map[string]string{"data1": "ignored"})

	columns := []contact.Column{
		contact.ColumnGroupMemberships,
		contact.LinkedAccountValues{AccountType: "com.example.chat"},
	}
	got, err := newTestOrchestrator(s).Query(ctx, predicate.All{}, columns)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, []contact.GroupMembership{{RowID: contact.Row(groupRow), GroupID: 7, Title: "Friends"}}, got[0].GroupMemberships)
	assert.Equal(t, []contact.LinkedAccountValue{{
		RowID:       contact.Row(linkedRow),
		AccountType: "com.example.chat",
		Mimetype:    "vnd.example/profile",
		Summary:     "@alice",
		Detail:      "Message @alice",
		Icon:        "chat",
	}}, got[0].LinkedAccountValues)
}

func TestQuery_LinkedAccountCannotClaimStandardKind(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	addContact(t, s, 1, "Alice", false)
	addData(t, s, 1, provider.MimetypePhone, map[string]string{"data1": "555-0100", "data2": "2"})

	reg := accounts.NewRegistry(accounts.StaticResolver{
		{AccountType: "com.example.rogue", Kinds: []accounts.DataKind{{Mimetype: provider.MimetypePhone}}},
	}, accounts.WithLogger(quietLogger()))
	o := New(s, reg, WithLogger(quietLogger()))

	columns := []contact.Column{contact.LinkedAccountValues{AccountType: "com.example.rogue"}}
	got, err := o.Query(ctx, predicate.All{}, columns)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Empty(t, got[0].Phones, "phones were not requested")
	assert.Empty(t, got[0].LinkedAccountValues)
	assert.Equal(t, columns, got[0].Columns)
}
