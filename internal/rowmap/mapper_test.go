package rowmap

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/eventdate"
	"github.com/roach88/contactlens/internal/label"
	"github.com/roach88/contactlens/internal/provider"
)

type fakePhotos struct {
	data    map[contact.ID]string
	err     error
	highRes []bool
}

func (f *fakePhotos) OpenPhoto(_ context.Context, id contact.ID, highRes bool) (io.ReadCloser, error) {
	f.highRes = append(f.highRes, highRes)
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.data[id]
	if !ok {
		return nil, provider.ErrNoPhoto
	}
	return io.NopCloser(strings.NewReader(d)), nil
}

func testMapper() Mapper {
	return Mapper{
		Registry: accounts.NewRegistry(accounts.StaticResolver{
			{AccountType: "com.example.chat", Kinds: []accounts.DataKind{
				{Mimetype: "vnd.example/profile", Icon: "chat", SummaryColumn: "data2", DetailColumn: "data3"},
			}},
		}),
		Dates: eventdate.Default,
	}
}

func mapRow(t *testing.T, m Mapper, tag string, row provider.Row) (Fragment, bool) {
	t.Helper()
	return m.Map(context.Background(), 1, tag, row)
}

func TestMap_Phone(t *testing.T) {
	frag, ok := mapRow(t, testMapper(), provider.MimetypePhone, provider.Row{
		"id": "10", "data1": " 555-0100 ", "data2": "2",
	})
	require.True(t, ok)
	assert.Equal(t, PhoneFragment{Value: contact.NewLabeled("555-0100", label.Mobile, 10)}, frag)
}

func TestMap_BlankPrimaryValueSkipped(t *testing.T) {
	m := testMapper()
	for _, tag := range []string{provider.MimetypePhone, provider.MimetypeEmail, provider.MimetypeWebsite, provider.MimetypePostal} {
		t.Run(tag, func(t *testing.T) {
			_, ok := mapRow(t, m, tag, provider.Row{"id": "1", "data1": "   ", "data2": "1"})
			assert.False(t, ok)
			_, ok = mapRow(t, m, tag, provider.Row{"id": "1", "data2": "1"})
			assert.False(t, ok)
		})
	}
}

func TestMap_BlankLabelCodeUsesDefault(t *testing.T) {
	frag, ok := mapRow(t, testMapper(), provider.MimetypeEmail, provider.Row{"id": "3", "data1": "a@example.com"})
	require.True(t, ok)
	assert.Equal(t, label.Other, frag.(EmailFragment).Value.Label)
}

func TestMap_CustomLabel(t *testing.T) {
	frag, ok := mapRow(t, testMapper(), provider.MimetypeWebsite, provider.Row{
		"id": "4", "data1": "https://example.com", "data2": "0", "data3": "Portfolio",
	})
	require.True(t, ok)
	assert.Equal(t, label.Custom("Portfolio"), frag.(WebsiteFragment).Value.Label)
}

func TestMap_MalformedRowsSkipped(t *testing.T) {
	m := testMapper()
	testCases := []struct {
		name string
		row  provider.Row
	}{
		{"type code not integer", provider.Row{"id": "1", "data1": "555", "data2": "mobile"}},
		{"type code beyond int32", provider.Row{"id": "1", "data1": "555", "data2": "4294967296"}},
		{"missing id", provider.Row{"data1": "555", "data2": "2"}},
		{"id not integer", provider.Row{"id": "x", "data1": "555", "data2": "2"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := mapRow(t, m, provider.MimetypePhone, tc.row)
			assert.False(t, ok)
		})
	}
}

func TestMap_UnknownTypeCodeIsOther(t *testing.T) {
	frag, ok := mapRow(t, testMapper(), provider.MimetypePhone, provider.Row{"id": "1", "data1": "555", "data2": "999"})
	require.True(t, ok)
	assert.Equal(t, label.Other, frag.(PhoneFragment).Value.Label)
}

func TestMap_PostalTrimsSubFields(t *testing.T) {
	frag, ok := mapRow(t, testMapper(), provider.MimetypePostal, provider.Row{
		"id": "7", "data1": " 1 Main St\nSpringfield ", "data2": "1",
		"data4": "  1 Main St ", "data7": "\tSpringfield", "data10": " US ",
	})
	require.True(t, ok)
	assert.Equal(t, PostalFragment{Value: contact.NewLabeled(contact.PostalAddress{
		Formatted: "1 Main St\nSpringfield",
		Street:    "1 Main St",
		City:      "Springfield",
		Country:   "US",
	}, label.Home, 7)}, frag)
}

func TestMap_Event(t *testing.T) {
	m := testMapper()

	frag, ok := mapRow(t, m, provider.MimetypeEvent, provider.Row{"id": "8", "data1": "1990-04-17", "data2": "3"})
	require.True(t, ok)
	assert.Equal(t, EventFragment{Value: contact.NewLabeled(
		contact.Date{Year: 1990, Month: time.April, Day: 17}, label.Birthday, 8)}, frag)

	_, ok = mapRow(t, m, provider.MimetypeEvent, provider.Row{"id": "9", "data1": "someday", "data2": "3"})
	assert.False(t, ok, "unparseable dates are dropped")

	m.Dates = nil
	_, ok = mapRow(t, m, provider.MimetypeEvent, provider.Row{"id": "8", "data1": "1990-04-17"})
	assert.False(t, ok)
}

func TestMap_StructuredNameAlwaysCaptured(t *testing.T) {
	m := testMapper()

	frag, ok := mapRow(t, m, provider.MimetypeStructuredName, provider.Row{"id": "1"})
	require.True(t, ok)
	assert.Equal(t, NameFragment{}, frag)

	frag, ok = mapRow(t, m, provider.MimetypeStructuredName, provider.Row{
		"id": "1", "data2": "Ada", "data3": "Lovelace", "data4": "Lady", "data5": "King",
		"data6": "", "data7": "ay-da", "data10": "1",
	})
	require.True(t, ok)
	assert.Equal(t, NameFragment{Name: contact.Name{
		Given: "Ada", Family: "Lovelace", Prefix: "Lady", Middle: "King",
		PhoneticGiven: "ay-da", Style: contact.NameStyleWestern,
	}}, frag)

	frag, ok = mapRow(t, m, provider.MimetypeStructuredName, provider.Row{"data2": "X", "data10": "42"})
	require.True(t, ok)
	assert.Equal(t, contact.NameStyleUndefined, frag.(NameFragment).Name.Style)
}

func TestMap_OrganizationAlwaysCaptured(t *testing.T) {
	frag, ok := mapRow(t, testMapper(), provider.MimetypeOrganization, provider.Row{"data4": " Engineer "})
	require.True(t, ok)
	assert.Equal(t, OrganizationFragment{Organization: contact.Organization{Title: "Engineer"}}, frag)
}

func TestMap_NicknameAndNote(t *testing.T) {
	m := testMapper()

	frag, ok := mapRow(t, m, provider.MimetypeNickname, provider.Row{"id": "1", "data1": "Ace"})
	require.True(t, ok)
	assert.Equal(t, NicknameFragment{Nickname: "Ace"}, frag)

	_, ok = mapRow(t, m, provider.MimetypeNickname, provider.Row{"id": "1", "data1": " "})
	assert.False(t, ok)

	frag, ok = mapRow(t, m, provider.MimetypeNote, provider.Row{"id": "2", "data1": "met at conf"})
	require.True(t, ok)
	assert.Equal(t, NoteFragment{Note: "met at conf"}, frag)
}

func TestMap_GroupMembership(t *testing.T) {
	m := testMapper()
	m.GroupTitles = map[int64]string{4: "Friends"}

	frag, ok := mapRow(t, m, provider.MimetypeGroupMembership, provider.Row{"id": "11", "data1": "4"})
	require.True(t, ok)
	assert.Equal(t, GroupFragment{Membership: contact.GroupMembership{
		RowID: contact.Row(11), GroupID: 4, Title: "Friends",
	}}, frag)

	frag, ok = mapRow(t, m, provider.MimetypeGroupMembership, provider.Row{"id": "12", "data1": "5"})
	require.True(t, ok)
	assert.Empty(t, frag.(GroupFragment).Membership.Title)

	_, ok = mapRow(t, m, provider.MimetypeGroupMembership, provider.Row{"id": "13", "data1": "friends"})
	assert.False(t, ok)
	_, ok = mapRow(t, m, provider.MimetypeGroupMembership, provider.Row{"id": "?", "data1": "4"})
	assert.False(t, ok)
}

func TestMap_LinkedAccount(t *testing.T) {
	m := testMapper()

	frag, ok := mapRow(t, m, "vnd.example/profile", provider.Row{
		"id": "20", "account_type": "com.example.chat", "data1": "ignored", "data2": "@alice", "data3": "Message",
	})
	require.True(t, ok)
	assert.Equal(t, LinkedFragment{Value: contact.LinkedAccountValue{
		RowID:       contact.Row(20),
		AccountType: "com.example.chat",
		Mimetype:    "vnd.example/profile",
		Summary:     "@alice",
		Detail:      "Message",
		Icon:        "chat",
	}}, frag)

	_, ok = mapRow(t, m, "vnd.example/profile", provider.Row{"id": "21", "data2": ""})
	assert.False(t, ok, "blank summary is skipped")
}

func TestMap_UnknownKindIgnored(t *testing.T) {
	_, ok := mapRow(t, testMapper(), "vnd.unknown/thing", provider.Row{"id": "1", "data1": "x"})
	assert.False(t, ok)

	m := testMapper()
	m.Registry = nil
	_, ok = mapRow(t, m, "vnd.example/profile", provider.Row{"id": "1", "data2": "x"})
	assert.False(t, ok)
}

func TestMap_Photo(t *testing.T) {
	photos := &fakePhotos{data: map[contact.ID]string{1: "\x89PNG"}}
	m := testMapper()
	m.Photos = photos
	m.HighResPhotos = true

	frag, ok := mapRow(t, m, provider.MimetypePhoto, provider.Row{"id": "30"})
	require.True(t, ok)
	assert.Equal(t, PhotoFragment{Data: []byte("\x89PNG")}, frag)
	assert.Equal(t, []bool{true}, photos.highRes)

	_, ok = m.Map(context.Background(), 2, provider.MimetypePhoto, provider.Row{"id": "31"})
	assert.False(t, ok, "absent stream is not an error")

	photos.err = errors.New("disk gone")
	_, ok = mapRow(t, m, provider.MimetypePhoto, provider.Row{"id": "30"})
	assert.False(t, ok)

	m.Photos = nil
	_, ok = mapRow(t, m, provider.MimetypePhoto, provider.Row{"id": "30"})
	assert.False(t, ok)
}

func TestResolveKind(t *testing.T) {
	ctx := context.Background()
	reg := testMapper().Registry

	k, ok := ResolveKind(ctx, provider.MimetypePhone, "", reg)
	require.True(t, ok)
	assert.Equal(t, KindPhone, k)
	assert.Equal(t, provider.MimetypePhone, k.Tag())

	k, ok = ResolveKind(ctx, "vnd.example/profile", "", reg)
	require.True(t, ok)
	linked, isLinked := k.(Linked)
	require.True(t, isLinked)
	assert.Equal(t, "com.example.chat", linked.Descriptor.AccountType)

	_, ok = ResolveKind(ctx, "vnd.none/none", "", reg)
	assert.False(t, ok)

	for kind, tag := range standardTags {
		got, ok := ResolveKind(ctx, tag, "", nil)
		require.True(t, ok)
		assert.Equal(t, kind, got)
	}
}
