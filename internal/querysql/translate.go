package querysql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/label"
	"github.com/roach88/contactlens/internal/predicate"
	"github.com/roach88/contactlens/internal/provider"
)

// Translate converts a predicate into a base query returning contact stubs.
//
// Every query is sorted by display name under the store's collation. The
// output is a pure function of the predicate: equal predicates yield equal
// queries.
//
// Id and starred filters are inlined as integer literals; they come from
// typed fields and cannot carry SQL. String keys never enter the selection
// and travel as lookup endpoint path segments instead.
func Translate(p predicate.Predicate) (provider.Query, error) {
	if err := predicate.Validate(p); err != nil {
		return provider.Query{}, &InputError{
			Code:    ErrCodeInvalidPredicate,
			Message: fmt.Sprintf("cannot translate %v", p),
			Err:     err,
		}
	}

	q := provider.Query{
		Projection: provider.StubProjection,
		SortOrder:  provider.DisplayNameOrder,
	}

	switch pred := predicate.Normalize(p).(type) {
	case predicate.All:
		q.Resource = provider.Contacts
	case predicate.ByIDsOrFavorite:
		q.Resource = provider.Contacts
		q.Selection = idsOrFavoriteSelection(pred)
	case predicate.ByEmail:
		q.Resource = provider.EmailLookup(pred.Address)
	case predicate.ByPhone:
		q.Resource = provider.PhoneLookup(pred.Number)
	case predicate.ByNameSubstring:
		q.Resource = provider.NameLookup(pred.Text)
	default:
		return provider.Query{}, &InputError{
			Code:    ErrCodeInvalidPredicate,
			Message: fmt.Sprintf("unsupported predicate type %T", p),
		}
	}
	return q, nil
}

// idsOrFavoriteSelection builds "id IN (...) AND starred = n", leaving out
// whichever clause is unset. Ids keep their given order.
func idsOrFavoriteSelection(p predicate.ByIDsOrFavorite) string {
	var clauses []string
	if len(p.IDs) > 0 {
		ids := make([]string, len(p.IDs))
		for i, id := range p.IDs {
			ids[i] = strconv.FormatInt(int64(id), 10)
		}
		clauses = append(clauses, provider.ColumnID+" IN ("+strings.Join(ids, ",")+")")
	}
	if p.Favorite != nil {
		starred := "0"
		if *p.Favorite {
			starred = "1"
		}
		clauses = append(clauses, provider.ColumnStarred+" = "+starred)
	}
	return strings.Join(clauses, " AND ")
}

// StubFromRow decodes a row returned by a translated query. Rows from the
// email and phone lookups carry the matched value, which is attached
// without a row id. ok is false when the row has no integer id.
func StubFromRow(resource provider.Resource, row provider.Row) (stub contact.Stub, ok bool) {
	id, ok := row.Int64(provider.ColumnID)
	if !ok {
		return contact.Stub{}, false
	}
	stub = contact.Stub{
		ID:             contact.ID(id),
		DisplayName:    row.String(provider.ColumnDisplayName),
		DisplayNameAlt: row.String(provider.ColumnDisplayNameAlt),
		Starred:        row.Bool(provider.ColumnStarred),
	}

	base, _, isLookup := resource.SplitFilter()
	if !isLookup {
		return stub, true
	}
	var kind contact.MatchKind
	var labelKind label.Kind
	switch base {
	case provider.EmailFilter:
		kind, labelKind = contact.MatchEmail, label.KindEmail
	case provider.PhoneFilter:
		kind, labelKind = contact.MatchPhone, label.KindPhone
	default:
		return stub, true
	}
	value := row.Trimmed(provider.ColumnMatchedValue)
	if value == "" {
		return stub, true
	}
	l, _ := label.ResolveRaw(labelKind, row.String(provider.ColumnMatchedType), row.String(provider.ColumnMatchedLabel))
	stub.Matched = &contact.MatchedValue{
		Kind:  kind,
		Value: contact.LabeledValue[string]{Value: value, Label: l},
	}
	return stub, true
}
