package querysql

import (
	"context"
	"fmt"
	"strings"

	"github.com/roach88/contactlens/internal/accounts"
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
)

// LinkedKinds resolves the data kinds an account type contributes.
// *accounts.Registry implements it.
type LinkedKinds interface {
	ForAccountType(ctx context.Context, accountType string) []accounts.MimeType
}

var standardKindTags = map[contact.StandardColumn]string{
	contact.ColumnNames:            provider.MimetypeStructuredName,
	contact.ColumnNickname:         provider.MimetypeNickname,
	contact.ColumnPhones:           provider.MimetypePhone,
	contact.ColumnMails:            provider.MimetypeEmail,
	contact.ColumnWebAddresses:     provider.MimetypeWebsite,
	contact.ColumnEvents:           provider.MimetypeEvent,
	contact.ColumnPostalAddresses:  provider.MimetypePostal,
	contact.ColumnOrganization:     provider.MimetypeOrganization,
	contact.ColumnNote:             provider.MimetypeNote,
	contact.ColumnImage:            provider.MimetypePhoto,
	contact.ColumnGroupMemberships: provider.MimetypeGroupMembership,
}

// ValidateColumns rejects column requests that cannot be served. An empty
// list is valid and means no enrichment.
func ValidateColumns(columns []contact.Column) error {
	for i, col := range columns {
		switch c := col.(type) {
		case contact.StandardColumn:
			if !c.Valid() {
				return &InputError{
					Code:    ErrCodeInvalidColumn,
					Message: fmt.Sprintf("column %d: %s is not a known column", i, c),
				}
			}
		case contact.LinkedAccountValues:
			if err := checkAccountType(i, c); err != nil {
				return err
			}
		case *contact.LinkedAccountValues:
			if c == nil {
				return &InputError{Code: ErrCodeInvalidColumn, Message: fmt.Sprintf("column %d is nil", i)}
			}
			if err := checkAccountType(i, *c); err != nil {
				return err
			}
		default:
			return &InputError{
				Code:    ErrCodeInvalidColumn,
				Message: fmt.Sprintf("column %d: unsupported column type %T", i, col),
			}
		}
	}
	return nil
}

func checkAccountType(i int, c contact.LinkedAccountValues) error {
	if strings.TrimSpace(c.AccountType) == "" {
		return &InputError{
			Code:    ErrCodeMissingAccountType,
			Message: fmt.Sprintf("column %d: linked account values need an account type", i),
		}
	}
	return nil
}

// KindTags lists the mimetypes that serve the requested columns, in
// request order without duplicates. A linked-account column whose account
// type declares no kinds contributes nothing.
func KindTags(ctx context.Context, columns []contact.Column, linked LinkedKinds) ([]string, error) {
	if err := ValidateColumns(columns); err != nil {
		return nil, err
	}

	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	for _, col := range columns {
		switch c := col.(type) {
		case contact.StandardColumn:
			add(standardKindTags[c])
		case contact.LinkedAccountValues:
			addLinked(ctx, c.AccountType, linked, add)
		case *contact.LinkedAccountValues:
			addLinked(ctx, c.AccountType, linked, add)
		}
	}
	return tags, nil
}

func addLinked(ctx context.Context, accountType string, linked LinkedKinds, add func(string)) {
	if linked == nil {
		return
	}
	for _, mt := range linked.ForAccountType(ctx, accountType) {
		add(mt.Mimetype)
	}
}

// DetailQuery selects one contact's data rows of the given kinds, in store
// row order. Values are bound, never inlined.
func DetailQuery(id contact.ID, kindTags []string) provider.Query {
	placeholders := make([]string, len(kindTags))
	args := make([]any, 0, len(kindTags)+1)
	args = append(args, int64(id))
	for i, tag := range kindTags {
		placeholders[i] = "?"
		args = append(args, tag)
	}

	return provider.Query{
		Resource:   provider.Data,
		Projection: provider.DataProjection,
		Selection: fmt.Sprintf("%s = ? AND %s IN (%s)",
			provider.ColumnContactID, provider.ColumnMimetype, strings.Join(placeholders, ", ")),
		Args:      args,
		SortOrder: provider.ColumnID + " ASC",
	}
}

// GroupsQuery lists every group with its title.
func GroupsQuery() provider.Query {
	return provider.Query{
		Resource:   provider.Groups,
		Projection: []string{provider.ColumnID, provider.ColumnGroupTitle, provider.ColumnAccountType},
		SortOrder:  provider.ColumnID + " ASC",
	}
}
