package contact

import (
	"fmt"
	"strings"
)

// Column is a sealed interface over the fetchable field groups.
//
// StandardColumn covers the closed set; LinkedAccountValues is the open
// variant parameterized by an external account type.
type Column interface {
	columnNode() // Sealed - only types in this package implement it
	String() string
}

// StandardColumn is one of the closed, well-known column groups.
type StandardColumn int

const (
	ColumnNames StandardColumn = iota + 1
	ColumnNickname
	ColumnPhones
	ColumnMails
	ColumnWebAddresses
	ColumnEvents
	ColumnPostalAddresses
	ColumnOrganization
	ColumnNote
	ColumnImage
	ColumnGroupMemberships
)

func (StandardColumn) columnNode() {}

var standardColumnNames = map[StandardColumn]string{
	ColumnNames:            "names",
	ColumnNickname:         "nickname",
	ColumnPhones:           "phones",
	ColumnMails:            "mails",
	ColumnWebAddresses:     "web_addresses",
	ColumnEvents:           "events",
	ColumnPostalAddresses:  "postal_addresses",
	ColumnOrganization:     "organization",
	ColumnNote:             "note",
	ColumnImage:            "image",
	ColumnGroupMemberships: "group_memberships",
}

// AllStandardColumns lists the closed set in declaration order.
var AllStandardColumns = []StandardColumn{
	ColumnNames, ColumnNickname, ColumnPhones, ColumnMails, ColumnWebAddresses, ColumnEvents,
	ColumnPostalAddresses, ColumnOrganization, ColumnNote, ColumnImage, ColumnGroupMemberships,
}

func (c StandardColumn) String() string {
	if name, ok := standardColumnNames[c]; ok {
		return name
	}
	return fmt.Sprintf("column(%d)", int(c))
}

// Valid reports whether c is a member of the closed set.
func (c StandardColumn) Valid() bool {
	_, ok := standardColumnNames[c]
	return ok
}

// MarshalText implements encoding.TextMarshaler.
func (c StandardColumn) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// LinkedAccountValues requests the data kinds an account type contributes.
type LinkedAccountValues struct {
	AccountType string
}

func (LinkedAccountValues) columnNode() {}

const linkedPrefix = "linked:"

func (c LinkedAccountValues) String() string {
	return linkedPrefix + c.AccountType
}

// MarshalText implements encoding.TextMarshaler.
func (c LinkedAccountValues) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseColumn parses the String form of a column.
func ParseColumn(s string) (Column, error) {
	s = strings.TrimSpace(s)
	if accountType, ok := strings.CutPrefix(s, linkedPrefix); ok {
		if accountType == "" {
			return nil, fmt.Errorf("column %q: missing account type", s)
		}
		return LinkedAccountValues{AccountType: accountType}, nil
	}
	for c, name := range standardColumnNames {
		if name == s {
			return c, nil
		}
	}
	return nil, fmt.Errorf("unknown column %q", s)
}

// HasColumn reports whether cols contains c.
func HasColumn(cols []Column, c Column) bool {
	for _, existing := range cols {
		if existing == c {
			return true
		}
	}
	return false
}
