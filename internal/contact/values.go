package contact

import (
	"fmt"
	"time"
)

// NameStyle mirrors the store's full-name style hint.
type NameStyle int

const (
	NameStyleUndefined NameStyle = iota
	NameStyleWestern
	NameStyleCJK
	NameStyleChinese
	NameStyleJapanese
	NameStyleKorean
)

// Name holds the structured-name parts of a contact.
type Name struct {
	Given          string    `json:"given,omitempty"`
	Middle         string    `json:"middle,omitempty"`
	Family         string    `json:"family,omitempty"`
	Prefix         string    `json:"prefix,omitempty"`
	Suffix         string    `json:"suffix,omitempty"`
	PhoneticGiven  string    `json:"phonetic_given,omitempty"`
	PhoneticMiddle string    `json:"phonetic_middle,omitempty"`
	PhoneticFamily string    `json:"phonetic_family,omitempty"`
	Style          NameStyle `json:"style,omitempty"`
}

// Organization is the company a contact works for.
type Organization struct {
	Company    string `json:"company,omitempty"`
	Title      string `json:"title,omitempty"`
	Department string `json:"department,omitempty"`
}

// PostalAddress is a formatted address plus its trimmed components.
type PostalAddress struct {
	Formatted    string `json:"formatted"`
	Street       string `json:"street,omitempty"`
	POBox        string `json:"pobox,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	Region       string `json:"region,omitempty"`
	PostCode     string `json:"postcode,omitempty"`
	Country      string `json:"country,omitempty"`
}

// Date is a calendar date whose year may be unknown (Year == 0).
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// YearKnown reports whether the date carries a year.
func (d Date) YearKnown() bool {
	return d.Year != 0
}

// String formats as YYYY-MM-DD, or --MM-DD when the year is unknown.
func (d Date) String() string {
	if !d.YearKnown() {
		return fmt.Sprintf("--%02d-%02d", int(d.Month), d.Day)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// GroupMembership references a group row the contact belongs to.
type GroupMembership struct {
	RowID   RowID  `json:"row_id"`
	GroupID int64  `json:"group_id"`
	Title   string `json:"title,omitempty"`
}

// LinkedAccountValue is a data item contributed by a third-party account
// integration, summarized through its registry descriptor.
type LinkedAccountValue struct {
	RowID       RowID  `json:"row_id"`
	AccountType string `json:"account_type"`
	Mimetype    string `json:"mimetype"`
	Summary     string `json:"summary"`
	Detail      string `json:"detail,omitempty"`
	Icon        string `json:"icon,omitempty"`
}
