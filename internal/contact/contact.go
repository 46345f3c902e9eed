package contact

// Stub is the minimal record a base query or coarse lookup returns.
//
// Matched is set by email and phone lookups and carries the value that
// matched, without a row id.
type Stub struct {
	ID             ID
	DisplayName    string
	DisplayNameAlt string
	Starred        bool
	Matched        *MatchedValue
}

// MatchKind tells which collection a coarse lookup value belongs to.
type MatchKind int

const (
	MatchEmail MatchKind = iota + 1
	MatchPhone
)

// MatchedValue is the value a coarse lookup matched on.
type MatchedValue struct {
	Kind  MatchKind
	Value LabeledValue[string]
}

// PartialContact is the aggregate built for one contact in one query cycle.
type PartialContact struct {
	ID             ID     `json:"id"`
	DisplayName    string `json:"display_name"`
	DisplayNameAlt string `json:"display_name_alt,omitempty"`
	Starred        bool   `json:"starred"`

	Name         Name         `json:"name"`
	Nickname     string       `json:"nickname,omitempty"`
	Organization Organization `json:"organization"`
	Note         string       `json:"note,omitempty"`
	ImageData    []byte       `json:"image_data,omitempty"`

	Phones              []LabeledValue[string]        `json:"phones,omitempty"`
	Emails              []LabeledValue[string]        `json:"emails,omitempty"`
	WebAddresses        []LabeledValue[string]        `json:"web_addresses,omitempty"`
	PostalAddresses     []LabeledValue[PostalAddress] `json:"postal_addresses,omitempty"`
	Events              []LabeledValue[Date]          `json:"events,omitempty"`
	GroupMemberships    []GroupMembership             `json:"group_memberships,omitempty"`
	LinkedAccountValues []LinkedAccountValue          `json:"linked_account_values,omitempty"`

	// Columns is the requested column set, verbatim.
	Columns []Column `json:"columns"`
}

// FromStub creates a contact carrying only the stub fields.
func FromStub(s Stub, columns []Column) PartialContact {
	pc := PartialContact{
		ID:             s.ID,
		DisplayName:    s.DisplayName,
		DisplayNameAlt: s.DisplayNameAlt,
		Starred:        s.Starred,
		Columns:        columns,
	}
	if s.Matched != nil {
		switch s.Matched.Kind {
		case MatchEmail:
			pc.Emails = append(pc.Emails, s.Matched.Value)
		case MatchPhone:
			pc.Phones = append(pc.Phones, s.Matched.Value)
		}
	}
	return pc
}

// Requested reports whether column c was part of the query.
func (pc PartialContact) Requested(c Column) bool {
	return HasColumn(pc.Columns, c)
}

// IDs returns the contact ids in list order.
func IDs(contacts []PartialContact) []ID {
	ids := make([]ID, len(contacts))
	for i, c := range contacts {
		ids[i] = c.ID
	}
	return ids
}
