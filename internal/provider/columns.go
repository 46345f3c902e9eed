package provider

// Contact-level columns.
const (
	ColumnID             = "id"
	ColumnDisplayName    = "display_name"
	ColumnDisplayNameAlt = "display_name_alt"
	ColumnStarred        = "starred"
	ColumnLookupKey      = "lookup_key"
)

// Data-row columns. data1..data10 are generic; their meaning depends on the
// row's mimetype.
const (
	ColumnContactID    = "contact_id"
	ColumnRawContactID = "raw_contact_id"
	ColumnAccountType  = "account_type"
	ColumnMimetype     = "mimetype"
	Data1              = "data1"
	Data2              = "data2"
	Data3              = "data3"
	Data4              = "data4"
	Data5              = "data5"
	Data6              = "data6"
	Data7              = "data7"
	Data8              = "data8"
	Data9              = "data9"
	Data10             = "data10"
)

// Group columns.
const (
	ColumnGroupTitle = "title"
)

// DisplayNameOrder is the store-declared collation for contact lists.
const DisplayNameOrder = ColumnDisplayName + " COLLATE NOCASE ASC"

// StubProjection is what base queries and lookups return.
var StubProjection = []string{ColumnID, ColumnDisplayName, ColumnDisplayNameAlt, ColumnStarred}

// DataProjection is what per-contact detail queries return.
var DataProjection = []string{
	ColumnID, ColumnContactID, ColumnRawContactID, ColumnAccountType, ColumnMimetype,
	Data1, Data2, Data3, Data4, Data5, Data6, Data7, Data8, Data9, Data10,
}

// Lookup endpoints add the matched value to the stub projection.
const (
	ColumnMatchedValue = "matched_value"
	ColumnMatchedType  = "matched_type"
	ColumnMatchedLabel = "matched_label"
)

// Generic column aliases for the standard kinds.
const (
	PhoneNumber     = Data1
	PhoneType       = Data2
	PhoneLabel      = Data3
	PhoneNormalized = Data4

	EmailAddress = Data1
	EmailType    = Data2
	EmailLabel   = Data3

	WebsiteURL   = Data1
	WebsiteType  = Data2
	WebsiteLabel = Data3

	PostalFormatted    = Data1
	PostalType         = Data2
	PostalLabel        = Data3
	PostalStreet       = Data4
	PostalPOBox        = Data5
	PostalNeighborhood = Data6
	PostalCity         = Data7
	PostalRegion       = Data8
	PostalPostCode     = Data9
	PostalCountry      = Data10

	EventStartDate = Data1
	EventType      = Data2
	EventLabel     = Data3

	NameDisplay        = Data1
	NameGiven          = Data2
	NameFamily         = Data3
	NamePrefix         = Data4
	NameMiddle         = Data5
	NameSuffix         = Data6
	NamePhoneticGiven  = Data7
	NamePhoneticMiddle = Data8
	NamePhoneticFamily = Data9
	NameStyle          = Data10

	OrganizationCompany    = Data1
	OrganizationTitle      = Data4
	OrganizationDepartment = Data5

	NicknameName = Data1
	NoteText     = Data1

	GroupRowID = Data1
)
