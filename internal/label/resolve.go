package label

import (
	"strconv"
	"strings"
)

// Kind selects the type-code table used during resolution.
type Kind int

const (
	KindPhone Kind = iota + 1
	KindEmail
	KindPostal
	KindEvent
	KindWebsite
)

// CodeCustom is the provider's universal "custom label" type code.
const CodeCustom int32 = 0

// Provider type codes. The numbering is owned by the external store.
const (
	PhoneHome        int32 = 1
	PhoneMobile      int32 = 2
	PhoneWork        int32 = 3
	PhoneFaxWork     int32 = 4
	PhoneFaxHome     int32 = 5
	PhonePager       int32 = 6
	PhoneOther       int32 = 7
	PhoneCallback    int32 = 8
	PhoneCar         int32 = 9
	PhoneCompanyMain int32 = 10
	PhoneIsdn        int32 = 11
	PhoneMain        int32 = 12
	PhoneOtherFax    int32 = 13
	PhoneRadio       int32 = 14
	PhoneTelex       int32 = 15
	PhoneTtyTdd      int32 = 16
	PhoneWorkMobile  int32 = 17
	PhoneWorkPager   int32 = 18
	PhoneAssistant   int32 = 19
	PhoneMms         int32 = 20

	EmailHome   int32 = 1
	EmailWork   int32 = 2
	EmailOther  int32 = 3
	EmailMobile int32 = 4

	PostalHome  int32 = 1
	PostalWork  int32 = 2
	PostalOther int32 = 3

	EventAnniversary int32 = 1
	EventOther       int32 = 2
	EventBirthday    int32 = 3

	WebsiteTypeHomePage int32 = 1
	WebsiteTypeBlog     int32 = 2
	WebsiteTypeProfile  int32 = 3
	WebsiteHome         int32 = 4
	WebsiteWork         int32 = 5
	WebsiteTypeFtp      int32 = 6
	WebsiteOther        int32 = 7
)

var phoneTable = map[int32]Category{
	PhoneHome:        Home,
	PhoneMobile:      Mobile,
	PhoneWork:        Work,
	PhoneFaxWork:     FaxWork,
	PhoneFaxHome:     FaxHome,
	PhonePager:       Pager,
	PhoneOther:       Other,
	PhoneCallback:    Callback,
	PhoneCar:         Car,
	PhoneCompanyMain: CompanyMain,
	PhoneIsdn:        Isdn,
	PhoneMain:        Main,
	PhoneOtherFax:    OtherFax,
	PhoneRadio:       Radio,
	PhoneTelex:       Telex,
	PhoneTtyTdd:      TtyTdd,
	PhoneWorkMobile:  WorkMobile,
	PhoneWorkPager:   WorkPager,
	PhoneAssistant:   Assistant,
	PhoneMms:         Mms,
}

var emailTable = map[int32]Category{
	EmailHome:   Home,
	EmailWork:   Work,
	EmailOther:  Other,
	EmailMobile: Mobile,
}

var postalTable = map[int32]Category{
	PostalHome:  Home,
	PostalWork:  Work,
	PostalOther: Other,
}

var eventTable = map[int32]Category{
	EventAnniversary: Anniversary,
	EventOther:       Other,
	EventBirthday:    Birthday,
}

var websiteTable = map[int32]Category{
	WebsiteTypeHomePage: WebsiteHomePage,
	WebsiteTypeBlog:     WebsiteBlog,
	WebsiteTypeProfile:  WebsiteProfile,
	WebsiteHome:         Home,
	WebsiteWork:         Work,
	WebsiteTypeFtp:      WebsiteFtp,
	WebsiteOther:        Other,
}

// table returns the code table and the "other" default code for a kind.
// Unknown kinds get an empty table, so every non-custom code maps to Other.
func (k Kind) table() (map[int32]Category, int32) {
	switch k {
	case KindPhone:
		return phoneTable, PhoneOther
	case KindEmail:
		return emailTable, EmailOther
	case KindPostal:
		return postalTable, PostalOther
	case KindEvent:
		return eventTable, EventOther
	case KindWebsite:
		return websiteTable, WebsiteOther
	default:
		return nil, -1
	}
}

// DefaultCode returns the kind's "other" code, substituted for blank codes.
func (k Kind) DefaultCode() int32 {
	_, def := k.table()
	return def
}

// Resolve maps a type code and custom text to a Label.
func Resolve(kind Kind, code int32, custom string) Label {
	if code == CodeCustom {
		return Custom(custom)
	}
	table, _ := kind.table()
	if c, ok := table[code]; ok {
		return c
	}
	return Other
}

// ResolveRaw resolves a code as read from a store row.
//
// A blank code is replaced by the kind's default. ok is false only when the
// code is present but not an int32; callers treat that row as malformed.
func ResolveRaw(kind Kind, rawCode string, custom string) (l Label, ok bool) {
	rawCode = strings.TrimSpace(rawCode)
	if rawCode == "" {
		return Resolve(kind, kind.DefaultCode(), custom), true
	}
	code, err := strconv.ParseInt(rawCode, 10, 32)
	if err != nil {
		return Other, false
	}
	return Resolve(kind, int32(code), custom), true
}
