package label

import (
	"fmt"
	"strings"
)

// Label is a sealed interface over the semantic label categories.
//
// Only Category and Custom implement it. Both are comparable, so labels can
// be used as part of map keys and in == comparisons when de-duplicating
// labeled values.
type Label interface {
	labelNode() // Sealed - only types in this package implement it
	String() string
}

// Category is a closed, well-known label.
type Category int

const (
	// Other is the catch-all for unrecognized and "other" codes.
	Other Category = iota
	Home
	Work
	Mobile
	FaxWork
	FaxHome
	Pager
	Callback
	Car
	CompanyMain
	Isdn
	Main
	OtherFax
	Radio
	Telex
	TtyTdd
	WorkMobile
	WorkPager
	Assistant
	Mms
	Anniversary
	Birthday
	WebsiteHomePage
	WebsiteBlog
	WebsiteFtp
	WebsiteProfile
)

func (Category) labelNode() {}

var categoryNames = [...]string{
	Other:           "other",
	Home:            "home",
	Work:            "work",
	Mobile:          "mobile",
	FaxWork:         "fax_work",
	FaxHome:         "fax_home",
	Pager:           "pager",
	Callback:        "callback",
	Car:             "car",
	CompanyMain:     "company_main",
	Isdn:            "isdn",
	Main:            "main",
	OtherFax:        "other_fax",
	Radio:           "radio",
	Telex:           "telex",
	TtyTdd:          "tty_tdd",
	WorkMobile:      "work_mobile",
	WorkPager:       "work_pager",
	Assistant:       "assistant",
	Mms:             "mms",
	Anniversary:     "anniversary",
	Birthday:        "birthday",
	WebsiteHomePage: "website_homepage",
	WebsiteBlog:     "website_blog",
	WebsiteFtp:      "website_ftp",
	WebsiteProfile:  "website_profile",
}

// String returns the snake_case name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// Custom is a user-supplied label text.
type Custom string

func (Custom) labelNode() {}

// String returns the label prefixed with "custom:" so it never collides
// with a category name.
func (c Custom) String() string {
	return "custom:" + string(c)
}

// Parse is the inverse of Label.String. Unknown names map to Other.
func Parse(s string) Label {
	if text, ok := strings.CutPrefix(s, "custom:"); ok {
		return Custom(text)
	}
	for i, name := range categoryNames {
		if name == s {
			return Category(i)
		}
	}
	return Other
}
