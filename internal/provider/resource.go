package provider

import (
	"net/url"
	"strings"
)

// Resource is a URI-like identifier for a queryable collection.
type Resource string

// Authority is the root every resource lives under. A change anywhere under
// it is reported to watchers of any resource sharing the root.
const Authority Resource = "content://contactlens"

const (
	Contacts Resource = Authority + "/contacts"
	Data     Resource = Authority + "/data"
	Groups   Resource = Authority + "/groups"

	EmailFilter Resource = Data + "/emails/filter"
	PhoneFilter Resource = Data + "/phones/filter"
	NameFilter  Resource = Contacts + "/filter"
)

// EmailLookup returns the lookup endpoint for a raw address.
func EmailLookup(address string) Resource {
	return EmailFilter.Append(address)
}

// PhoneLookup returns the lookup endpoint for a raw number.
func PhoneLookup(number string) Resource {
	return PhoneFilter.Append(number)
}

// NameLookup returns the filter endpoint for a display-name substring.
func NameLookup(text string) Resource {
	return NameFilter.Append(text)
}

// Append adds one escaped path segment.
func (r Resource) Append(segment string) Resource {
	return Resource(string(r) + "/" + url.PathEscape(segment))
}

// Under reports whether r equals root or is a descendant of it.
func (r Resource) Under(root Resource) bool {
	return r == root || strings.HasPrefix(string(r), string(root)+"/")
}

// SplitFilter splits a filter endpoint into its base and unescaped key.
// ok is false when r is not one of the filter endpoints.
func (r Resource) SplitFilter() (base Resource, key string, ok bool) {
	for _, candidate := range []Resource{EmailFilter, PhoneFilter, NameFilter} {
		rest, found := strings.CutPrefix(string(r), string(candidate)+"/")
		if !found {
			continue
		}
		key, err := url.PathUnescape(rest)
		if err != nil {
			return "", "", false
		}
		return candidate, key, true
	}
	return "", "", false
}
