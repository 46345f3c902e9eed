package label

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_PhoneTable(t *testing.T) {
	testCases := []struct {
		code int32
		want Label
	}{
		{PhoneHome, Home},
		{PhoneMobile, Mobile},
		{PhoneWork, Work},
		{PhoneFaxWork, FaxWork},
		{PhoneFaxHome, FaxHome},
		{PhonePager, Pager},
		{PhoneOther, Other},
		{PhoneCallback, Callback},
		{PhoneCar, Car},
		{PhoneCompanyMain, CompanyMain},
		{PhoneIsdn, Isdn},
		{PhoneMain, Main},
		{PhoneOtherFax, OtherFax},
		{PhoneRadio, Radio},
		{PhoneTelex, Telex},
		{PhoneTtyTdd, TtyTdd},
		{PhoneWorkMobile, WorkMobile},
		{PhoneWorkPager, WorkPager},
		{PhoneAssistant, Assistant},
		{PhoneMms, Mms},
	}

	for _, tc := range testCases {
		t.Run(tc.want.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(KindPhone, tc.code, "ignored"))
		})
	}
}

func TestResolve_PerKindTables(t *testing.T) {
	assert.Equal(t, Mobile, Resolve(KindEmail, EmailMobile, ""))
	assert.Equal(t, Work, Resolve(KindPostal, PostalWork, ""))
	assert.Equal(t, Birthday, Resolve(KindEvent, EventBirthday, ""))
	assert.Equal(t, Anniversary, Resolve(KindEvent, EventAnniversary, ""))
	assert.Equal(t, WebsiteBlog, Resolve(KindWebsite, WebsiteTypeBlog, ""))
	assert.Equal(t, WebsiteFtp, Resolve(KindWebsite, WebsiteTypeFtp, ""))
	assert.Equal(t, Home, Resolve(KindWebsite, WebsiteHome, ""))

	// Same code, different kind, different meaning.
	assert.Equal(t, Mobile, Resolve(KindPhone, 2, ""))
	assert.Equal(t, Work, Resolve(KindEmail, 2, ""))
}

func TestResolve_CustomEvenWhenEmpty(t *testing.T) {
	assert.Equal(t, Custom("Gym"), Resolve(KindPhone, CodeCustom, "Gym"))
	assert.Equal(t, Custom(""), Resolve(KindEmail, CodeCustom, ""))
}

func TestResolve_Total(t *testing.T) {
	kinds := []Kind{KindPhone, KindEmail, KindPostal, KindEvent, KindWebsite, Kind(0), Kind(99)}
	codes := []int32{math.MinInt32, -1, 21, 99, 1000, math.MaxInt32}

	for _, k := range kinds {
		for _, code := range codes {
			got := Resolve(k, code, "text")
			assert.NotNil(t, got)
			assert.Equal(t, Other, got, "kind=%d code=%d", k, code)
		}
	}
}

func TestResolveRaw(t *testing.T) {
	testCases := []struct {
		name   string
		kind   Kind
		raw    string
		custom string
		want   Label
		ok     bool
	}{
		{"blank phone defaults to other", KindPhone, "", "", Other, true},
		{"whitespace email defaults to other", KindEmail, "  ", "", Other, true},
		{"numeric", KindPhone, "2", "", Mobile, true},
		{"custom", KindPostal, "0", "Cabin", Custom("Cabin"), true},
		{"unknown code", KindEvent, "42", "", Other, true},
		{"not a number", KindPhone, "mobile", "", Other, false},
		{"out of int32 range", KindPhone, "4294967296", "", Other, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ResolveRaw(tc.kind, tc.raw, tc.custom)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for c := Other; c <= WebsiteProfile; c++ {
		assert.Equal(t, Label(c), Parse(c.String()))
	}
	assert.Equal(t, Label(Custom("Summer house")), Parse("custom:Summer house"))
	assert.Equal(t, Label(Other), Parse("no-such-label"))
}
