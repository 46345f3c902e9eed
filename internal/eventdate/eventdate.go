// Package eventdate parses the free-form dates stored on contact events.
//
// Stores accept whatever the editing app wrote, so the parser tries a list
// of layouts and reports failure instead of erroring.
package eventdate

import (
	"strings"
	"time"

	"github.com/roach88/contactlens/internal/contact"
)

// Yearless layouts parse into year 0, which contact.Date treats as unknown.
var yearlessLayouts = []string{
	"--01-02",
	"--0102",
	"January 2",
	"Jan 2",
}

var fullLayouts = []string{
	"2006-01-02",
	"20060102",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Parser parses event dates by trying layouts in order.
type Parser struct {
	// Layouts are tried before the built-in ones.
	Layouts []string
}

// Default is a Parser with only the built-in layouts.
var Default = Parser{}

// Parse returns the date and true, or false when no layout matches.
// Surrounding whitespace is ignored.
func (p Parser) Parse(raw string) (contact.Date, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return contact.Date{}, false
	}

	for _, layout := range p.Layouts {
		if d, ok := parse(layout, raw, hasYear(layout)); ok {
			return d, true
		}
	}
	for _, layout := range fullLayouts {
		if d, ok := parse(layout, raw, true); ok {
			return d, true
		}
	}
	for _, layout := range yearlessLayouts {
		if d, ok := parse(layout, raw, false); ok {
			return d, true
		}
	}
	return contact.Date{}, false
}

func parse(layout, raw string, withYear bool) (contact.Date, bool) {
	t, err := time.Parse(layout, raw)
	if err != nil {
		return contact.Date{}, false
	}
	d := contact.Date{Month: t.Month(), Day: t.Day()}
	if withYear {
		if t.Year() == 0 {
			return contact.Date{}, false
		}
		d.Year = t.Year()
	}
	return d, true
}

func hasYear(layout string) bool {
	return strings.Contains(layout, "2006") || strings.Contains(layout, "06")
}
