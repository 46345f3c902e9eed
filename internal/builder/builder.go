// Package builder folds mapped row fragments into a PartialContact.
package builder

import (
	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/rowmap"
)

// Build folds fragments, in row order, onto the contact described by stub.
//
// Display name, alternative name and starred always come from the stub.
// Singleton fields take the last fragment that sets them. Collections are
// sets over (value, label, row id) in first-seen order. Columns is kept
// verbatim.
//
// A value the stub matched on is kept only while the corresponding column
// was not requested; once detail rows are loaded they are authoritative.
func Build(stub contact.Stub, columns []contact.Column, fragments []rowmap.Fragment) contact.PartialContact {
	pc := contact.FromStub(stub, columns)
	if pc.Requested(contact.ColumnMails) {
		pc.Emails = nil
	}
	if pc.Requested(contact.ColumnPhones) {
		pc.Phones = nil
	}

	for _, f := range fragments {
		apply(&pc, f)
	}
	return pc
}

func apply(pc *contact.PartialContact, f rowmap.Fragment) {
	switch frag := f.(type) {
	case rowmap.NameFragment:
		pc.Name = frag.Name
	case rowmap.NicknameFragment:
		pc.Nickname = frag.Nickname
	case rowmap.OrganizationFragment:
		pc.Organization = frag.Organization
	case rowmap.NoteFragment:
		pc.Note = frag.Note
	case rowmap.PhotoFragment:
		pc.ImageData = frag.Data
	case rowmap.PhoneFragment:
		pc.Phones = contact.AppendUnique(pc.Phones, frag.Value)
	case rowmap.EmailFragment:
		pc.Emails = contact.AppendUnique(pc.Emails, frag.Value)
	case rowmap.WebsiteFragment:
		pc.WebAddresses = contact.AppendUnique(pc.WebAddresses, frag.Value)
	case rowmap.PostalFragment:
		pc.PostalAddresses = contact.AppendUnique(pc.PostalAddresses, frag.Value)
	case rowmap.EventFragment:
		pc.Events = contact.AppendUnique(pc.Events, frag.Value)
	case rowmap.GroupFragment:
		pc.GroupMemberships = contact.AppendUnique(pc.GroupMemberships, frag.Membership)
	case rowmap.LinkedFragment:
		pc.LinkedAccountValues = contact.AppendUnique(pc.LinkedAccountValues, frag.Value)
	}
}
