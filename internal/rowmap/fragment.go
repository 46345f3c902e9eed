package rowmap

import "github.com/roach88/contactlens/internal/contact"

// Fragment is a sealed interface over the pieces a single row contributes
// to a contact.
type Fragment interface {
	fragmentNode() // Sealed - only types in this package implement it
}

// Singleton fragments replace the field they carry.
type (
	NameFragment struct {
		Name contact.Name
	}
	NicknameFragment struct {
		Nickname string
	}
	OrganizationFragment struct {
		Organization contact.Organization
	}
	NoteFragment struct {
		Note string
	}
	PhotoFragment struct {
		Data []byte
	}
)

// Repeatable fragments add one element to a collection.
type (
	PhoneFragment struct {
		Value contact.LabeledValue[string]
	}
	EmailFragment struct {
		Value contact.LabeledValue[string]
	}
	WebsiteFragment struct {
		Value contact.LabeledValue[string]
	}
	PostalFragment struct {
		Value contact.LabeledValue[contact.PostalAddress]
	}
	EventFragment struct {
		Value contact.LabeledValue[contact.Date]
	}
	GroupFragment struct {
		Membership contact.GroupMembership
	}
	LinkedFragment struct {
		Value contact.LinkedAccountValue
	}
)

func (NameFragment) fragmentNode()         {}
func (NicknameFragment) fragmentNode()     {}
func (OrganizationFragment) fragmentNode() {}
func (NoteFragment) fragmentNode()         {}
func (PhotoFragment) fragmentNode()        {}
func (PhoneFragment) fragmentNode()        {}
func (EmailFragment) fragmentNode()        {}
func (WebsiteFragment) fragmentNode()      {}
func (PostalFragment) fragmentNode()       {}
func (EventFragment) fragmentNode()        {}
func (GroupFragment) fragmentNode()        {}
func (LinkedFragment) fragmentNode()       {}
