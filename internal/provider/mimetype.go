package provider

// Kind tags of the standard data kinds, as stored in the mimetype column.
const (
	MimetypeStructuredName  = "vnd.contactlens.item/name"
	MimetypeNickname        = "vnd.contactlens.item/nickname"
	MimetypePhone           = "vnd.contactlens.item/phone"
	MimetypeEmail           = "vnd.contactlens.item/email"
	MimetypeWebsite         = "vnd.contactlens.item/website"
	MimetypePostal          = "vnd.contactlens.item/postal-address"
	MimetypeEvent           = "vnd.contactlens.item/contact_event"
	MimetypeOrganization    = "vnd.contactlens.item/organization"
	MimetypeNote            = "vnd.contactlens.item/note"
	MimetypePhoto           = "vnd.contactlens.item/photo"
	MimetypeGroupMembership = "vnd.contactlens.item/group_membership"
)

// StandardMimetypes lists every standard kind tag.
var StandardMimetypes = []string{
	MimetypeStructuredName,
	MimetypeNickname,
	MimetypePhone,
	MimetypeEmail,
	MimetypeWebsite,
	MimetypePostal,
	MimetypeEvent,
	MimetypeOrganization,
	MimetypeNote,
	MimetypePhoto,
	MimetypeGroupMembership,
}
