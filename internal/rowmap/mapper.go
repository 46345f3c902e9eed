package rowmap

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/label"
	"github.com/roach88/contactlens/internal/provider"
)

// DateParser parses a raw event date. It never fails loudly; ok is false
// for input it cannot read.
type DateParser interface {
	Parse(raw string) (d contact.Date, ok bool)
}

// Mapper maps data rows to fragments. The zero value maps every kind
// except photos and events, which need Photos and Dates.
//
// A Mapper holds no mutable state and is safe for concurrent use.
type Mapper struct {
	Registry MimeTypeLookup
	Photos   provider.PhotoOpener
	Dates    DateParser

	// HighResPhotos requests the full-size photo stream.
	HighResPhotos bool

	// GroupTitles names groups by row id. It must not be modified while
	// the Mapper is in use.
	GroupTitles map[int64]string

	Logger *slog.Logger
}

// Map maps one row of contact id, dispatching on kindTag. ok is false when
// the row contributes nothing.
func (m Mapper) Map(ctx context.Context, id contact.ID, kindTag string, row provider.Row) (Fragment, bool) {
	kind, ok := ResolveKind(ctx, kindTag, row.String(provider.ColumnAccountType), m.Registry)
	if !ok {
		m.logger().Debug("skipping row of unknown kind",
			"contact_id", int64(id), "mimetype", kindTag, "row_id", row.String(provider.ColumnID))
		return nil, false
	}
	return m.MapKind(ctx, id, kind, row)
}

// MapKind maps a row whose kind is already resolved.
func (m Mapper) MapKind(ctx context.Context, id contact.ID, kind Kind, row provider.Row) (Fragment, bool) {
	switch k := kind.(type) {
	case StandardKind:
		return m.mapStandard(ctx, id, k, row)
	case Linked:
		return m.mapLinked(id, k, row)
	case *Linked:
		if k == nil {
			return nil, false
		}
		return m.mapLinked(id, *k, row)
	default:
		return nil, false
	}
}

func (m Mapper) mapStandard(ctx context.Context, id contact.ID, k StandardKind, row provider.Row) (Fragment, bool) {
	switch k {
	case KindStructuredName:
		return NameFragment{Name: mapName(row)}, true
	case KindOrganization:
		return OrganizationFragment{Organization: contact.Organization{
			Company:    row.Trimmed(provider.OrganizationCompany),
			Title:      row.Trimmed(provider.OrganizationTitle),
			Department: row.Trimmed(provider.OrganizationDepartment),
		}}, true
	case KindNickname:
		nick := row.Trimmed(provider.NicknameName)
		if nick == "" {
			return nil, false
		}
		return NicknameFragment{Nickname: nick}, true
	case KindNote:
		note := row.Trimmed(provider.NoteText)
		if note == "" {
			return nil, false
		}
		return NoteFragment{Note: note}, true
	case KindPhoto:
		return m.mapPhoto(ctx, id)
	case KindPhone:
		lv, ok := m.labeledString(id, row, label.KindPhone, provider.PhoneNumber, provider.PhoneType, provider.PhoneLabel)
		if !ok {
			return nil, false
		}
		return PhoneFragment{Value: lv}, true
	case KindEmail:
		lv, ok := m.labeledString(id, row, label.KindEmail, provider.EmailAddress, provider.EmailType, provider.EmailLabel)
		if !ok {
			return nil, false
		}
		return EmailFragment{Value: lv}, true
	case KindWebsite:
		lv, ok := m.labeledString(id, row, label.KindWebsite, provider.WebsiteURL, provider.WebsiteType, provider.WebsiteLabel)
		if !ok {
			return nil, false
		}
		return WebsiteFragment{Value: lv}, true
	case KindPostal:
		return m.mapPostal(id, row)
	case KindEvent:
		return m.mapEvent(id, row)
	case KindGroupMembership:
		return m.mapGroup(id, row)
	default:
		return nil, false
	}
}

func mapName(row provider.Row) contact.Name {
	name := contact.Name{
		Given:          row.Trimmed(provider.NameGiven),
		Middle:         row.Trimmed(provider.NameMiddle),
		Family:         row.Trimmed(provider.NameFamily),
		Prefix:         row.Trimmed(provider.NamePrefix),
		Suffix:         row.Trimmed(provider.NameSuffix),
		PhoneticGiven:  row.Trimmed(provider.NamePhoneticGiven),
		PhoneticMiddle: row.Trimmed(provider.NamePhoneticMiddle),
		PhoneticFamily: row.Trimmed(provider.NamePhoneticFamily),
	}
	if style, ok := row.Int64(provider.NameStyle); ok && style >= 0 && style <= int64(contact.NameStyleKorean) {
		name.Style = contact.NameStyle(style)
	}
	return name
}

// labeledString maps the common value/type/label triple. The row is skipped
// when the value is blank or the id or type code is malformed.
func (m Mapper) labeledString(id contact.ID, row provider.Row, kind label.Kind, valueCol, typeCol, labelCol string) (contact.LabeledValue[string], bool) {
	value := row.Trimmed(valueCol)
	if value == "" {
		return contact.LabeledValue[string]{}, false
	}
	rowID, l, ok := m.rowLabel(id, row, kind, typeCol, labelCol)
	if !ok {
		return contact.LabeledValue[string]{}, false
	}
	return contact.NewLabeled(value, l, rowID), true
}

func (m Mapper) rowLabel(id contact.ID, row provider.Row, kind label.Kind, typeCol, labelCol string) (int64, label.Label, bool) {
	rowID, ok := row.Int64(provider.ColumnID)
	if !ok {
		m.logger().Debug("skipping row with malformed id",
			"contact_id", int64(id), "row_id", row.String(provider.ColumnID))
		return 0, nil, false
	}
	l, ok := label.ResolveRaw(kind, row.String(typeCol), row.String(labelCol))
	if !ok {
		m.logger().Debug("skipping row with malformed type code",
			"contact_id", int64(id), "row_id", rowID, "type", row.String(typeCol))
		return 0, nil, false
	}
	return rowID, l, true
}

func (m Mapper) mapPostal(id contact.ID, row provider.Row) (Fragment, bool) {
	addr := contact.PostalAddress{
		Formatted:    row.Trimmed(provider.PostalFormatted),
		Street:       row.Trimmed(provider.PostalStreet),
		POBox:        row.Trimmed(provider.PostalPOBox),
		Neighborhood: row.Trimmed(provider.PostalNeighborhood),
		City:         row.Trimmed(provider.PostalCity),
		Region:       row.Trimmed(provider.PostalRegion),
		PostCode:     row.Trimmed(provider.PostalPostCode),
		Country:      row.Trimmed(provider.PostalCountry),
	}
	if addr.Formatted == "" {
		return nil, false
	}
	rowID, l, ok := m.rowLabel(id, row, label.KindPostal, provider.PostalType, provider.PostalLabel)
	if !ok {
		return nil, false
	}
	return PostalFragment{Value: contact.NewLabeled(addr, l, rowID)}, true
}

func (m Mapper) mapEvent(id contact.ID, row provider.Row) (Fragment, bool) {
	if m.Dates == nil {
		return nil, false
	}
	date, ok := m.Dates.Parse(row.String(provider.EventStartDate))
	if !ok {
		return nil, false
	}
	rowID, l, ok := m.rowLabel(id, row, label.KindEvent, provider.EventType, provider.EventLabel)
	if !ok {
		return nil, false
	}
	return EventFragment{Value: contact.NewLabeled(date, l, rowID)}, true
}

func (m Mapper) mapGroup(id contact.ID, row provider.Row) (Fragment, bool) {
	rowID, ok := row.Int64(provider.ColumnID)
	if !ok {
		return nil, false
	}
	groupID, ok := row.Int64(provider.GroupRowID)
	if !ok {
		m.logger().Debug("skipping group membership without group reference",
			"contact_id", int64(id), "row_id", rowID)
		return nil, false
	}
	return GroupFragment{Membership: contact.GroupMembership{
		RowID:   contact.Row(rowID),
		GroupID: groupID,
		Title:   m.GroupTitles[groupID],
	}}, true
}

func (m Mapper) mapLinked(id contact.ID, k Linked, row provider.Row) (Fragment, bool) {
	desc := k.Descriptor
	summary := row.Trimmed(desc.SummaryColumn)
	if summary == "" {
		return nil, false
	}
	rowID, ok := row.Int64(provider.ColumnID)
	if !ok {
		m.logger().Debug("skipping linked account row with malformed id",
			"contact_id", int64(id), "mimetype", desc.Mimetype)
		return nil, false
	}
	value := contact.LinkedAccountValue{
		RowID:       contact.Row(rowID),
		AccountType: desc.AccountType,
		Mimetype:    desc.Mimetype,
		Summary:     summary,
		Icon:        desc.Icon,
	}
	if desc.DetailColumn != "" {
		value.Detail = row.Trimmed(desc.DetailColumn)
	}
	return LinkedFragment{Value: value}, true
}

// mapPhoto reads the contact's photo stream. The data row itself carries
// nothing; a missing or empty stream yields no fragment.
func (m Mapper) mapPhoto(ctx context.Context, id contact.ID) (Fragment, bool) {
	if m.Photos == nil {
		return nil, false
	}
	rc, err := m.Photos.OpenPhoto(ctx, id, m.HighResPhotos)
	if err != nil {
		if !errors.Is(err, provider.ErrNoPhoto) {
			m.logger().Warn("photo unavailable", "contact_id", int64(id), "error", err)
		}
		return nil, false
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		m.logger().Warn("photo read failed", "contact_id", int64(id), "error", err)
		return nil, false
	}
	if len(data) == 0 {
		return nil, false
	}
	return PhotoFragment{Data: data}, true
}

func (m Mapper) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
