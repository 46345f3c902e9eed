package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
)

// The query layer never writes. These methods exist so fixtures, the seed
// command and tests can shape the store; each one notifies watchers after
// it commits.

// ContactRecord is a contacts row. A zero ID lets SQLite assign one.
type ContactRecord struct {
	ID             contact.ID
	DisplayName    string
	DisplayNameAlt string
	Starred        bool
	LookupKey      string
}

// DataRecord is a data row. Values is keyed by data1..data10.
type DataRecord struct {
	ID           int64
	ContactID    contact.ID
	RawContactID int64
	AccountType  string
	Mimetype     string
	Values       map[string]string
}

var dataColumns = []string{
	provider.Data1, provider.Data2, provider.Data3, provider.Data4, provider.Data5,
	provider.Data6, provider.Data7, provider.Data8, provider.Data9, provider.Data10,
}

// InsertContact writes a contact row and returns its id.
func (s *Store) InsertContact(ctx context.Context, c ContactRecord) (contact.ID, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contacts (id, display_name, display_name_alt, starred, lookup_key, name_key)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		nullID(int64(c.ID)),
		c.DisplayName,
		nullString(c.DisplayNameAlt),
		boolInt(c.Starred),
		nullString(c.LookupKey),
		NameKey(c.DisplayName+" "+c.DisplayNameAlt),
	)
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert contact: %w", err)
	}
	s.notifyChange(provider.Authority)
	return contact.ID(id), nil
}

// InsertData writes a data row and returns its id.
//
// Phone rows without a normalized number (data4) get one derived from
// data1, so the phone lookup endpoint can find them.
func (s *Store) InsertData(ctx context.Context, d DataRecord) (int64, error) {
	values := make([]any, len(dataColumns))
	for key := range d.Values {
		if !slices.Contains(dataColumns, key) {
			return 0, fmt.Errorf("insert data: unknown column %q", key)
		}
	}
	for i, col := range dataColumns {
		if v, ok := d.Values[col]; ok {
			values[i] = v
		}
	}
	if d.Mimetype == provider.MimetypePhone && d.Values[provider.PhoneNormalized] == "" {
		if n := NormalizePhone(d.Values[provider.PhoneNumber]); n != "" {
			values[3] = n
		}
	}

	args := []any{
		nullID(d.ID),
		int64(d.ContactID),
		nullID(d.RawContactID),
		nullString(d.AccountType),
		d.Mimetype,
	}
	args = append(args, values...)

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO data (id, contact_id, raw_contact_id, account_type, mimetype,
		                  data1, data2, data3, data4, data5, data6, data7, data8, data9, data10)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, args...)
	if err != nil {
		return 0, fmt.Errorf("insert data: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert data: %w", err)
	}
	s.notifyChange(provider.Authority)
	return id, nil
}

// InsertGroup writes a group row and returns its id.
func (s *Store) InsertGroup(ctx context.Context, id int64, title, accountType string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO contact_groups (id, title, account_type) VALUES (?, ?, ?)
	`, nullID(id), title, nullString(accountType))
	if err != nil {
		return 0, fmt.Errorf("insert group: %w", err)
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert group: %w", err)
	}
	s.notifyChange(provider.Authority)
	return newID, nil
}

// SetPhoto stores photo bytes for a contact. Either variant may be nil.
func (s *Store) SetPhoto(ctx context.Context, id contact.ID, thumb, full []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (contact_id, photo_thumb, photo_full) VALUES (?, ?, ?)
		ON CONFLICT(contact_id) DO UPDATE SET photo_thumb = excluded.photo_thumb, photo_full = excluded.photo_full
	`, int64(id), thumb, full)
	if err != nil {
		return fmt.Errorf("set photo: %w", err)
	}
	s.notifyChange(provider.Authority)
	return nil
}

// SetStarred updates a contact's starred flag.
func (s *Store) SetStarred(ctx context.Context, id contact.ID, starred bool) error {
	return s.updateContact(ctx, "set starred", `UPDATE contacts SET starred = ? WHERE id = ?`, boolInt(starred), int64(id))
}

// RenameContact updates a contact's display name.
func (s *Store) RenameContact(ctx context.Context, id contact.ID, displayName string) error {
	var alt sql.NullString
	err := s.db.QueryRowContext(ctx, `SELECT display_name_alt FROM contacts WHERE id = ?`, int64(id)).Scan(&alt)
	if err != nil {
		return fmt.Errorf("rename contact: %w", err)
	}
	return s.updateContact(ctx, "rename contact",
		`UPDATE contacts SET display_name = ?, name_key = ? WHERE id = ?`,
		displayName, NameKey(displayName+" "+alt.String), int64(id))
}

// DeleteContact removes a contact; its data and photo rows cascade.
func (s *Store) DeleteContact(ctx context.Context, id contact.ID) error {
	return s.updateContact(ctx, "delete contact", `DELETE FROM contacts WHERE id = ?`, int64(id))
}

func (s *Store) updateContact(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}
	s.notifyChange(provider.Authority)
	return nil
}

func nullID(id int64) any {
	if id == 0 {
		return nil
	}
	return id
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
