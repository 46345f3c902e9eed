package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
)

// OpenPhoto returns the contact's photo bytes.
//
// With highRes the full-resolution variant is preferred and the thumbnail
// is the fallback; otherwise the thumbnail is returned. Returns
// provider.ErrNoPhoto when neither exists.
func (s *Store) OpenPhoto(ctx context.Context, id contact.ID, highRes bool) (io.ReadCloser, error) {
	var thumb, full []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT photo_thumb, photo_full FROM photos WHERE contact_id = ?
	`, int64(id)).Scan(&thumb, &full)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, provider.ErrNoPhoto
	}
	if err != nil {
		return nil, fmt.Errorf("open photo %d: %w", id, err)
	}

	data := thumb
	if highRes && full != nil {
		data = full
	}
	if data == nil {
		data = full
	}
	if data == nil {
		return nil, provider.ErrNoPhoto
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}
