package predicate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/contactlens/internal/contact"
)

// ErrEmpty is returned for a ByIDsOrFavorite with neither field set.
var ErrEmpty = errors.New("predicate: ByIDsOrFavorite needs ids or favorite")

// Predicate selects contacts.
//
// This is a sealed interface - only types in this package implement it,
// which lets translators switch exhaustively.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
	String() string
}

// All matches every contact.
type All struct{}

func (All) predicateNode() {}

func (All) String() string { return "all" }

// ByIDsOrFavorite matches contacts whose id is in IDs and whose starred
// flag equals *Favorite. A nil/empty IDs or nil Favorite drops that clause;
// at least one clause must remain.
type ByIDsOrFavorite struct {
	IDs      []contact.ID
	Favorite *bool
}

func (ByIDsOrFavorite) predicateNode() {}

func (p ByIDsOrFavorite) String() string {
	var parts []string
	if len(p.IDs) > 0 {
		ids := make([]string, len(p.IDs))
		for i, id := range p.IDs {
			ids[i] = id.String()
		}
		parts = append(parts, "ids="+strings.Join(ids, ","))
	}
	if p.Favorite != nil {
		parts = append(parts, fmt.Sprintf("favorite=%t", *p.Favorite))
	}
	return "by_ids_or_favorite(" + strings.Join(parts, " ") + ")"
}

// ByEmail matches contacts with an email equal to Address.
type ByEmail struct {
	Address string
}

func (ByEmail) predicateNode() {}

func (p ByEmail) String() string { return "by_email(" + p.Address + ")" }

// ByPhone matches contacts with a phone number equal to Number once both
// are normalized by the store.
type ByPhone struct {
	Number string
}

func (ByPhone) predicateNode() {}

func (p ByPhone) String() string { return "by_phone(" + p.Number + ")" }

// ByNameSubstring matches contacts whose display name contains Text.
type ByNameSubstring struct {
	Text string
}

func (ByNameSubstring) predicateNode() {}

func (p ByNameSubstring) String() string { return "by_name(" + p.Text + ")" }

// Favorite returns a pointer for ByIDsOrFavorite.Favorite.
func Favorite(starred bool) *bool {
	return &starred
}

// Normalize dereferences pointer variants. It returns nil for nil input
// and for types outside the package.
func Normalize(p Predicate) Predicate {
	switch pred := p.(type) {
	case All, ByIDsOrFavorite, ByEmail, ByPhone, ByNameSubstring:
		return pred
	case *All:
		if pred != nil {
			return *pred
		}
	case *ByIDsOrFavorite:
		if pred != nil {
			return *pred
		}
	case *ByEmail:
		if pred != nil {
			return *pred
		}
	case *ByPhone:
		if pred != nil {
			return *pred
		}
	case *ByNameSubstring:
		if pred != nil {
			return *pred
		}
	}
	return nil
}

// Validate reports caller-input errors. It is a pure function.
func Validate(p Predicate) error {
	switch pred := Normalize(p).(type) {
	case nil:
		return fmt.Errorf("predicate: unsupported predicate %T", p)
	case ByIDsOrFavorite:
		if len(pred.IDs) == 0 && pred.Favorite == nil {
			return ErrEmpty
		}
	}
	return nil
}
