package contact

import "strconv"

// ID is the store's opaque contact handle. It is re-resolved on every query
// and never cached across snapshots.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// RowID identifies the stored data row a value came from.
//
// Valid is false for values obtained from a coarse lookup that did not load
// detail rows. RowID is comparable, which LabeledValue equality relies on.
type RowID struct {
	Value int64
	Valid bool
}

// Row returns a valid RowID.
func Row(id int64) RowID {
	return RowID{Value: id, Valid: true}
}

func (r RowID) String() string {
	if !r.Valid {
		return "-"
	}
	return strconv.FormatInt(r.Value, 10)
}
