package contact

import (
	"encoding/json"

	"github.com/roach88/contactlens/internal/label"
)

// LabeledValue is a typed value with its resolved label and the data row it
// came from. Two LabeledValues are the same element when all three match.
type LabeledValue[T comparable] struct {
	Value T
	Label label.Label
	RowID RowID
}

// NewLabeled creates a LabeledValue backed by a stored row.
func NewLabeled[T comparable](value T, l label.Label, rowID int64) LabeledValue[T] {
	return LabeledValue[T]{Value: value, Label: l, RowID: Row(rowID)}
}

// MarshalJSON renders the label by name rather than by its Go type.
func (lv LabeledValue[T]) MarshalJSON() ([]byte, error) {
	out := struct {
		Value T      `json:"value"`
		Label string `json:"label"`
		RowID *int64 `json:"row_id,omitempty"`
	}{Value: lv.Value}
	if lv.Label != nil {
		out.Label = lv.Label.String()
	}
	if lv.RowID.Valid {
		id := lv.RowID.Value
		out.RowID = &id
	}
	return json.Marshal(out)
}

// AppendUnique appends v unless an equal element is already present.
// Collections are small, so a linear scan keeps insertion order without
// a side index.
func AppendUnique[T comparable](s []T, v T) []T {
	for _, existing := range s {
		if existing == v {
			return s
		}
	}
	return append(s, v)
}
