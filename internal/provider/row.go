package provider

import (
	"strconv"
	"strings"
)

// Row is one flat key-value result row. NULL columns are absent.
type Row map[string]string

// Lookup returns the column value and whether it was non-NULL.
func (r Row) Lookup(column string) (string, bool) {
	v, ok := r[column]
	return v, ok
}

// String returns the column value, or "" when NULL.
func (r Row) String(column string) string {
	return r[column]
}

// Trimmed returns the column value with surrounding whitespace removed.
func (r Row) Trimmed(column string) string {
	return strings.TrimSpace(r[column])
}

// Int64 parses the column as a base-10 integer.
func (r Row) Int64(column string) (int64, bool) {
	v, ok := r[column]
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Bool reads an integer column as a flag (non-zero is true).
func (r Row) Bool(column string) bool {
	n, ok := r.Int64(column)
	return ok && n != 0
}

// Cursor iterates rows. Callers must Close it.
type Cursor interface {
	Next() bool
	Row() Row
	Err() error
	Close() error
}

// SliceCursor serves rows from memory.
type SliceCursor struct {
	rows []Row
	pos  int
}

// NewSliceCursor returns a cursor over rows.
func NewSliceCursor(rows ...Row) *SliceCursor {
	return &SliceCursor{rows: rows, pos: -1}
}

func (c *SliceCursor) Next() bool {
	if c.pos+1 >= len(c.rows) {
		c.pos = len(c.rows)
		return false
	}
	c.pos++
	return true
}

func (c *SliceCursor) Row() Row {
	if c.pos < 0 || c.pos >= len(c.rows) {
		return nil
	}
	return c.rows[c.pos]
}

func (c *SliceCursor) Err() error   { return nil }
func (c *SliceCursor) Close() error { return nil }

// Collect drains a cursor into memory and closes it.
func Collect(c Cursor) ([]Row, error) {
	defer c.Close()
	var rows []Row
	for c.Next() {
		rows = append(rows, c.Row())
	}
	if err := c.Err(); err != nil {
		return rows, err
	}
	return rows, nil
}
