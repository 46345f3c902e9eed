package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/contactlens/internal/provider"
)

// DefaultContactOrder is applied when a contact query names no sort order.
const DefaultContactOrder = provider.DisplayNameOrder

var contactColumns = []string{
	provider.ColumnID,
	provider.ColumnDisplayName,
	provider.ColumnDisplayNameAlt,
	provider.ColumnStarred,
	provider.ColumnLookupKey,
}

var groupColumns = []string{
	provider.ColumnID,
	provider.ColumnGroupTitle,
	provider.ColumnAccountType,
}

// table describes a directly queryable resource.
type table struct {
	name    string
	columns []string
	order   string
}

var tables = map[provider.Resource]table{
	provider.Contacts: {name: "contacts", columns: contactColumns, order: DefaultContactOrder},
	provider.Data:     {name: "data", columns: provider.DataProjection, order: "id ASC"},
	provider.Groups:   {name: "contact_groups", columns: groupColumns, order: "id ASC"},
}

// Query runs q against the resource it names.
//
// Projections are checked against the resource's columns. Selection is
// trusted provider-side SQL; values must be bound through Args.
func (s *Store) Query(ctx context.Context, q provider.Query) (provider.Cursor, error) {
	if base, key, ok := q.Resource.SplitFilter(); ok {
		return s.queryFilter(ctx, base, key, q)
	}

	t, ok := tables[q.Resource]
	if !ok {
		return nil, fmt.Errorf("query %s: %w", q.Resource, provider.ErrUnknownResource)
	}

	projection, err := checkProjection(q.Projection, t.columns)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Resource, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(projection, ", "), t.name)
	if q.Selection != "" {
		fmt.Fprintf(&b, " WHERE %s", q.Selection)
	}
	order := q.SortOrder
	if order == "" {
		order = t.order
	}
	fmt.Fprintf(&b, " ORDER BY %s", order)

	rows, err := s.db.QueryContext(ctx, b.String(), q.Args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Resource, err)
	}
	return newRowsCursor(rows)
}

// queryFilter serves the lookup endpoints. Each returns stub rows, one per
// matching contact.
func (s *Store) queryFilter(ctx context.Context, base provider.Resource, key string, q provider.Query) (provider.Cursor, error) {
	order := q.SortOrder
	if order == "" {
		order = DefaultContactOrder
	}

	var query string
	var args []any
	switch base {
	case provider.EmailFilter:
		address := strings.TrimSpace(key)
		if address == "" {
			return provider.NewSliceCursor(), nil
		}
		// MIN(d.id) makes SQLite take the bare data columns from the
		// lowest matching row.
		query = `
			SELECT c.id, c.display_name, c.display_name_alt, c.starred,
			       MIN(d.id) AS matched_row,
			       d.data1 AS matched_value, d.data2 AS matched_type, d.data3 AS matched_label
			FROM contacts c
			JOIN data d ON d.contact_id = c.id
			WHERE d.mimetype = ? AND d.data1 = ? COLLATE NOCASE
			GROUP BY c.id
			ORDER BY ` + order
		args = []any{provider.MimetypeEmail, address}
	case provider.PhoneFilter:
		normalized := NormalizePhone(key)
		if normalized == "" {
			return provider.NewSliceCursor(), nil
		}
		query = `
			SELECT c.id, c.display_name, c.display_name_alt, c.starred,
			       MIN(d.id) AS matched_row,
			       d.data1 AS matched_value, d.data2 AS matched_type, d.data3 AS matched_label
			FROM contacts c
			JOIN data d ON d.contact_id = c.id
			WHERE d.mimetype = ? AND d.data4 = ?
			GROUP BY c.id
			ORDER BY ` + order
		args = []any{provider.MimetypePhone, normalized}
	case provider.NameFilter:
		pattern := "%" + escapeLike(NameKey(key)) + "%"
		query = `
			SELECT id, display_name, display_name_alt, starred
			FROM contacts
			WHERE name_key LIKE ? ESCAPE '\'
			ORDER BY ` + order
		args = []any{pattern}
	default:
		return nil, fmt.Errorf("query %s: %w", q.Resource, provider.ErrUnknownResource)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", base, err)
	}
	return newRowsCursor(rows)
}

// checkProjection validates requested columns. An empty projection selects
// every column of the resource.
func checkProjection(projection, allowed []string) ([]string, error) {
	if len(projection) == 0 {
		return allowed, nil
	}
	for _, col := range projection {
		if !slices.Contains(allowed, col) {
			return nil, fmt.Errorf("unknown column %q", col)
		}
	}
	return projection, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// rowsCursor adapts sql.Rows to provider.Cursor. Every column is scanned as
// nullable text; NULL columns are left out of the row.
type rowsCursor struct {
	rows    *sql.Rows
	columns []string
	current provider.Row
	err     error
}

func newRowsCursor(rows *sql.Rows) (*rowsCursor, error) {
	columns, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("read columns: %w", err)
	}
	return &rowsCursor{rows: rows, columns: columns}, nil
}

func (c *rowsCursor) Next() bool {
	if c.err != nil || !c.rows.Next() {
		c.current = nil
		return false
	}

	values := make([]sql.NullString, len(c.columns))
	dest := make([]any, len(c.columns))
	for i := range values {
		dest[i] = &values[i]
	}
	if err := c.rows.Scan(dest...); err != nil {
		c.err = fmt.Errorf("scan row: %w", err)
		c.current = nil
		return false
	}

	row := make(provider.Row, len(c.columns))
	for i, col := range c.columns {
		if values[i].Valid {
			row[col] = values[i].String
		}
	}
	c.current = row
	return true
}

func (c *rowsCursor) Row() provider.Row {
	return c.current
}

func (c *rowsCursor) Err() error {
	if c.err != nil {
		return c.err
	}
	return c.rows.Err()
}

func (c *rowsCursor) Close() error {
	return c.rows.Close()
}
