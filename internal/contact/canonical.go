package contact

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for snapshot comparison.
//
// Differences from json.Marshal:
//  1. Object keys sorted by UTF-16 code units
//  2. No HTML escaping
//  3. Strings are NFC normalized
//  4. Floats and null are rejected
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareUTF16 orders strings by UTF-16 code units, which differs from
// byte order for characters outside the BMP.
func compareUTF16(a, b string) int {
	ua := utf16.Encode([]rune(a))
	ub := utf16.Encode([]rune(b))
	return slices.Compare(ua, ub)
}

// CanonicalMap converts a contact into the map form MarshalCanonical
// accepts. Empty fields are omitted so snapshots stay small.
func (pc PartialContact) CanonicalMap() map[string]any {
	m := map[string]any{
		"id":           int64(pc.ID),
		"display_name": pc.DisplayName,
		"starred":      pc.Starred,
	}
	cols := make([]any, len(pc.Columns))
	for i, c := range pc.Columns {
		cols[i] = c.String()
	}
	m["columns"] = cols

	putString(m, "display_name_alt", pc.DisplayNameAlt)
	putString(m, "nickname", pc.Nickname)
	putString(m, "note", pc.Note)

	name := map[string]any{}
	putString(name, "given", pc.Name.Given)
	putString(name, "middle", pc.Name.Middle)
	putString(name, "family", pc.Name.Family)
	putString(name, "prefix", pc.Name.Prefix)
	putString(name, "suffix", pc.Name.Suffix)
	putString(name, "phonetic_given", pc.Name.PhoneticGiven)
	putString(name, "phonetic_middle", pc.Name.PhoneticMiddle)
	putString(name, "phonetic_family", pc.Name.PhoneticFamily)
	if pc.Name.Style != NameStyleUndefined {
		name["style"] = int(pc.Name.Style)
	}
	if len(name) > 0 {
		m["name"] = name
	}

	org := map[string]any{}
	putString(org, "company", pc.Organization.Company)
	putString(org, "title", pc.Organization.Title)
	putString(org, "department", pc.Organization.Department)
	if len(org) > 0 {
		m["organization"] = org
	}

	if pc.ImageData != nil {
		m["image_data"] = base64.StdEncoding.EncodeToString(pc.ImageData)
	}

	putList(m, "phones", labeledStrings(pc.Phones))
	putList(m, "emails", labeledStrings(pc.Emails))
	putList(m, "web_addresses", labeledStrings(pc.WebAddresses))

	addresses := make([]any, 0, len(pc.PostalAddresses))
	for _, a := range pc.PostalAddresses {
		v := map[string]any{"formatted": a.Value.Formatted}
		putString(v, "street", a.Value.Street)
		putString(v, "pobox", a.Value.POBox)
		putString(v, "neighborhood", a.Value.Neighborhood)
		putString(v, "city", a.Value.City)
		putString(v, "region", a.Value.Region)
		putString(v, "postcode", a.Value.PostCode)
		putString(v, "country", a.Value.Country)
		addresses = append(addresses, labeledEntry(v, a.Label.String(), a.RowID))
	}
	putList(m, "postal_addresses", addresses)

	events := make([]any, 0, len(pc.Events))
	for _, e := range pc.Events {
		events = append(events, labeledEntry(e.Value.String(), e.Label.String(), e.RowID))
	}
	putList(m, "events", events)

	groups := make([]any, 0, len(pc.GroupMemberships))
	for _, g := range pc.GroupMemberships {
		v := map[string]any{"group_id": g.GroupID}
		putString(v, "title", g.Title)
		putRowID(v, g.RowID)
		groups = append(groups, v)
	}
	putList(m, "group_memberships", groups)

	linked := make([]any, 0, len(pc.LinkedAccountValues))
	for _, l := range pc.LinkedAccountValues {
		v := map[string]any{
			"account_type": l.AccountType,
			"mimetype":     l.Mimetype,
			"summary":      l.Summary,
		}
		putString(v, "detail", l.Detail)
		putString(v, "icon", l.Icon)
		putRowID(v, l.RowID)
		linked = append(linked, v)
	}
	putList(m, "linked_account_values", linked)

	return m
}

// MarshalSnapshot encodes an ordered contact list as canonical JSON.
func MarshalSnapshot(contacts []PartialContact) ([]byte, error) {
	list := make([]any, len(contacts))
	for i, c := range contacts {
		list[i] = c.CanonicalMap()
	}
	return MarshalCanonical(list)
}

func labeledStrings(values []LabeledValue[string]) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, labeledEntry(v.Value, v.Label.String(), v.RowID))
	}
	return out
}

func labeledEntry(value any, labelName string, rowID RowID) map[string]any {
	entry := map[string]any{"value": value, "label": labelName}
	putRowID(entry, rowID)
	return entry
}

func putString(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}

func putRowID(m map[string]any, rowID RowID) {
	if rowID.Valid {
		m["row_id"] = rowID.Value
	}
}

func putList(m map[string]any, key string, list []any) {
	if len(list) > 0 {
		m[key] = list
	}
}
