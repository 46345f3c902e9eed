// Package fixture loads YAML contact documents into a store.
//
// A document lists groups and contacts; each contact carries its data rows
// and an optional photo:
//
//	groups:
//	  - id: 1
//	    title: Friends
//	contacts:
//	  - id: 1
//	    display_name: Alice
//	    starred: true
//	    data:
//	      - kind: phone
//	        values: {data1: "555-0100", data2: "2"}
//	      - kind: group
//	        values: {data1: "1"}
//	    photo:
//	      full: "...bytes..."
//
// Row kinds are short aliases for the standard mimetypes (see Kinds) or a
// full mimetype string for linked-account rows.
package fixture

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/contactlens/internal/contact"
	"github.com/roach88/contactlens/internal/provider"
	"github.com/roach88/contactlens/internal/store"
)

// Document is one fixture file.
type Document struct {
	Groups   []Group   `yaml:"groups,omitempty"`
	Contacts []Contact `yaml:"contacts"`
}

// Group is a contact group row.
type Group struct {
	ID          int64  `yaml:"id"`
	Title       string `yaml:"title"`
	AccountType string `yaml:"account_type,omitempty"`
}

// Contact is a contact row plus everything attached to it.
type Contact struct {
	ID             int64  `yaml:"id,omitempty"`
	DisplayName    string `yaml:"display_name"`
	DisplayNameAlt string `yaml:"display_name_alt,omitempty"`
	Starred        bool   `yaml:"starred,omitempty"`
	LookupKey      string `yaml:"lookup_key,omitempty"`
	Data           []Row  `yaml:"data,omitempty"`
	Photo          *Photo `yaml:"photo,omitempty"`
}

// Row is a data row. Values is keyed by data1..data10.
type Row struct {
	ID          int64             `yaml:"id,omitempty"`
	Kind        string            `yaml:"kind"`
	AccountType string            `yaml:"account_type,omitempty"`
	Values      map[string]string `yaml:"values,omitempty"`
}

// Photo holds raw photo bytes as YAML strings. Either variant may be empty.
type Photo struct {
	Thumb string `yaml:"thumb,omitempty"`
	Full  string `yaml:"full,omitempty"`
}

// Kinds maps the short row kinds to their mimetypes.
var Kinds = map[string]string{
	"name":         provider.MimetypeStructuredName,
	"nickname":     provider.MimetypeNickname,
	"phone":        provider.MimetypePhone,
	"email":        provider.MimetypeEmail,
	"website":      provider.MimetypeWebsite,
	"postal":       provider.MimetypePostal,
	"event":        provider.MimetypeEvent,
	"organization": provider.MimetypeOrganization,
	"note":         provider.MimetypeNote,
	"photo":        provider.MimetypePhoto,
	"group":        provider.MimetypeGroupMembership,
}

// Mimetype resolves a row kind to the mimetype stored for it.
func (r Row) Mimetype() string {
	if m, ok := Kinds[r.Kind]; ok {
		return m
	}
	return r.Kind
}

// Load reads and validates a fixture file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes and validates a fixture document. Unknown fields are
// rejected.
func Parse(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}
	return &doc, nil
}

// Validate checks required fields and id uniqueness.
func (d *Document) Validate() error {
	groupIDs := make(map[int64]bool)
	for i, g := range d.Groups {
		if g.Title == "" {
			return fmt.Errorf("groups[%d]: title is required", i)
		}
		if g.ID != 0 {
			if groupIDs[g.ID] {
				return fmt.Errorf("groups[%d]: duplicate id %d", i, g.ID)
			}
			groupIDs[g.ID] = true
		}
	}

	contactIDs := make(map[int64]bool)
	for i, c := range d.Contacts {
		if c.DisplayName == "" {
			return fmt.Errorf("contacts[%d]: display_name is required", i)
		}
		if c.ID != 0 {
			if contactIDs[c.ID] {
				return fmt.Errorf("contacts[%d]: duplicate id %d", i, c.ID)
			}
			contactIDs[c.ID] = true
		}
		for j, r := range c.Data {
			if r.Kind == "" {
				return fmt.Errorf("contacts[%d].data[%d]: kind is required", i, j)
			}
		}
	}
	return nil
}

// Apply writes the document to s: groups first, then each contact with its
// data rows and photo. A photo adds a photo data row so the image column
// picks it up.
func (d *Document) Apply(ctx context.Context, s *store.Store) error {
	for i, g := range d.Groups {
		if _, err := s.InsertGroup(ctx, g.ID, g.Title, g.AccountType); err != nil {
			return fmt.Errorf("groups[%d]: %w", i, err)
		}
	}

	for i, c := range d.Contacts {
		id, err := s.InsertContact(ctx, store.ContactRecord{
			ID:             contact.ID(c.ID),
			DisplayName:    c.DisplayName,
			DisplayNameAlt: c.DisplayNameAlt,
			Starred:        c.Starred,
			LookupKey:      c.LookupKey,
		})
		if err != nil {
			return fmt.Errorf("contacts[%d]: %w", i, err)
		}

		for j, r := range c.Data {
			_, err := s.InsertData(ctx, store.DataRecord{
				ID:          r.ID,
				ContactID:   id,
				AccountType: r.AccountType,
				Mimetype:    r.Mimetype(),
				Values:      r.Values,
			})
			if err != nil {
				return fmt.Errorf("contacts[%d].data[%d]: %w", i, j, err)
			}
		}

		if c.Photo != nil {
			if _, err := s.InsertData(ctx, store.DataRecord{ContactID: id, Mimetype: provider.MimetypePhoto}); err != nil {
				return fmt.Errorf("contacts[%d].photo: %w", i, err)
			}
			if err := s.SetPhoto(ctx, id, bytesOrNil(c.Photo.Thumb), bytesOrNil(c.Photo.Full)); err != nil {
				return fmt.Errorf("contacts[%d].photo: %w", i, err)
			}
		}
	}
	return nil
}

func bytesOrNil(s string) []byte {
	if s == "" {
		return nil
	}
	return []byte(s)
}
