package provider

import (
	"context"
	"errors"
	"io"

	"github.com/roach88/contactlens/internal/contact"
)

var (
	// ErrNoPhoto is returned by OpenPhoto when the contact has no photo.
	ErrNoPhoto = errors.New("provider: no photo")

	// ErrUnknownResource is returned for resources the store does not serve.
	ErrUnknownResource = errors.New("provider: unknown resource")
)

// Query selects rows from a resource.
//
// Selection is a provider-side filter expression; Args bind its
// placeholders in order. An empty SortOrder leaves ordering to the store.
type Query struct {
	Resource   Resource
	Projection []string
	Selection  string
	Args       []any
	SortOrder  string
}

// Querier runs queries.
type Querier interface {
	Query(ctx context.Context, q Query) (Cursor, error)
}

// PhotoOpener gives access to a contact's photo bytes.
type PhotoOpener interface {
	// OpenPhoto returns ErrNoPhoto when the contact has no photo stream.
	OpenPhoto(ctx context.Context, id contact.ID, highRes bool) (io.ReadCloser, error)
}

// Watcher delivers change notifications.
type Watcher interface {
	// Watch registers onChange for changes under r's authority. The returned
	// function unregisters synchronously; after it returns onChange is not
	// called again.
	Watch(r Resource, onChange func()) (unregister func())
}

// Store is the full structured-store contract.
type Store interface {
	Querier
	PhotoOpener
	Watcher
}
