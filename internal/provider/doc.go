// Package provider defines the contract of the external structured contact
// store: resource identifiers, queries, rows, cursors, photo streams and
// change notification.
//
// The store owns its schema. This package only names the resources, column
// names and kind tags (mimetypes) the query layer relies on. internal/store
// is the SQLite implementation; other backends only need to satisfy Store.
package provider
