// Package accounts discovers the linked-account data kinds present on the
// device and how to summarize them.
//
// Account authenticators declare the custom contact-data kinds they
// contribute (a mimetype plus the data columns holding a summary and a
// detail line). The Registry resolves those declarations once and keeps
// the snapshot for its lifetime.
//
// STALENESS: the snapshot is never invalidated. Accounts installed or
// removed after the first lookup are not seen until a new Registry is
// built. Lookups after initialization never consult the resolver again.
package accounts
