// Package rowmap turns contact data rows into typed fragments.
//
// Each data row carries a kind tag (its mimetype). The tag resolves either
// to one of the standard kinds or, through the linked-account registry, to
// a Linked kind carrying the registered descriptor. Tags matching neither
// are skipped and logged at Debug; this policy applies to every row.
//
// A row that cannot be mapped (blank primary value, malformed id or type
// code, unparseable event date) yields no fragment. Mapping never fails a
// whole contact.
package rowmap
