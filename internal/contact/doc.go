// Package contact provides the aggregate contact types produced by queries.
//
// This package contains type definitions only, plus the canonical snapshot
// encoding used by golden tests. It imports internal/label and nothing else
// internal, so every other package can depend on it.
//
// Key constraints:
//   - Labeled collections are sets: (value, label, row id) triples are unique
//   - Columns records exactly which groups were requested, so callers can
//     tell "absent" from "not requested"
//   - A PartialContact is never mutated after it is returned
package contact
