// Package predicate defines the small, closed predicate language callers
// use to select contacts.
//
// Predicate is a sealed interface. The variants are:
//
//   - All: every contact
//   - ByIDsOrFavorite: id set and/or starred flag, conjunctive
//   - ByEmail: provider-side email lookup
//   - ByPhone: provider-side phone lookup
//   - ByNameSubstring: provider-side display-name filter
//
// Predicates are plain values. Translation into store queries lives in
// internal/querysql.
package predicate
