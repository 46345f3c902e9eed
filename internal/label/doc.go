// Package label resolves provider type codes into typed contact labels.
//
// Every repeatable contact value (phone, email, website, postal address,
// event) is stored with an integer type code and an optional free-text
// label. Resolve turns that pair into a Label:
//
//   - a blank code is replaced by the kind's "other" code before lookup
//   - the universal custom code (0) yields Custom(text), even when text is empty
//   - every other code goes through a kind-specific table; misses become Other
//
// Resolution is total. No input makes it fail.
package label
