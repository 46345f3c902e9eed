// Package store provides a SQLite-backed structured contact store.
//
// Store implements provider.Store. It is the store the query layer runs
// against in tests, the harness and the CLI; production deployments can
// put any other provider.Store behind the same contract.
//
// # Tables
//
//   - contacts: aggregate contacts (display name, starred flag)
//   - data: one row per contact datum, tagged by mimetype, payload in data1..data10
//   - contact_groups: group rows referenced by group-membership data
//   - photos: thumbnail and full-resolution photo bytes per contact
//
// # Ordering
//
// Contact results are ordered by the store's declared collation,
// display_name COLLATE NOCASE, unless the query supplies its own order.
// Data rows are ordered by id so folding is deterministic.
//
// # Change notification
//
// Every write notifies watchers after it commits. Writes change the whole
// authority, so every registered watcher is notified.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
