// Package engine implements the query orchestrator and change notifier.
//
// An Orchestrator turns a predicate and a set of requested columns into
// contact snapshots. Query runs one cycle. Subscribe keeps running cycles:
// an initial one immediately, then one per store change notification,
// each delivering a full replacement snapshot.
//
// CYCLE:
//  1. Run the translated base query, yielding stubs in display-name order.
//  2. When columns were requested, fan out one detail query per stub,
//     bounded by the fanout limit, mapping rows through rowmap and folding
//     them with builder.
//  3. Reassemble results in stub order.
//
// NOTIFICATIONS:
// Notifications are serialized through a one-slot signal channel. Any
// number of notifications arriving while a cycle runs collapse into a
// single follow-up cycle.
//
// ERRORS:
// Bad predicates and columns are returned from Subscribe and Query. Store
// failures during a subscription are logged and produce an empty snapshot;
// the subscription stays alive.
package engine
