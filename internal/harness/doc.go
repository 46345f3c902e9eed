// Package harness runs YAML query scenarios against a fixture store.
//
// A scenario seeds a fresh SQLite store from a fixture, then executes its
// steps in order. Query steps run a one-shot query through the
// orchestrator and check the expected ids or input error code. Mutation
// steps (seed, star, rename, delete) change the store; when the scenario
// declares a watch query, the harness waits after each mutation until the
// subscription re-emits a snapshot equal to the store's current state and
// records it.
//
// Every recorded contact list is encoded with contact.MarshalCanonical, so
// golden snapshots are byte-stable:
//
//	go test ./internal/harness -update
//
// regenerates testdata/golden.
package harness
