// Package sqlexport writes snapshots of an object store into a SQLite
// database for ad-hoc querying.
//
// Each entity becomes one row of the entities table keyed by its storage
// key. The full attribute mapping is kept as canonical JSON alongside the
// kind, id and timestamp columns. Writes are upserts, so exporting the same
// store twice leaves one row per key.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//
// The export database is a derived artifact. The JSON document remains the
// store of record; nothing reads entities back from SQLite into a store.
package sqlexport
