// Package store keeps every live entity in memory and mirrors the whole
// collection to a single JSON document on disk.
//
// A Store is an explicit handle; there is no package-level instance. Fresh
// entities register themselves with the Store they are created from, and
// Save writes every registered entity under its "<kind>.<id>" key.
//
// # Save
//
// The document is canonical JSON (sorted keys, no insignificant whitespace),
// so saving an unchanged collection twice produces identical bytes. It is
// written to a temporary file in the same directory and renamed over the
// backing file.
//
// # Reload
//
// Reload reads the document back and inserts the decoded entities under the
// document's own keys. Problems are handled per entry:
//
//   - Missing backing file: no-op
//   - Document that is not a JSON object: ErrMalformedDocument
//   - Entry with a missing or unknown __class__, or not an object: skipped
//   - Entry with missing or mistyped attributes: repaired and inserted
//
// Skipped and repaired entries are logged at warn level and recorded in the
// Report returned by LastReport. One bad entry never stops the rest of the
// document from loading.
//
// The Store does no locking. It is meant for single-goroutine use.
package store
