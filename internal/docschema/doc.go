// Package docschema checks a stored document against a CUE description of
// every entity kind.
//
// Reloading a store is lenient and repairs what it can. Validate is the
// strict counterpart used by tooling: it reports every entry that would
// need repair or be skipped, without building any entities.
package docschema
