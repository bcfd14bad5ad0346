// Package attr defines the attribute values stored for every entity and the
// canonical JSON text they are written as.
//
// Attribute mappings are Object values. Decoding keeps the distinction
// between integers and floats, and MarshalCanonical writes sorted keys with
// no insignificant whitespace so that a document encodes to the same bytes
// every time.
package attr
