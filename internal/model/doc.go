// Package model defines the entities the object store persists.
//
// Every kind embeds Base, which carries the identifier and the
// created_at/updated_at timestamps, and declares an explicit field list used
// to encode it to an attribute mapping and decode it back. The set of kinds
// is closed: the registry in this package maps each __class__ tag to a
// factory and is the only place kinds are resolved from text.
//
// Two construction paths exist and callers must respect the difference:
//
//   - NewUser(s), NewPlace(s), ... and New(s, kind) create a fresh entity with
//     a new id and register it with s immediately.
//   - Decode(obj, fb) reconstructs an entity from a stored mapping and does
//     not register it; the reload path inserts it under the document key.
package model
