package model

import (
	"errors"
	"time"

	"github.com/roach88/objstore/internal/attr"
)

// TimeFormat is the textual form of created_at and updated_at in stored
// documents. Round trips are exact to the microsecond.
const TimeFormat = "2006-01-02T15:04:05.000000"

// Reserved attribute names shared by every kind.
const (
	KeyClass     = "__class__"
	KeyID        = "id"
	KeyCreatedAt = "created_at"
	KeyUpdatedAt = "updated_at"
)

// ErrDetached is returned by Persist on an entity that is not bound to a store.
var ErrDetached = errors.New("entity is not bound to a store")

// Store is what an entity needs from the engine that owns it.
// *store.Store satisfies it.
type Store interface {
	Register(e Entity)
	Save() error
	Now() time.Time
	NewID() string
}

// Entity is the contract every storable object satisfies.
//
// The interface is sealed: only the kinds declared in this package
// implement it, and every one of them is listed in the kind registry.
type Entity interface {
	// Kind is the concrete type name, used as the __class__ tag and as the
	// first half of the storage key.
	Kind() string
	// Meta exposes the shared identity and timestamps.
	Meta() *Base
	// Attributes renders the entity to its attribute mapping.
	Attributes() attr.Object
	// Persist refreshes updated_at and saves the whole store.
	Persist() error

	fields() []field
}

// Key returns the composite storage key "<kind>.<id>".
func Key(e Entity) string {
	return e.Kind() + "." + e.Meta().ID()
}

// Base carries the identity and timestamps shared by every kind.
// Kinds embed it by value.
type Base struct {
	id        string
	createdAt time.Time
	updatedAt time.Time

	// extra holds stored attributes the kind does not declare.
	extra attr.Object

	store Store
}

// Meta returns b itself; it lets the embedding kind satisfy Entity.
func (b *Base) Meta() *Base { return b }

// ID returns the entity's identifier.
func (b *Base) ID() string { return b.id }

// CreatedAt returns the construction time.
func (b *Base) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the time of the last persist.
func (b *Base) UpdatedAt() time.Time { return b.updatedAt }

// Extra returns a copy of the stored attributes this kind does not declare.
func (b *Base) Extra() attr.Object {
	return b.extra.Clone()
}

// Bind attaches the entity to a store without registering it.
// Reload uses it for reconstructed entities.
func (b *Base) Bind(s Store) { b.store = s }

// Persist refreshes updated_at to the store's current time and saves the
// store's whole collection. updated_at never moves before created_at.
func (b *Base) Persist() error {
	if b.store == nil {
		return ErrDetached
	}
	now := b.store.Now()
	if now.Before(b.createdAt) {
		now = b.createdAt
	}
	b.updatedAt = now
	return b.store.Save()
}

// initFresh gives e a new identity from s and registers it.
func initFresh(s Store, e Entity) {
	b := e.Meta()
	now := s.Now()
	b.id = s.NewID()
	b.createdAt = now
	b.updatedAt = now
	b.store = s
	s.Register(e)
}

// encode builds the attribute mapping of e: extras first, then declared
// fields, then the reserved keys, so declared names always win.
func encode(e Entity) attr.Object {
	b := e.Meta()
	fs := e.fields()

	obj := make(attr.Object, len(b.extra)+len(fs)+4)
	for k, v := range b.extra {
		obj[k] = v
	}
	for _, f := range fs {
		obj[f.name] = f.encode()
	}
	obj[KeyClass] = attr.String(e.Kind())
	obj[KeyID] = attr.String(b.id)
	obj[KeyCreatedAt] = attr.String(FormatTime(b.createdAt))
	obj[KeyUpdatedAt] = attr.String(FormatTime(b.updatedAt))
	return obj
}

// FormatTime renders t in TimeFormat, in UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeFormat)
}

// ParseTime parses a TimeFormat timestamp. The fractional part is optional.
func ParseTime(s string) (time.Time, error) {
	// Parse accepts a fractional second after the seconds field even when
	// the layout has none, so the bare layout covers both forms.
	return time.Parse("2006-01-02T15:04:05", s)
}
