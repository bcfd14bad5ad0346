package model

import (
	"fmt"
	"slices"
)

// Factory returns a zero entity of one kind, ready to be decoded into.
type Factory func() Entity

// registry maps every kind tag to its factory. It is fixed at compile time
// and only read afterwards.
var registry = map[string]Factory{
	KindBaseModel: func() Entity { return &BaseModel{} },
	KindUser:      func() Entity { return &User{} },
	KindState:     func() Entity { return &State{} },
	KindCity:      func() Entity { return &City{} },
	KindAmenity:   func() Entity { return &Amenity{} },
	KindPlace:     func() Entity { return &Place{} },
	KindReview:    func() Entity { return &Review{} },
}

// Lookup resolves a kind tag to its factory.
func Lookup(kind string) (Factory, bool) {
	f, ok := registry[kind]
	return f, ok
}

// Kinds returns every known kind tag in sorted order.
func Kinds() []string {
	kinds := make([]string, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// New creates a fresh entity of the named kind and registers it with s.
func New(s Store, kind string) (Entity, error) {
	f, ok := Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	e := f()
	initFresh(s, e)
	return e, nil
}
