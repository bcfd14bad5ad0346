package store

import (
	"log/slog"
	"maps"
	"reflect"
	"time"

	"github.com/roach88/objstore/internal/model"
)

var _ model.Store = (*Store)(nil)

// Store owns the in-memory collection of entities and its backing file.
type Store struct {
	path    string
	objects map[string]model.Entity

	clock  Clock
	ids    IDGenerator
	logger *slog.Logger

	report Report
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for save and reload diagnostics.
// The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock sets the clock used to stamp entities.
func WithClock(c Clock) Option {
	return func(s *Store) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithIDGenerator sets the source of ids for fresh entities.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Store) {
		if g != nil {
			s.ids = g
		}
	}
}

// New creates an empty store backed by the file at path.
// The path is fixed for the life of the store. Nothing is read until Reload.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:    path,
		objects: make(map[string]model.Entity),
		clock:   SystemClock{},
		ids:     UUIDGenerator{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// All returns a copy of the key to entity mapping.
// The entities themselves are shared with the store.
func (s *Store) All() map[string]model.Entity {
	return maps.Clone(s.objects)
}

// Get returns the entity stored under key.
func (s *Store) Get(key string) (model.Entity, bool) {
	e, ok := s.objects[key]
	return e, ok
}

// Count returns the number of entities held.
func (s *Store) Count() int { return len(s.objects) }

// Register inserts e under "<kind>.<id>", replacing any entity already
// held under that key. A nil entity, including a typed nil pointer, is
// ignored.
func (s *Store) Register(e model.Entity) {
	if isNil(e) {
		return
	}
	s.objects[model.Key(e)] = e
}

// Now returns the clock reading truncated to the stored timestamp
// resolution, in UTC.
func (s *Store) Now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Microsecond)
}

// NewID returns an identifier for a fresh entity.
func (s *Store) NewID() string {
	return s.ids.NewID()
}

func isNil(e model.Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
