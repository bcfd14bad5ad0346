package sqlexport

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/roach88/objstore/internal/model"
	"github.com/roach88/objstore/internal/testutil"
)

// createTestDB opens a fresh database in a temp dir.
func createTestDB(t *testing.T) *DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

// entitySet is a model.Store that only collects registrations.
type entitySet struct {
	clock   *testutil.DeterministicClock
	ids     *testutil.SequentialIDs
	objects map[string]model.Entity
}

func newEntitySet() *entitySet {
	return &entitySet{
		clock:   testutil.NewDeterministicClock(),
		ids:     testutil.NewSequentialIDs("id"),
		objects: map[string]model.Entity{},
	}
}

func (s *entitySet) Register(e model.Entity) { s.objects[model.Key(e)] = e }
func (s *entitySet) Save() error             { return nil }
func (s *entitySet) Now() time.Time          { return s.clock.Now() }
func (s *entitySet) NewID() string           { return s.ids.NewID() }

// readKind returns every row of one kind ordered by id.
func readKind(t *testing.T, d *DB, kind string) []Row {
	t.Helper()
	rows, err := d.db.QueryContext(context.Background(), `
		SELECT key, kind, id, created_at, updated_at, attributes
		FROM entities
		WHERE kind = ?
		ORDER BY id COLLATE BINARY ASC
	`, kind)
	if err != nil {
		t.Fatalf("query kind %s: %v", kind, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Key, &r.Kind, &r.ID, &r.CreatedAt, &r.UpdatedAt, &r.Attributes); err != nil {
			t.Fatalf("scan row: %v", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("iterate rows: %v", err)
	}
	return out
}
