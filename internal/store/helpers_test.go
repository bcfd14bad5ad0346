package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/objstore/internal/testutil"
)

// newTestStore creates a store in a temp dir with a deterministic clock.
// With no ids, entities get "id-1", "id-2", ...
func newTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "file.json")

	var gen IDGenerator = testutil.NewSequentialIDs("id")
	if len(ids) > 0 {
		gen = testutil.NewFixedIDs(ids...)
	}
	return New(path,
		WithClock(testutil.NewDeterministicClock()),
		WithIDGenerator(gen),
	)
}

// writeDocument replaces the backing file of s with raw content.
func writeDocument(t *testing.T, s *Store, content string) {
	t.Helper()
	if err := os.WriteFile(s.Path(), []byte(content), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
}

func readDocument(t *testing.T, s *Store) string {
	t.Helper()
	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	return string(data)
}
