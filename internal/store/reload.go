package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/roach88/objstore/internal/attr"
	"github.com/roach88/objstore/internal/model"
)

// ErrMalformedDocument means the backing file exists but is not a JSON
// object.
var ErrMalformedDocument = errors.New("malformed store document")

// Report describes the outcome of the last Reload.
type Report struct {
	Path string
	// Found is false when the backing file did not exist.
	Found bool
	// Loaded lists every key inserted, repaired ones included.
	Loaded   []string
	Repaired []Repaired
	Skipped  []Skipped
}

// Repaired is an entry that loaded with substitute values.
type Repaired struct {
	Key    string
	Issues []model.Issue
}

// Skipped is an entry that could not be loaded at all.
type Skipped struct {
	Key string
	Err error
}

// Clean reports whether every entry loaded as stored.
func (r Report) Clean() bool {
	return len(r.Repaired) == 0 && len(r.Skipped) == 0
}

// LastReport returns the report of the most recent Reload.
func (s *Store) LastReport() Report { return s.report }

// Reload reads the backing file and inserts its entities under the
// document's keys, replacing entities already held under those keys. Keys
// not in the document are left alone.
//
// A missing file is not an error. A file that is not a JSON object returns
// ErrMalformedDocument and leaves the store unchanged. Problems inside
// individual entries never fail the reload; see the package documentation.
func (s *Store) Reload() error {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug("no store file to reload", "path", s.path)
		s.report = Report{Path: s.path}
		return nil
	}
	if err != nil {
		return fmt.Errorf("reload %s: %w", s.path, err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("reload %s: %w: %w", s.path, ErrMalformedDocument, err)
	}
	if doc == nil {
		return fmt.Errorf("reload %s: %w: document is null", s.path, ErrMalformedDocument)
	}

	report := Report{Path: s.path, Found: true}
	for _, key := range slices.Sorted(maps.Keys(doc)) {
		e, issues, err := s.decodeEntry(key, doc[key])
		if err != nil {
			// Log and continue: one bad entry must not block the rest.
			s.logger.Warn("skipping store entry", "key", key, "error", err)
			report.Skipped = append(report.Skipped, Skipped{Key: key, Err: err})
			continue
		}
		if len(issues) > 0 {
			s.logger.Warn("repaired store entry", "key", key, "issues", joinIssues(issues))
			report.Repaired = append(report.Repaired, Repaired{Key: key, Issues: issues})
		}

		e.Meta().Bind(s)
		s.objects[key] = e
		report.Loaded = append(report.Loaded, key)
	}

	s.report = report
	s.logger.Debug("store reloaded",
		"path", s.path,
		"loaded", len(report.Loaded),
		"repaired", len(report.Repaired),
		"skipped", len(report.Skipped),
	)
	return nil
}

// decodeEntry decodes one document entry without touching the store.
func (s *Store) decodeEntry(key string, raw json.RawMessage) (model.Entity, []model.Issue, error) {
	var obj attr.Object
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, nil, fmt.Errorf("entry is not an attribute mapping: %w", err)
	}
	return model.Decode(obj, model.Fallback{
		ID:  func() string { return s.fallbackID(key) },
		Now: s.Now,
	})
}

// fallbackID takes the id from the "<kind>.<id>" key when the entry lacks
// one, and mints a fresh id when the key has no id part either.
func (s *Store) fallbackID(key string) string {
	if _, id, ok := strings.Cut(key, "."); ok && id != "" {
		return id
	}
	return s.NewID()
}

func joinIssues(issues []model.Issue) string {
	parts := make([]string, len(issues))
	for i, is := range issues {
		parts[i] = is.Error()
	}
	return strings.Join(parts, "; ")
}
