package store

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/roach88/objstore/internal/attr"
)

const filePerm fs.FileMode = 0o644

// Encode renders the whole collection as the canonical document.
func (s *Store) Encode() ([]byte, error) {
	doc := make(attr.Object, len(s.objects))
	for key, e := range s.objects {
		doc[key] = e.Attributes()
	}
	data, err := attr.MarshalCanonical(doc)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return data, nil
}

// Save overwrites the backing file with every entity currently held.
// Filesystem errors are returned unrecovered.
func (s *Store) Save() error {
	data, err := s.Encode()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := writeFileAtomic(s.path, data, filePerm); err != nil {
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	s.logger.Debug("store saved", "path", s.path, "entities", len(s.objects), "bytes", len(data))
	return nil
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers see either the old or the new document.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
