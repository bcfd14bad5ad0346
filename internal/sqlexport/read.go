package sqlexport

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/objstore/internal/attr"
	"github.com/roach88/objstore/internal/model"
)

// ErrNotFound is returned when no row exists for a key.
var ErrNotFound = errors.New("entity not found")

// Row is one exported entity.
type Row struct {
	Key        string
	Kind       string
	ID         string
	CreatedAt  string
	UpdatedAt  string
	Attributes string
}

// ReadEntity returns the row stored under key.
func (d *DB) ReadEntity(ctx context.Context, key string) (Row, error) {
	var r Row
	err := d.db.QueryRowContext(ctx, `
		SELECT key, kind, id, created_at, updated_at, attributes
		FROM entities
		WHERE key = ?
	`, key).Scan(&r.Key, &r.Kind, &r.ID, &r.CreatedAt, &r.UpdatedAt, &r.Attributes)
	if errors.Is(err, sql.ErrNoRows) {
		return Row{}, fmt.Errorf("read entity %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return Row{}, fmt.Errorf("read entity %s: %w", key, err)
	}
	return r, nil
}

// Count returns the number of exported entities.
func (d *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entities").Scan(&n); err != nil {
		return 0, fmt.Errorf("count entities: %w", err)
	}
	return n, nil
}

// ExportCount returns how many exports have been recorded.
func (d *DB) ExportCount(ctx context.Context) (int, error) {
	var n int
	if err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM exports").Scan(&n); err != nil {
		return 0, fmt.Errorf("count exports: %w", err)
	}
	return n, nil
}

// Mismatch is an entity whose exported row does not match the store.
type Mismatch struct {
	Key    string `json:"key" yaml:"key"`
	Reason string `json:"reason" yaml:"reason"`
}

// Verify reads back the row of every entity and compares it with the
// in-memory entity. Mismatches are returned in key order. Rows for keys not
// in entities are ignored; earlier exports may have left them.
func (d *DB) Verify(ctx context.Context, entities map[string]model.Entity) ([]Mismatch, error) {
	var out []Mismatch
	for _, key := range slices.Sorted(maps.Keys(entities)) {
		want, err := rowOf(key, entities[key])
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}

		got, err := d.ReadEntity(ctx, key)
		if errors.Is(err, ErrNotFound) {
			out = append(out, Mismatch{Key: key, Reason: "no row"})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("verify: %w", err)
		}
		if reason := compareRows(want, got); reason != "" {
			out = append(out, Mismatch{Key: key, Reason: reason})
		}
	}
	return out, nil
}

// rowOf builds the row writeEntity stores for e.
func rowOf(key string, e model.Entity) (Row, error) {
	attrsJSON, err := attr.MarshalCanonical(e.Attributes())
	if err != nil {
		return Row{}, fmt.Errorf("marshal attributes of %s: %w", key, err)
	}
	meta := e.Meta()
	return Row{
		Key:        key,
		Kind:       e.Kind(),
		ID:         meta.ID(),
		CreatedAt:  model.FormatTime(meta.CreatedAt()),
		UpdatedAt:  model.FormatTime(meta.UpdatedAt()),
		Attributes: string(attrsJSON),
	}, nil
}

func compareRows(want, got Row) string {
	switch {
	case want.Kind != got.Kind:
		return fmt.Sprintf("kind is %q, want %q", got.Kind, want.Kind)
	case want.ID != got.ID:
		return fmt.Sprintf("id is %q, want %q", got.ID, want.ID)
	case want.CreatedAt != got.CreatedAt:
		return fmt.Sprintf("created_at is %s, want %s", got.CreatedAt, want.CreatedAt)
	case want.UpdatedAt != got.UpdatedAt:
		return fmt.Sprintf("updated_at is %s, want %s", got.UpdatedAt, want.UpdatedAt)
	case want.Attributes != got.Attributes:
		return "attributes differ"
	}
	return ""
}
