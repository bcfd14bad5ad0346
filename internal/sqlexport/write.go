package sqlexport

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/roach88/objstore/internal/model"
)

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// WriteEntity upserts one entity under key.
// The attribute mapping is stored as canonical JSON.
func (d *DB) WriteEntity(ctx context.Context, key string, e model.Entity) error {
	if err := writeEntity(ctx, d.db, key, e); err != nil {
		return fmt.Errorf("write entity: %w", err)
	}
	return nil
}

func writeEntity(ctx context.Context, x execer, key string, e model.Entity) error {
	r, err := rowOf(key, e)
	if err != nil {
		return err
	}

	_, err = x.ExecContext(ctx, `
		INSERT INTO entities
		(key, kind, id, created_at, updated_at, attributes)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			kind = excluded.kind,
			id = excluded.id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			attributes = excluded.attributes
	`,
		r.Key,
		r.Kind,
		r.ID,
		r.CreatedAt,
		r.UpdatedAt,
		r.Attributes,
	)
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Export writes every entity of a store snapshot in one transaction and
// records the export. Rows are written in key order.
// Returns the number of entities written.
func (d *DB) Export(ctx context.Context, sourcePath string, entities map[string]model.Entity, exportedAt time.Time) (int, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("export: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	keys := make([]string, 0, len(entities))
	for k := range entities {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		if err := writeEntity(ctx, tx, key, entities[key]); err != nil {
			return 0, fmt.Errorf("export: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO exports (source_path, entity_count, exported_at)
		VALUES (?, ?, ?)
	`, sourcePath, len(keys), model.FormatTime(exportedAt))
	if err != nil {
		return 0, fmt.Errorf("export: record export: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("export: commit: %w", err)
	}
	return len(keys), nil
}
