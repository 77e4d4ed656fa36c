package mirror

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/signage/internal/client/models"
	"github.com/dmitrijs2005/signage/internal/dbx"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Put upserts the cache entry for a screen. On conflict the reference and
// timestamp are replaced wholesale.
func (r *SQLiteRepository) Put(ctx context.Context, e *models.CacheEntry) error {
	query := ` INSERT INTO menu_cache (screen_id, content_ref, uploaded_at)
			values (?, ?, ?)
			ON CONFLICT(screen_id) DO UPDATE SET content_ref = excluded.content_ref,
				uploaded_at = excluded.uploaded_at
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ScreenID, e.ContentRef, e.UploadedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to upsert cache entry: %w", err)
	}
	return nil
}

// Get returns the cached entry for a screen, or nil when none exists.
func (r *SQLiteRepository) Get(ctx context.Context, screenID string) (*models.CacheEntry, error) {
	query := `select screen_id, content_ref, uploaded_at from menu_cache where screen_id = ?`

	var item models.CacheEntry
	var uploadedAt string
	err := r.db.QueryRowContext(ctx, query, screenID).Scan(&item.ScreenID, &item.ContentRef, &uploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select cache entry: %w", err)
	}

	ts, err := time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cache timestamp: %w", err)
	}
	item.UploadedAt = ts

	return &item, nil
}

// Delete removes the cached entry for a screen.
func (r *SQLiteRepository) Delete(ctx context.Context, screenID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM menu_cache WHERE screen_id = ?`, screenID)
	if err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}
