package mirror

import (
	"context"

	"github.com/dmitrijs2005/signage/internal/client/models"
)

// Repository describes the local cache mirror operations. Implementations
// are typically backed by a local SQLite database.
type Repository interface {
	// Put unconditionally overwrites the entry for entry.ScreenID.
	// Last writer wins; there is no merge.
	Put(ctx context.Context, entry *models.CacheEntry) error

	// Get returns the entry for screenID, or nil when the mirror holds
	// nothing for that screen.
	Get(ctx context.Context, screenID string) (*models.CacheEntry, error)

	// Delete removes the entry for screenID. Deleting a missing entry is not
	// an error.
	Delete(ctx context.Context, screenID string) error
}
