// Package assets implements the per-screen asset store: an uploaded image
// becomes the authoritative menu content for a screen under a deterministic,
// overwritable key in the remote object store.
package assets

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/signage/internal/blobstore"
	"github.com/dmitrijs2005/signage/internal/common"
	"github.com/dmitrijs2005/signage/internal/logging"
	"github.com/dmitrijs2005/signage/internal/server/config"
	"github.com/dmitrijs2005/signage/internal/server/models"
)

// MaxAssetSize is the upload size limit (5 MiB).
const MaxAssetSize = 5 * 1024 * 1024

// knownExtensions is the closed set of extensions an asset key can carry.
// Resolve probes them in this order; uploads with anything else fall back to
// png. Keeping the set closed bounds the probe and makes sibling cleanup
// possible.
var knownExtensions = []string{"png", "jpg", "jpeg", "gif", "webp"}

// Service exposes upload and resolve operations for screen assets.
type Service struct {
	store   blobstore.ObjectStore
	timeout time.Duration
	logger  logging.Logger
}

func NewService(store blobstore.ObjectStore, cfg *config.Config, logger logging.Logger) *Service {
	return &Service{
		store:   store,
		timeout: cfg.StoreTimeout,
		logger:  logger.With("module", "assets"),
	}
}

// assetKey builds the deterministic storage key for a screen. The key is
// independent of content, which is what gives uploads their overwrite
// semantics: a new upload replaces the old object at the same key.
func assetKey(screenID, ext string) string {
	return fmt.Sprintf("screen-%s-menu.%s", screenID, ext)
}

// extensionFor extracts a usable extension from the uploaded file name,
// defaulting to png when the name carries none or an unknown one.
func extensionFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, known := range knownExtensions {
		if ext == known {
			return ext
		}
	}
	return "png"
}

// Upload validates and persists a menu image for the given screen.
//
// Validation runs strictly before any network I/O: the declared MIME type
// must be an image and the payload must not exceed MaxAssetSize. Any screen
// identifier that round-trips the key scheme is acceptable; the store has no
// notion of a fixed screen roster.
func (s *Service) Upload(ctx context.Context, screenID string, data []byte, mimeType, filename string) (*models.ScreenAsset, error) {
	if screenID == "" {
		return nil, common.ErrNoScreenID
	}
	if len(data) == 0 {
		return nil, common.ErrNoFile
	}
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, common.ErrInvalidType
	}
	if len(data) > MaxAssetSize {
		return nil, common.ErrTooLarge
	}

	ext := extensionFor(filename)
	key := assetKey(screenID, ext)

	pctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ref, err := s.store.Put(pctx, key, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("uploading asset for screen %s: %w", screenID, err)
	}

	s.cleanupSiblings(ctx, screenID, ext)

	sum := sha256.Sum256(data)

	s.logger.Info(ctx, "asset uploaded", "screen_id", screenID, "key", key, "size", len(data))

	return &models.ScreenAsset{
		ScreenID:    screenID,
		ContentRef:  ref,
		ContentHash: hex.EncodeToString(sum[:]),
		Extension:   ext,
		UpdatedAt:   time.Now(),
	}, nil
}

// cleanupSiblings removes keys for the same screen under other extensions so
// that at most one live object per screen survives an extension change.
// Best-effort: a failure leaves a stale sibling behind, which the next upload
// under that extension will overwrite anyway.
func (s *Service) cleanupSiblings(ctx context.Context, screenID, keepExt string) {
	for _, ext := range knownExtensions {
		if ext == keepExt {
			continue
		}
		dctx, cancel := context.WithTimeout(ctx, s.timeout)
		err := s.store.Delete(dctx, assetKey(screenID, ext))
		cancel()
		if err != nil {
			s.logger.Warn(ctx, "failed to delete stale sibling asset",
				"screen_id", screenID, "ext", ext, "error", err)
		}
	}
}

// Resolve returns the authoritative content reference for a screen, probing
// the deterministic key across the known extensions with metadata-only
// checks. It returns common.ErrNotFound when no menu has ever been uploaded
// for the screen, and common.ErrStoreUnavailable on remote I/O failure.
func (s *Service) Resolve(ctx context.Context, screenID string) (string, error) {
	if screenID == "" {
		return "", common.ErrNoScreenID
	}

	for _, ext := range knownExtensions {
		key := assetKey(screenID, ext)

		hctx, cancel := context.WithTimeout(ctx, s.timeout)
		exists, err := s.store.Head(hctx, key)
		cancel()

		if err != nil {
			return "", fmt.Errorf("resolving asset for screen %s: %w", screenID, err)
		}
		if exists {
			return s.store.Ref(key), nil
		}
	}

	return "", common.ErrNotFound
}
