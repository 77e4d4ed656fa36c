// Package models defines the server-side domain types.
package models

import "time"

// ScreenAsset describes the menu image currently associated with a screen.
// There is at most one live asset per screen: uploads overwrite, they never
// version.
type ScreenAsset struct {
	// ScreenID is an opaque stable identifier, typically the string form of a
	// positive integer. The store has no fixed screen roster.
	ScreenID string

	// ContentRef is a stable locator usable directly as a renderable
	// reference. Empty means no menu has been uploaded yet.
	ContentRef string

	// ContentHash is the hex sha256 of the uploaded bytes. It does not
	// participate in the storage key; it lets callers observe idempotent
	// re-uploads.
	ContentHash string

	// Extension is the lowercase file extension the storage key was built
	// from.
	Extension string

	// UpdatedAt is the time of the last successful upload.
	UpdatedAt time.Time
}
