// Package models defines the client-side domain types.
package models

import "time"

// CacheEntry is the last-known asset reference for a screen, persisted in
// the device-local mirror. It is never authoritative: the remote store wins
// whenever it can be reached.
type CacheEntry struct {
	ScreenID   string
	ContentRef string
	UploadedAt time.Time
}
