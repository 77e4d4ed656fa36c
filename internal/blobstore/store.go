// Package blobstore abstracts the remote object store that acts as the
// system of record for menu assets and the credential marker object.
//
// Overwrite-by-key is the only concurrency primitive the store offers:
// concurrent writers to the same key race and the last write wins. The
// signage design relies on that (deterministic per-screen keys), so no
// compare-and-swap operations are exposed here.
package blobstore

import "context"

// ObjectStore is the contract consumed by the credential and asset services.
type ObjectStore interface {
	// Put writes body under key, overwriting any previous object, and returns
	// a stable publicly renderable reference to the object.
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)

	// Head reports whether an object exists under key without fetching its
	// content.
	Head(ctx context.Context, key string) (bool, error)

	// Delete removes the object under key. Deleting a missing key is not an
	// error.
	Delete(ctx context.Context, key string) error

	// List returns the keys currently stored under the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)

	// Ref returns the stable reference for key without any network I/O.
	Ref(key string) string
}
