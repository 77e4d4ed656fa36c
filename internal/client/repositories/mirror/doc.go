// Package mirror persists the per-device, per-screen cache of last-known
// asset references. The mirror shortcuts lookups and provides a degraded
// answer when the remote store is unreachable; it must never permanently
// mask a successful remote update.
package mirror
