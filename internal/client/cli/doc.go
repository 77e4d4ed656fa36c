// Package cli provides the interactive signage admin console.
//
// It wires configuration, the server API client and the session gate into an
// interactive REPL. Typical flow: check whether a password exists, set one up
// or log in, then upload and inspect per-screen menus.
//
// Key features:
//   - Setup / Login / Logout against the server's auth surface
//   - Upload a menu image for a screen
//   - Resolve the current menu of a screen
//   - List configured screens
//   - Rotate the admin password
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
