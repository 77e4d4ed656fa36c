// Package cryptox derives the deterministic credential digest that names the
// marker object in the remote store.
package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

// defaultSalt is deliberately fixed: the digest must be reproducible on any
// device so the marker object name alone can be recomputed for verification.
const defaultSalt = "signage-salt-key-2024"

// CredentialDigest returns the lowercase hex digest of password under the
// given salt. Same password and salt always produce the same digest; the
// digest is one-way (argon2id).
func CredentialDigest(password, salt string) string {
	if salt == "" {
		salt = defaultSalt
	}
	sum := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return hex.EncodeToString(sum)
}
