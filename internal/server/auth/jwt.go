// Package auth issues and verifies the short-lived session tokens backing
// the admin session gate. Tokens are orthogonal to the durable credential
// marker: they exist only for the lifetime of a browsing session.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/signage/internal/common"
)

// Claims carries the standard claims plus a single Admin flag. There is no
// per-user identity anywhere in the system: one shared credential, one kind
// of session.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool
}

// GenerateToken issues an HS256 session token valid for validityDuration.
func GenerateToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Admin: true,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyToken parses and validates tokenString. It returns
// common.ErrInvalidToken for malformed, expired or wrongly signed tokens,
// and common.ErrUnauthorized when the token carries no admin flag.
func VerifyToken(tokenString string, secretKey []byte) error {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}

	if !claims.Admin {
		return common.ErrUnauthorized
	}

	return nil
}
