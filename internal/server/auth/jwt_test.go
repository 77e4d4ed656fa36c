package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/signage/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken(testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, VerifyToken(token, testSecret))
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(testSecret, time.Minute)
	require.NoError(t, err)

	err = VerifyToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifyToken_Expired(t *testing.T) {
	token, err := GenerateToken(testSecret, -time.Minute)
	require.NoError(t, err)

	err = VerifyToken(token, testSecret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	err := VerifyToken("not-a-jwt", testSecret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerifyToken_MissingAdminFlag(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
		Admin: false,
	})
	token, err := raw.SignedString(testSecret)
	require.NoError(t, err)

	assert.ErrorIs(t, VerifyToken(token, testSecret), common.ErrUnauthorized)
}
