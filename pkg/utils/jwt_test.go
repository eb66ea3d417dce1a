package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	owner := uuid.New()

	token, err := m.GenerateAccessToken(owner, "owner@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, owner, claims.UserID)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, owner.String(), claims.Subject)
}

func TestJWTManager_Rejects(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)

	other, err := NewJWTManager("other", time.Hour).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(other)
	assert.Error(t, err, "wrong secret")

	expired, err := NewJWTManager("secret", -time.Minute).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(expired)
	assert.Error(t, err, "expired")

	noOwner, err := m.GenerateAccessToken(uuid.Nil, "")
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(noOwner)
	assert.Error(t, err, "nil owner")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &JWTClaims{UserID: uuid.New()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ValidateAccessToken(unsigned)
	assert.Error(t, err, "alg none")

	_, err = m.ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
