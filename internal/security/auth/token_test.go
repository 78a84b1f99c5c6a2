package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	tm := NewTokenManager("secret", "orgadmin")

	token, err := tm.GenerateToken("sess-1", "admin", "system administrator", time.Minute)
	require.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sess-1", claims.ID)
	assert.Equal(t, "admin", claims.OperatorID)
	assert.Equal(t, "system administrator", claims.OperatorName)
	assert.Equal(t, "orgadmin", claims.Issuer)
}

func TestGenerateTokenRequiresSessionID(t *testing.T) {
	tm := NewTokenManager("secret", "orgadmin")
	_, err := tm.GenerateToken("", "admin", "x", time.Minute)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", "orgadmin").GenerateToken("sess-1", "admin", "x", time.Minute)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", "orgadmin").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	tm := NewTokenManager("secret", "orgadmin")
	token, err := tm.GenerateToken("sess-1", "admin", "x", -time.Minute)
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	tm := NewTokenManager("secret", "orgadmin")
	_, err := tm.ValidateToken("garbage")
	assert.Error(t, err)
}
