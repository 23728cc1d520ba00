package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndDecodeJWT(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateJWT(secret, "studio", AdminRole, time.Hour)
	require.NoError(t, err)

	claims, err := DecodeJWT(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "studio", claims["sub"])
	assert.Equal(t, AdminRole, claims["role"])
}

func TestDecodeJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT([]byte("one"), "studio", AdminRole, time.Hour)
	require.NoError(t, err)

	_, err = DecodeJWT([]byte("two"), token)
	assert.Error(t, err)
}

func TestDecodeJWT_Expired(t *testing.T) {
	secret := []byte("test-secret")
	token, err := GenerateJWT(secret, "studio", AdminRole, -time.Minute)
	require.NoError(t, err)

	_, err = DecodeJWT(secret, token)
	assert.Error(t, err)
}

func TestGenerateJWT_EmptySecret(t *testing.T) {
	_, err := GenerateJWT(nil, "studio", AdminRole, time.Hour)
	assert.Error(t, err)
}
