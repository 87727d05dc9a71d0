package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordFormat(t *testing.T) {
	encoded, err := HashPassword("SuperSecret123", "", 1000)
	require.NoError(t, err)

	parts := strings.Split(encoded, "$")
	require.Len(t, parts, 4)
	assert.Equal(t, "pbkdf2_sha256", parts[0])
	assert.Equal(t, "1000", parts[1])
	assert.Len(t, parts[2], 32) // 16 salt bytes, hex
	assert.Len(t, parts[3], 64) // 32 key bytes, hex
}

func TestHashPasswordRandomSalt(t *testing.T) {
	a, err := HashPassword("SuperSecret123", "", 1000)
	require.NoError(t, err)
	b, err := HashPassword("SuperSecret123", "", 1000)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "same password must hash differently (random salt)")
}

func TestHashPasswordEmpty(t *testing.T) {
	_, err := HashPassword("", "", 1000)
	assert.Error(t, err)
}

func TestCheckPasswordRoundTrip(t *testing.T) {
	encoded, err := HashPassword("SuperSecret123", "pepper", 1000)
	require.NoError(t, err)

	assert.True(t, CheckPassword("SuperSecret123", "pepper", encoded))
	assert.False(t, CheckPassword("WrongPassword1", "pepper", encoded))
	assert.False(t, CheckPassword("SuperSecret123", "other-pepper", encoded))
}

func TestCheckPasswordMalformed(t *testing.T) {
	cases := []string{
		"",
		"not-an-encoded-hash",
		"bcrypt$1000$aabb$ccdd",            // wrong algorithm tag
		"pbkdf2_sha256$zero$aabb$ccdd",     // bad iteration count
		"pbkdf2_sha256$1000$nothex$ccdd",   // bad salt
		"pbkdf2_sha256$1000$aabb$nothex",   // bad key
		"pbkdf2_sha256$1000$aabb",          // missing field
		"pbkdf2_sha256$-5$aabb$ccdd",       // negative iterations
	}
	for _, encoded := range cases {
		assert.False(t, CheckPassword("anything", "", encoded), "encoded=%q", encoded)
	}
}

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	require.NoError(t, err)
	b, err := NewSessionToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "+", "token must be URL-safe")
	assert.NotContains(t, a, "/", "token must be URL-safe")
	assert.GreaterOrEqual(t, len(a), 40)
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	assert.Equal(t, h1, h2, "digest must be deterministic for lookups")
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, HashToken("other-token"))
	assert.NotContains(t, h1, "some-token")
}
