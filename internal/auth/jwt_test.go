package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-0123456789abcdef"

func TestGenerateAndVerify_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	token, err := m.Generate("user-42")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.Equal(t, "user-42", claims.Subject)
	assert.Equal(t, "devconnector", claims.Issuer)
	assert.WithinDuration(t, time.Now().UTC().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestGenerate_DistinctTokensPerCall(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	a, err := m.Generate("user-42")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond) // iat has second granularity
	b, err := m.Generate("user-42")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVerify_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, -time.Minute)

	token, err := m.Generate("user-42")
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.Error(t, err)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer := NewTokenManager(testSecret, time.Hour)
	verifier := NewTokenManager("a-completely-different-secret-key", time.Hour)

	token, err := issuer.Generate("user-42")
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.Error(t, err)
}

func TestVerify_TamperedSignature(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	token, err := m.Generate("user-42")
	require.NoError(t, err)

	// Flip one byte in the signature segment.
	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.Verify(tampered)
	assert.Error(t, err)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Verify(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestVerify_RejectsNonHMACAlgorithm(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	// Unsigned token with alg=none.
	unsigned := "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VyX2lkIjoidSJ9."
	_, err := m.Verify(unsigned)
	assert.Error(t, err)
}
