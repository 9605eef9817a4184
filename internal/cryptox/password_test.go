package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cheap = Params{Time: 1, Memory: 8 * 1024, Threads: 1, SaltLen: 16, KeyLen: 32}

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(cheap)

	enc, err := h.Hash("abc123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$v=19$m=8192,t=1,p=1$"))
	assert.NotContains(t, enc, "abc123")

	ok, err := h.Verify("abc123", enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("abc124", enc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltedPerCall(t *testing.T) {
	h := NewHasher(cheap)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestHasher_VerifyUsesEncodedParams(t *testing.T) {
	enc, err := NewHasher(cheap).Hash("pw")
	require.NoError(t, err)

	ok, err := NewHasher(DefaultParams).Verify("pw", enc)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_Malformed(t *testing.T) {
	h := NewHasher(cheap)

	tests := []struct {
		name    string
		encoded string
	}{
		{"plaintext", "abc123"},
		{"wrong algo", "$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5"},
		{"wrong version", "$argon2id$v=16$m=8192,t=1,p=1$c2FsdA$a2V5"},
		{"bad params", "$argon2id$v=19$x$c2FsdA$a2V5"},
		{"bad salt", "$argon2id$v=19$m=8192,t=1,p=1$!!$a2V5"},
		{"empty key", "$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Verify("pw", tt.encoded)
			require.ErrorIs(t, err, ErrMalformedHash)
		})
	}
}

func TestWipe(t *testing.T) {
	b := []byte("secret")
	Wipe(b)
	assert.Equal(t, make([]byte, 6), b)

	Wipe(nil)
}
