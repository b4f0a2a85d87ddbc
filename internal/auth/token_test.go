package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("super-secret"), TokenTTL)

	tok, err := codec.Issue("user-123")
	require.NoError(t, err)

	userID, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenCodec_ExpiryBoundary(t *testing.T) {
	t.Parallel()

	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	codec := NewTokenCodec([]byte("secret"), TokenTTL)
	codec.now = func() time.Time { return issuedAt }

	tok, err := codec.Issue("u1")
	require.NoError(t, err)

	// still valid just before the 24h mark
	codec.now = func() time.Time { return issuedAt.Add(23*time.Hour + 59*time.Minute) }
	userID, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)

	// rejected just after
	codec.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Minute) }
	_, err = codec.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenCodec([]byte("right-secret"), TokenTTL).Issue("u2")
	require.NoError(t, err)

	_, err = NewTokenCodec([]byte("wrong-secret"), TokenTTL).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()

	codec := NewTokenCodec([]byte("k"), TokenTTL)

	_, err := codec.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_RejectsUnexpectedAlgorithm(t *testing.T) {
	t.Parallel()

	secret := []byte("shared")
	codec := NewTokenCodec(secret, TokenTTL)

	// a well-formed token signed with a different HMAC variant must not pass
	other := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "u3",
	})
	signed, err := other.SignedString(secret)
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenCodec_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("shared")
	codec := NewTokenCodec(secret, TokenTTL)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := anonymous.SignedString(secret)
	require.NoError(t, err)

	_, err = codec.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
