package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed lifetime of an issued token. Tokens are
// self-contained and stateless: logout never invalidates one server-side,
// validity is purely a function of signature and clock.
const TokenTTL = 24 * time.Hour

// Claims carries the minimal subject claim alongside the registered set.
// No roles or scopes: authorization is binary, authenticated or not.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenCodec issues and verifies HS256-signed bearer tokens with a
// process-wide symmetric secret supplied by configuration.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenCodec(secret []byte, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = TokenTTL
	}
	return &TokenCodec{secret: secret, ttl: ttl, now: time.Now}
}

// Issue signs a token for the given user id with the codec's fixed TTL.
func (c *TokenCodec) Issue(userID string) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		UserID: userID,
	})
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the subject user id.
// Any malformation is invalid, not ignored.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
