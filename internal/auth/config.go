package auth

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	Secret   []byte
	TokenTTL time.Duration
}

// ConfigFromEnv reads the signing secret and token lifetime from env vars.
// AUTH_SECRET is required; the secret must never be a literal in source.
func ConfigFromEnv() (Config, error) {
	secret := os.Getenv("AUTH_SECRET")
	if secret == "" {
		return Config{}, errors.New("AUTH_SECRET is required")
	}
	ttl := TokenTTL
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.New("TOKEN_TTL is not a valid duration")
		}
		ttl = parsed
	}
	return Config{Secret: []byte(secret), TokenTTL: ttl}, nil
}
