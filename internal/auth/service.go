package auth

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/crewdeck/crewdeck/internal/user/entity"
	"github.com/crewdeck/crewdeck/pkg/utilities"
)

// UserStore is the persistence contract the auth core consumes. Missing
// rows surface as sql.ErrNoRows; Create returns entity.ErrDuplicateEmail
// when the store's unique email constraint rejects the insert.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, u *entity.User) error
}

// PasswordHasher defines minimal hashing interface (abstract so we can swap to argon2 later).
type PasswordHasher interface {
	Hash(pw string) (string, error)
	Verify(hash, pw string) bool
}

// BcryptHasher implementation. Cost 12 keeps a single hash around the
// 100ms mark on current hardware.
type BcryptHasher struct{ Cost int }

func (b BcryptHasher) Hash(pw string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (b BcryptHasher) Verify(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

const minPasswordLen = 6

// Identity is what Verify attaches to a request on success.
type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

// Service orchestrates registration, login and token verification. It owns
// the password hashing policy and the only password-vs-hash comparison in
// the system.
type Service struct {
	store  UserStore
	hasher PasswordHasher
	codec  *TokenCodec
}

func NewService(store UserStore, hasher PasswordHasher, codec *TokenCodec) *Service {
	if hasher == nil {
		hasher = BcryptHasher{Cost: 12}
	}
	return &Service{store: store, hasher: hasher, codec: codec}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if email == "" || password == "" {
		details := map[string]string{}
		if email == "" {
			details["email"] = "Email is required"
		}
		if password == "" {
			details["password"] = "Password is required"
		}
		return &ValidationError{Message: "Email and password are required", Details: details}
	}
	return nil
}

// Register validates input, hashes the password and persists a new user,
// then issues a token for the fresh account.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}
	if !emailPattern.MatchString(email) {
		return "", &ValidationError{Message: "Invalid email format"}
	}
	if len(password) < minPasswordLen {
		return "", &ValidationError{Message: "Password must be at least 6 characters long"}
	}

	// Existence pre-check; the store constraint still backstops the race
	// between two concurrent registrations for the same address.
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return "", ErrEmailTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return "", err
	}
	u := &entity.User{
		ID:           utilities.NewKSUID(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, entity.ErrDuplicateEmail) {
			return "", ErrEmailTaken
		}
		return "", err
	}
	return s.codec.Issue(u.ID)
}

// Login authenticates by email and password and issues a fresh token,
// independent of any prior one. Unknown email and wrong password collapse
// into the same failure. Last-login and the failed-login counter are
// intentionally left untouched.
func (s *Service) Login(ctx context.Context, email, password string) (string, entity.Summary, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", entity.Summary{}, err
	}

	u, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", entity.Summary{}, ErrInvalidCredentials
		}
		return "", entity.Summary{}, err
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return "", entity.Summary{}, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(u.ID)
	if err != nil {
		return "", entity.Summary{}, err
	}
	return token, u.Summary(), nil
}

// Verify checks a token's signature and expiry, then loads the subject
// user. A vanished subject fails the same way as a bad token so account
// existence never leaks through a different status.
func (s *Service) Verify(ctx context.Context, token string) (Identity, error) {
	userID, err := s.codec.Verify(token)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	u, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Identity{}, ErrInvalidToken
		}
		return Identity{}, err
	}
	return Identity{UserID: u.ID, Email: u.Email}, nil
}
