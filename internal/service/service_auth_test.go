// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Diego Castillo

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dcastillo/iot-telemetry/internal/config"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/store"
	"github.com/dcastillo/iot-telemetry/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// Mock UserRepository
// ─────────────────────────────────────────────

// mockUserRepository implements store.UserRepository for unit tests.
// Each method field can be overridden per test case.
type mockUserRepository struct {
	createUserFn      func(ctx context.Context, user models.User) (models.User, error)
	findUserByEmailFn func(ctx context.Context, email string) (models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.createUserFn(ctx, user)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.findUserByEmailFn(ctx, email)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

var testAppConfig = config.App{
	TokenSignKey:       "test-sign-key",
	TokenIssuer:        "iot-telemetry",
	TokenAudience:      "iot-clients",
	TokenExpiryMinutes: 30,
}

// newTestAuthService builds an authService over the given repository mock.
func newTestAuthService(t *testing.T, repo store.UserRepository) AuthService {
	t.Helper()
	return NewAuthService(repo, testAppConfig, logger.Nop())
}

// noUserRepo reports every email as unknown.
func noUserRepo() *mockUserRepository {
	return &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			return user, nil
		},
	}
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	var createdUser models.User

	repo := noUserRepo()
	repo.createUserFn = func(_ context.Context, user models.User) (models.User, error) {
		createdUser = user
		return user, nil
	}

	svc := newTestAuthService(t, repo)

	registered, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", registered.Email)
	assert.NotEqual(t, "secret123", createdUser.PasswordHash, "password must be stored hashed")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(createdUser.PasswordHash), []byte("secret123")))
}

func TestAuthService_RegisterUser_NormalizesEmail(t *testing.T) {
	var lookedUpEmail string

	repo := noUserRepo()
	repo.findUserByEmailFn = func(_ context.Context, email string) (models.User, error) {
		lookedUpEmail = email
		return models.User{}, store.ErrNoUserWasFound
	}

	svc := newTestAuthService(t, repo)

	registered, err := svc.RegisterUser(context.Background(), "  Alice@Example.COM ", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", lookedUpEmail)
	assert.Equal(t, "alice@example.com", registered.Email)
}

func TestAuthService_RegisterUser_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(t, noUserRepo())

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "secret123"},
		{name: "empty password", email: "alice@example.com", password: ""},
		{name: "whitespace only", email: "   ", password: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RegisterUser(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	repo := noUserRepo()
	repo.findUserByEmailFn = func(_ context.Context, email string) (models.User, error) {
		return models.User{Email: email}, nil
	}

	svc := newTestAuthService(t, repo)

	_, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret123")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// a differently-cased registration must collide with the stored
// lowercase record
func TestAuthService_RegisterUser_DuplicateEmailDifferentCase(t *testing.T) {
	existing := map[string]models.User{
		"alice@example.com": {Email: "alice@example.com"},
	}

	repo := noUserRepo()
	repo.findUserByEmailFn = func(_ context.Context, email string) (models.User, error) {
		user, ok := existing[email]
		if !ok {
			return models.User{}, store.ErrNoUserWasFound
		}
		return user, nil
	}

	svc := newTestAuthService(t, repo)

	_, err := svc.RegisterUser(context.Background(), "ALICE@EXAMPLE.COM", "secret123")
	assert.ErrorIs(t, err, store.ErrEmailAlreadyExists)
}

func TestAuthService_RegisterUser_LookupError(t *testing.T) {
	lookupErr := errors.New("connection reset")

	repo := noUserRepo()
	repo.findUserByEmailFn = func(_ context.Context, _ string) (models.User, error) {
		return models.User{}, lookupErr
	}

	svc := newTestAuthService(t, repo)

	_, err := svc.RegisterUser(context.Background(), "alice@example.com", "secret123")
	require.Error(t, err)
	assert.ErrorIs(t, err, lookupErr)
	assert.NotErrorIs(t, err, store.ErrEmailAlreadyExists)
}

// surrounding whitespace in a password is significant: the raw value is
// hashed, so the trimmed variant must not verify
func TestAuthService_PasswordWhitespaceIsSignificant(t *testing.T) {
	users := map[string]models.User{}

	repo := &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, email string) (models.User, error) {
			user, ok := users[email]
			if !ok {
				return models.User{}, store.ErrNoUserWasFound
			}
			return user, nil
		},
		createUserFn: func(_ context.Context, user models.User) (models.User, error) {
			users[user.Email] = user
			return user, nil
		},
	}

	svc := newTestAuthService(t, repo)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, "alice@example.com", " secret123 ")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "alice@example.com", " secret123 ")
	assert.NoError(t, err, "the exact registered password must verify")

	_, err = svc.Login(ctx, "alice@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "the trimmed variant must not verify")
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

// repoWithUser stores a single user with the given password pre-hashed.
func repoWithUser(t *testing.T, email, password string) *mockUserRepository {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	stored := models.User{Email: email, PasswordHash: string(hash)}

	return &mockUserRepository{
		findUserByEmailFn: func(_ context.Context, lookup string) (models.User, error) {
			if lookup != email {
				return models.User{}, store.ErrNoUserWasFound
			}
			return stored, nil
		},
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	svc := newTestAuthService(t, repoWithUser(t, "alice@example.com", "secret123"))

	foundUser, err := svc.Login(context.Background(), "Alice@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", foundUser.Email)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(t, repoWithUser(t, "alice@example.com", "secret123"))

	_, err := svc.Login(context.Background(), "bob@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc := newTestAuthService(t, repoWithUser(t, "alice@example.com", "secret123"))

	_, err := svc.Login(context.Background(), "alice@example.com", "not-the-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// an unknown email and a wrong password must be indistinguishable for the
// caller
func TestAuthService_Login_ErrorsAreIndistinguishable(t *testing.T) {
	svc := newTestAuthService(t, repoWithUser(t, "alice@example.com", "secret123"))

	_, unknownEmailErr := svc.Login(context.Background(), "bob@example.com", "secret123")
	_, wrongPasswordErr := svc.Login(context.Background(), "alice@example.com", "wrong")

	assert.Equal(t, unknownEmailErr, wrongPasswordErr)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(t, repoWithUser(t, "alice@example.com", "secret123"))

	_, err := svc.Login(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_CreateToken_ParseToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t, noUserRepo())
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", parsed.Email)
}

func TestAuthService_CreateToken_FreshTokenIDPerIssuance(t *testing.T) {
	svc := newTestAuthService(t, noUserRepo())
	ctx := context.Background()

	first, err := svc.CreateToken(ctx, models.User{Email: "alice@example.com"})
	require.NoError(t, err)
	second, err := svc.CreateToken(ctx, models.User{Email: "alice@example.com"})
	require.NoError(t, err)

	assert.NotEqual(t, first.TokenClaims.ID, second.TokenClaims.ID)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	svc := newTestAuthService(t, noUserRepo())

	_, err := svc.ParseToken(context.Background(), "not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongSignKey(t *testing.T) {
	otherCfg := testAppConfig
	otherCfg.TokenSignKey = "a-different-key"

	issuer := NewAuthService(noUserRepo(), otherCfg, logger.Nop())
	token, err := issuer.CreateToken(context.Background(), models.User{Email: "alice@example.com"})
	require.NoError(t, err)

	svc := newTestAuthService(t, noUserRepo())
	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	otherCfg := testAppConfig
	otherCfg.TokenIssuer = "some-other-service"

	issuer := NewAuthService(noUserRepo(), otherCfg, logger.Nop())
	token, err := issuer.CreateToken(context.Background(), models.User{Email: "alice@example.com"})
	require.NoError(t, err)

	svc := newTestAuthService(t, noUserRepo())
	_, err = svc.ParseToken(context.Background(), token.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	expired := signExpiredToken(t, testAppConfig)

	svc := newTestAuthService(t, noUserRepo())
	_, err := svc.ParseToken(context.Background(), expired)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// signExpiredToken signs a token whose validity window ended an hour ago.
func signExpiredToken(t *testing.T, cfg config.App) string {
	t.Helper()

	issuedAt := time.Now().Add(-2 * time.Hour)
	claims := models.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.TokenIssuer,
			Audience:  jwt.ClaimStrings{cfg.TokenAudience},
			Subject:   "alice@example.com",
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
		},
		Name: "alice@example.com",
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.TokenSignKey))
	require.NoError(t, err)

	return signed
}
