package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dcastillo/iot-telemetry/internal/config"
	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/internal/store"
	"github.com/dcastillo/iot-telemetry/internal/utils"
	"github.com/dcastillo/iot-telemetry/models"
	"golang.org/x/crypto/bcrypt"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenAudience is the "aud" claim embedded in every issued JWT.
	// Tokens whose audience does not match this value are rejected during parsing.
	tokenAudience string

	// tokenTTL controls how long a newly issued JWT remains valid.
	tokenTTL time.Duration
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with token parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	logger.Debug().Msg("creating auth service")
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenAudience:  cfg.TokenAudience,
		tokenTTL:       time.Duration(cfg.TokenExpiryMinutes) * time.Minute,
	}
}

// RegisterUser creates a new user account.
//
// It validates that both email and password are non-empty after trimming,
// normalizes the email to lowercase, checks explicitly for an existing
// record, hashes the password with bcrypt at the library default cost, and
// delegates persistence to the UserRepository.
//
// Returns the persisted user (with a store-assigned id) or:
//   - ErrInvalidDataProvided if email or password is empty after trimming.
//   - store.ErrEmailAlreadyExists if a record with the same normalized
//     email already exists.
//   - A wrapped storage error if a repository call fails.
func (a *authService) RegisterUser(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email, password, err := normalizeCredentials(email, password)
	if err != nil {
		log.Error().Msg("invalid registration data provided")
		return models.User{}, err
	}

	_, err = a.userRepository.FindUserByEmail(ctx, email)
	if err == nil {
		log.Warn().Str("email", email).Msg("registration for existing email")
		return models.User{}, store.ErrEmailAlreadyExists
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("email", email).Msg("user lookup failed")
		return models.User{}, fmt.Errorf("user lookup failed: %w", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, models.User{
		Email:        email,
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		log.Err(err).Str("email", email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user.
//
// It validates that both email and password are non-empty after trimming,
// normalizes the email, looks up the account, and verifies the supplied
// password against the stored bcrypt hash.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty after trimming.
//   - ErrInvalidCredentials if the user does not exist or the password does
//     not match. The two cases are deliberately indistinguishable.
//   - A wrapped storage error if the repository lookup fails unexpectedly.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	email, password, err := normalizeCredentials(email, password)
	if err != nil {
		log.Error().Msg("invalid login data provided")
		return models.User{}, err
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Warn().Str("email", email).Msg("login for unknown email")
			return models.User{}, ErrInvalidCredentials
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(foundUser.PasswordHash), []byte(password)); err != nil {
		log.Warn().Str("email", email).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured issuer and audience claims, a fresh jti, and expires after the
// configured validity window.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, a.tokenAudience, user.Email, a.tokenTTL, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature,
// expiry, issuer, and audience claims. Any validation failure is normalised
// to ErrTokenIsExpiredOrInvalid so that callers do not need to inspect
// low-level JWT errors.
//
// Returns the decoded token model on success or ErrTokenIsExpiredOrInvalid on
// any validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer, a.tokenAudience)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}

// normalizeCredentials lower-cases and trims the email and validates that
// both fields are non-blank. The password is passed through untouched:
// surrounding whitespace is significant for hashing and verification.
// Returns ErrInvalidDataProvided when either field is blank.
func normalizeCredentials(email, password string) (string, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || strings.TrimSpace(password) == "" {
		return "", "", ErrInvalidDataProvided
	}

	return email, password, nil
}
