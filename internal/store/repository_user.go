package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// userRepository is the MongoDB-backed implementation of [UserRepository].
// It handles user account creation and lookup against the users collection.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of store interactions.
type userRepository struct {
	logger *logger.Logger
	col    *mongo.Collection
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// collection handle and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewUserRepository(col *mongo.Collection, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		col:    col,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// store-assigned document id populated.
//
// Error handling:
//   - Duplicate key on the unique email index → [ErrEmailAlreadyExists].
//     The register flow checks for an existing record before inserting, so
//     this only fires when two registrations race.
//   - Any other driver-level error → wrapped as "unexpected store error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	result, err := r.col.InsertOne(ctx, user)
	if err != nil {
		log.Err(err).Str("email", user.Email).Msg("error inserting user")

		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrEmailAlreadyExists
		}
		return models.User{}, fmt.Errorf("unexpected store error: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
		log.Debug().Str("id", oid.Hex()).Str("email", user.Email).Msg("user created")
	}

	return user, nil
}

// FindUserByEmail retrieves the user record whose email matches the given
// normalized email.
//
// Error handling:
//   - No matching document → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected store error".
func (r *userRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var foundUser models.User
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&foundUser)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("email", email).Msg("error finding user by email")
		return models.User{}, fmt.Errorf("unexpected store error: %w", err)
	}

	return foundUser, nil
}
