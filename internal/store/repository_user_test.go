// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Diego Castillo

package store

import (
	"context"
	"testing"

	"github.com/dcastillo/iot-telemetry/internal/logger"
	"github.com/dcastillo/iot-telemetry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUserRepository_CreateUser_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll, logger.Nop())

		mt.AddMockResponses(mtest.CreateSuccessResponse())

		created, err := repo.CreateUser(context.Background(), models.User{
			Email:        "alice@example.com",
			PasswordHash: "$2a$10$hash",
		})
		require.NoError(mt.T, err)
		assert.Equal(mt.T, "alice@example.com", created.Email)
		assert.False(mt.T, created.ID.IsZero(), "store-assigned id must be populated")
	})
}

func TestUserRepository_CreateUser_DuplicateEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate key", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll, logger.Nop())

		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection",
		}))

		_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
		assert.ErrorIs(mt.T, err, ErrEmailAlreadyExists)
	})
}

func TestUserRepository_CreateUser_StoreError(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("command error", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll, logger.Nop())

		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    11601,
			Name:    "Interrupted",
			Message: "operation was interrupted",
		}))

		_, err := repo.CreateUser(context.Background(), models.User{Email: "alice@example.com"})
		require.Error(mt.T, err)
		assert.NotErrorIs(mt.T, err, ErrEmailAlreadyExists)
	})
}

func TestUserRepository_FindUserByEmail_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find user", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll, logger.Nop())

		storedID := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: storedID},
			{Key: "email", Value: "alice@example.com"},
			{Key: "password_hash", Value: "$2a$10$hash"},
		}))

		foundUser, err := repo.FindUserByEmail(context.Background(), "alice@example.com")
		require.NoError(mt.T, err)
		assert.Equal(mt.T, storedID, foundUser.ID)
		assert.Equal(mt.T, "alice@example.com", foundUser.Email)
		assert.Equal(mt.T, "$2a$10$hash", foundUser.PasswordHash)
	})
}

func TestUserRepository_FindUserByEmail_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no documents", func(mt *mtest.T) {
		repo := NewUserRepository(mt.Coll, logger.Nop())

		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.DB.Name()+"."+mt.Coll.Name(), mtest.FirstBatch))

		_, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt.T, err, ErrNoUserWasFound)
	})
}
