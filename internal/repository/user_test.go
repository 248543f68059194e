package repository

import (
	"context"
	"testing"

	"gymflick/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := makeUser(t, "urepo")

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	byEmail, err := repo.GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	byUsername, err := repo.GetByUsername(ctx, user.Username)
	require.NoError(t, err)
	require.NotNil(t, byUsername)
	assert.Equal(t, user.ID, byUsername.ID)
}

func TestUserRepositoryLookupMissing(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	byEmail, err := repo.GetByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)

	byUsername, err := repo.GetByUsername(ctx, "nobody_here")
	require.NoError(t, err)
	assert.Nil(t, byUsername)

	_, err = repo.GetByID(ctx, 999999)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestUserRepositoryDuplicateIsConflict(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := makeUser(t, "dup")

	err := repo.Create(ctx, &models.User{
		Username: user.Username,
		Email:    user.Email,
		Password: "irrelevant",
	})
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}

func TestUserRepositoryMarkEmailVerified(t *testing.T) {
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := makeUser(t, "verify")
	assert.False(t, user.EmailVerified)

	require.NoError(t, repo.MarkEmailVerified(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
}
