package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepositoryCreateAndGet(t *testing.T) {
	cleanTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	user := &models.User{Email: "a@x.com", Username: "alice", Password: "hash"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, "alice", got.Username)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	cleanTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	createTestUser(t, "found@x.com", "found")

	got, err := repo.GetByEmail(ctx, "found@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "found", got.Username)

	missing, err := repo.GetByEmail(ctx, "absent@x.com")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepositoryEmailUnique(t *testing.T) {
	cleanTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "dup@x.com", Username: "first", Password: "h"}))
	err := repo.Create(ctx, &models.User{Email: "dup@x.com", Username: "second", Password: "h"})
	assert.Error(t, err, "duplicate email must violate the unique constraint")
}

func TestUserRepositoryUsernameUnique(t *testing.T) {
	cleanTables(t)
	repo := NewUserRepository(testDB)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: "one@x.com", Username: "same", Password: "h"}))
	err := repo.Create(ctx, &models.User{Email: "two@x.com", Username: "same", Password: "h"})
	assert.Error(t, err, "duplicate username must violate the unique constraint")
}
