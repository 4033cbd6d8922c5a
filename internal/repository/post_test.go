package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestPost(t *testing.T, authorID uint, title string) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    title,
		Subtitle: "subtitle",
		Body:     "body",
		ImageURL: "https://example.com/img.png",
		Date:     "August 28, 2026",
		AuthorID: authorID,
	}
	if err := testDB.Create(post).Error; err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

func TestPostRepositoryRoundTrip(t *testing.T) {
	cleanTables(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()
	author := createTestUser(t, "author@x.com", "author")

	post := &models.Post{
		Title:    "First Post",
		Subtitle: "sub",
		Body:     "hello",
		ImageURL: "https://example.com/a.png",
		Date:     "August 28, 2026",
		AuthorID: author.ID,
	}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Post", got.Title)
	assert.Equal(t, author.ID, got.Author.ID)
	assert.Equal(t, "author", got.Author.Username)
}

func TestPostRepositoryUpdateReflectsSubmittedValues(t *testing.T) {
	cleanTables(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()
	author := createTestUser(t, "author@x.com", "author")
	post := createTestPost(t, author.ID, "Before Edit")

	post.Title = "After Edit"
	post.Subtitle = "new subtitle"
	post.Body = "new body"
	post.ImageURL = "https://example.com/new.png"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "After Edit", got.Title)
	assert.Equal(t, "new subtitle", got.Subtitle)
	assert.Equal(t, "new body", got.Body)
	assert.Equal(t, "https://example.com/new.png", got.ImageURL)
}

func TestPostRepositoryDeleteCascadesComments(t *testing.T) {
	cleanTables(t)
	posts := NewPostRepository(testDB)
	comments := NewCommentRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, "author@x.com", "author")
	commenter := createTestUser(t, "reader@x.com", "reader")
	post := createTestPost(t, author.ID, "Doomed Post")

	require.NoError(t, comments.Create(ctx, &models.Comment{
		Text:   "first!",
		UserID: commenter.ID,
		PostID: post.ID,
	}))

	require.NoError(t, posts.Delete(ctx, post.ID))

	_, err := posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	orphans, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)
}

func TestPostRepositoryGetByTitle(t *testing.T) {
	cleanTables(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()
	author := createTestUser(t, "author@x.com", "author")
	createTestPost(t, author.ID, "Unique Title")

	got, err := repo.GetByTitle(ctx, "Unique Title")
	require.NoError(t, err)
	require.NotNil(t, got)

	missing, err := repo.GetByTitle(ctx, "No Such Title")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepositoryListStorageOrder(t *testing.T) {
	cleanTables(t)
	repo := NewPostRepository(testDB)
	ctx := context.Background()
	author := createTestUser(t, "author@x.com", "author")

	first := createTestPost(t, author.ID, "Post One")
	second := createTestPost(t, author.ID, "Post Two")

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, first.ID, posts[0].ID)
	assert.Equal(t, second.ID, posts[1].ID)
}
