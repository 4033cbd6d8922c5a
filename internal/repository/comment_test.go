package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepositoryCreateAndList(t *testing.T) {
	cleanTables(t)
	posts := NewPostRepository(testDB)
	comments := NewCommentRepository(testDB)
	ctx := context.Background()

	author := createTestUser(t, "author@x.com", "author")
	commenter := createTestUser(t, "reader@x.com", "reader")
	post := createTestPost(t, author.ID, "Commented Post")

	require.NoError(t, comments.Create(ctx, &models.Comment{
		Text:   "great read",
		UserID: commenter.ID,
		PostID: post.ID,
	}))

	listed, err := comments.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "great read", listed[0].Text)
	assert.Equal(t, "reader", listed[0].User.Username)

	// The post detail load embeds them too.
	got, err := posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	assert.Equal(t, commenter.ID, got.Comments[0].UserID)
}
